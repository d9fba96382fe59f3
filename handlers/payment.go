package handlers

import (
	"net/http"

	"advocate_desk_go/db"
	"advocate_desk_go/errs"
	"advocate_desk_go/middleware"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
)

// ListCasePaymentsHandler returns the payments of a case the actor may
// see. Associates are denied outright.
func ListCasePaymentsHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	payments, err := services.ListCasePayments(db.DB, actor, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// CreatePaymentHandler records a payment on a case the advocate owns
func CreatePaymentHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	var input services.PaymentInput
	if err := c.Bind(&input); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	payment, err := services.CreatePayment(db.DB, actor, c.Param("id"), input)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// UpdatePaymentStatusHandler changes a payment's status (e.g. mark paid)
func UpdatePaymentStatusHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return renderError(c, errs.Validation("Invalid request body"))
	}

	payment, err := services.UpdatePaymentStatus(db.DB, actor, c.Param("paymentId"), req.Status)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// DeletePaymentHandler removes a payment the advocate owns
func DeletePaymentHandler(c echo.Context) error {
	actor := middleware.GetCurrentActor(c)

	if err := services.DeletePayment(db.DB, actor, c.Param("paymentId")); err != nil {
		return renderError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
