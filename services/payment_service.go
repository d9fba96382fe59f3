package services

import (
	"errors"
	"time"

	"advocate_desk_go/authz"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"gorm.io/gorm"
)

// PaymentInput is the payload for recording a payment on a case.
type PaymentInput struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
}

// CreatePayment records a payment on a case the calling advocate owns.
// Ownership of the case is checked here, not just authentication: a single
// user action can span entities with different owners.
func CreatePayment(db *gorm.DB, actor *authz.Actor, caseID string, input PaymentInput) (*models.Payment, error) {
	if !authz.Can(actor, authz.ActionCreate, authz.EntityPayment) {
		return nil, errs.ErrForbidden
	}
	kase, err := authz.OwnedCase(db, actor, caseID)
	if err != nil {
		return nil, err
	}

	if input.Description == "" {
		return nil, errs.Validation("Description is required")
	}
	if input.Amount < 0 {
		return nil, errs.Validation("Amount must not be negative")
	}
	if input.Status == "" {
		input.Status = models.PaymentStatusPending
	}
	if !models.IsValidPaymentStatus(input.Status) {
		return nil, errs.Validation("Invalid payment status: %s", input.Status)
	}

	payment := &models.Payment{
		CaseID:      kase.ID,
		AdvocateID:  actor.ID,
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
		Status:      input.Status,
	}
	if err := db.Create(payment).Error; err != nil {
		return nil, errs.Dependency("create payment", err)
	}
	return payment, nil
}

// ListCasePayments returns the payments of one case within the actor's
// visibility. Associates are denied at the class level before the case is
// even looked up.
func ListCasePayments(db *gorm.DB, actor *authz.Actor, caseID string) ([]models.Payment, error) {
	if !authz.Can(actor, authz.ActionRead, authz.EntityPayment) {
		return nil, errs.ErrForbidden
	}
	if _, err := authz.VisibleCase(db, actor, caseID); err != nil {
		return nil, err
	}

	var payments []models.Payment
	err := db.Where("case_id = ?", caseID).Order("due_date").Find(&payments).Error
	if err != nil {
		return nil, errs.Dependency("list payments", err)
	}
	return payments, nil
}

// UpdatePaymentStatus changes a payment's status. Status is the only
// mutable field; ownership and case linkage never change.
func UpdatePaymentStatus(db *gorm.DB, actor *authz.Actor, paymentID, status string) (*models.Payment, error) {
	if !authz.Can(actor, authz.ActionUpdate, authz.EntityPayment) {
		return nil, errs.ErrForbidden
	}
	if !models.IsValidPaymentStatus(status) {
		return nil, errs.Validation("Invalid payment status: %s", status)
	}

	payment, err := ownedPayment(db, actor, paymentID)
	if err != nil {
		return nil, err
	}

	payment.Status = status
	if err := db.Save(payment).Error; err != nil {
		return nil, errs.Dependency("update payment", err)
	}
	return payment, nil
}

// DeletePayment removes a payment on a case the calling advocate owns.
func DeletePayment(db *gorm.DB, actor *authz.Actor, paymentID string) error {
	if !authz.Can(actor, authz.ActionDelete, authz.EntityPayment) {
		return errs.ErrForbidden
	}

	payment, err := ownedPayment(db, actor, paymentID)
	if err != nil {
		return err
	}
	if err := db.Delete(payment).Error; err != nil {
		return errs.Dependency("delete payment", err)
	}
	return nil
}

// ownedPayment fetches a payment owned by the calling advocate. Rows of
// other advocates read as not found.
func ownedPayment(db *gorm.DB, actor *authz.Actor, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := db.Where("advocate_id = ?", actor.ID).First(&payment, "id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Dependency("fetch payment", err)
	}
	return &payment, nil
}
