package services

import (
	"advocate_desk_go/authz"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"gorm.io/gorm"
)

// DashboardSummary carries per-role counters for the landing view. Only the
// fields relevant to the actor's role are populated.
type DashboardSummary struct {
	TotalCases   int64 `json:"total_cases"`
	OpenCases    int64 `json:"open_cases"`
	PendingCases int64 `json:"pending_cases"`
	ClosedCases  int64 `json:"closed_cases"`

	// Advocate only
	Associates int64 `json:"associates,omitempty"`
	Clients    int64 `json:"clients,omitempty"`

	// Client only
	PendingPaymentTotal float64 `json:"pending_payment_total,omitempty"`
}

// BuildDashboard computes the actor's dashboard counters with the same
// visibility predicates as the case list.
func BuildDashboard(db *gorm.DB, actor *authz.Actor) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	switch actor.Role {
	case models.RoleAssociate:
		// Membership set first; no case queries at all for an associate
		// with no assignments.
		ids, err := authz.AssignedCaseIDs(db, actor.ID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return summary, nil
		}
		if err := countCaseStatuses(db.Where("id IN ?", ids), summary); err != nil {
			return nil, err
		}
		return summary, nil

	case models.RoleAdvocate:
		if err := countCaseStatuses(db.Where("advocate_id = ?", actor.ID), summary); err != nil {
			return nil, err
		}
		memberCounts := map[string]*int64{
			models.RoleAssociate: &summary.Associates,
			models.RoleClient:    &summary.Clients,
		}
		for role, target := range memberCounts {
			err := db.Model(&models.Profile{}).
				Where("advocate_id = ? AND role = ?", actor.ID, role).
				Count(target).Error
			if err != nil {
				return nil, errs.Dependency("count members", err)
			}
		}
		return summary, nil

	case models.RoleClient:
		if err := countCaseStatuses(db.Where("client_id = ?", actor.ID), summary); err != nil {
			return nil, err
		}

		var caseIDs []string
		err := db.Model(&models.Case{}).Where("client_id = ?", actor.ID).
			Pluck("id", &caseIDs).Error
		if err != nil {
			return nil, errs.Dependency("list client cases", err)
		}
		if len(caseIDs) == 0 {
			return summary, nil
		}

		var total *float64
		err = db.Model(&models.Payment{}).
			Where("case_id IN ? AND status <> ?", caseIDs, models.PaymentStatusPaid).
			Select("SUM(amount)").Scan(&total).Error
		if err != nil {
			return nil, errs.Dependency("sum pending payments", err)
		}
		if total != nil {
			summary.PendingPaymentTotal = *total
		}
		return summary, nil
	}

	return nil, errs.ErrForbidden
}

func countCaseStatuses(scoped *gorm.DB, summary *DashboardSummary) error {
	type statusCount struct {
		Status string
		N      int64
	}
	var rows []statusCount
	err := scoped.Model(&models.Case{}).
		Select("status, COUNT(*) as n").Group("status").Scan(&rows).Error
	if err != nil {
		return errs.Dependency("count cases", err)
	}

	for _, row := range rows {
		summary.TotalCases += row.N
		switch row.Status {
		case models.CaseStatusOpen:
			summary.OpenCases = row.N
		case models.CaseStatusPending:
			summary.PendingCases = row.N
		case models.CaseStatusClosed:
			summary.ClosedCases = row.N
		}
	}
	return nil
}
