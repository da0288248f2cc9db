package service

import (
	"github.com/noah-isme/boleta-api/internal/models"

	appErrors "github.com/noah-isme/boleta-api/pkg/errors"
)

// ReviewAction is an explicit reviewer decision on a stored boleta.
type ReviewAction string

const (
	ReviewConfirm ReviewAction = "confirm"
	ReviewReject  ReviewAction = "reject"
)

// ApprovalDecision is the state-machine output for a save.
type ApprovalDecision struct {
	Status models.CertificateStatus
	// Notify is true when the save must trigger exactly one reviewer
	// notification.
	Notify bool
}

// DecideOnSave applies the approval rules for a create or edit: a new
// submission by a privileged author lands directly on CONFIRMED, while a
// privileged edit keeps the stored status untouched; changing it takes an
// explicit review action. Any save by a non-privileged author reverts the
// record to PENDING regardless of its prior state and requests re-review.
func DecideOnSave(role models.UserRole, previous models.CertificateStatus, isNew bool) ApprovalDecision {
	if role.CanConfirmBoletas() {
		if isNew {
			return ApprovalDecision{Status: models.StatusConfirmed}
		}
		return ApprovalDecision{Status: previous}
	}
	return ApprovalDecision{Status: models.StatusPending, Notify: true}
}

// DecideOnReview maps an explicit review action to a status. Only
// privileged roles may review.
func DecideOnReview(role models.UserRole, action ReviewAction) (models.CertificateStatus, error) {
	if !role.CanConfirmBoletas() {
		return "", appErrors.ErrForbidden
	}
	switch action {
	case ReviewConfirm:
		return models.StatusConfirmed, nil
	case ReviewReject:
		return models.StatusRejected, nil
	default:
		return "", appErrors.Clone(appErrors.ErrInvalidTransition, "unknown review action")
	}
}
