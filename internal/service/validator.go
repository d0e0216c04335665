package service

import (
	"fmt"

	"github.com/mtlprog/punchclock/internal/domain"
)

// Validator handles ingestion-time validation of clock events. The derived
// views stay tolerant of malformed logs; this gate only stops new illegal
// transitions from being appended.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// CanRecord validates that an event of the given type may follow the user's
// current derived status.
func (v *Validator) CanRecord(user *domain.User, current domain.Status, next domain.EventType) error {
	if !user.IsActive {
		return fmt.Errorf("%w: user %s", domain.ErrUserInactive, user.ID)
	}

	if !next.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidEventType, next)
	}

	if !domain.CanRecord(current, next) {
		return fmt.Errorf("%w: cannot record %s while %s", domain.ErrInvalidTransition, next, current)
	}

	return nil
}
