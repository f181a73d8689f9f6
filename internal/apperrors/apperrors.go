package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")

	// Validation errors: bad caller input, surfaced verbatim.
	ErrNoCircuitsSelected      = errors.New("at least one circuit must be selected")
	ErrMissingDeactivationDate = errors.New("a deactivation date must be provided")
	ErrEmptyComment            = errors.New("comment text is empty")
	ErrInvalidStatus           = errors.New("target status does not exist")

	// Configuration errors: missing seed data, distinct from user mistakes.
	ErrCatalogMisconfigured = errors.New("catalog data is missing, run the seed migration")

	// Resource errors: business precondition unmet.
	ErrNoActiveStaff = errors.New("no active staff available for assignment")
	ErrStaffInUse    = errors.New("staff record is still referenced by requests")

	// Linkage warnings: non-fatal, degrade to an empty result set.
	ErrStaffRecordMissing = errors.New("actor has no linked staff record")
)

// NoActiveStaffError reports which staff pool was empty.
type NoActiveStaffError struct{ Kind string }

func (e *NoActiveStaffError) Error() string {
	return fmt.Sprintf("no active %ss available for assignment", e.Kind)
}
func (e *NoActiveStaffError) Is(target error) bool { return target == ErrNoActiveStaff }

// CatalogMisconfiguredError names the missing catalog entry so operators can
// tell seeding problems apart from user input errors.
type CatalogMisconfiguredError struct{ Entry string }

func (e *CatalogMisconfiguredError) Error() string {
	return fmt.Sprintf("catalog entry '%s' is missing, run the seed migration", e.Entry)
}
func (e *CatalogMisconfiguredError) Is(target error) bool { return target == ErrCatalogMisconfigured }

// IdentityAlreadyBoundError reports a duplicate personnel binding.
type IdentityAlreadyBoundError struct {
	IdentityID int64
	Kind       string
}

func (e *IdentityAlreadyBoundError) Error() string {
	return fmt.Sprintf("identity %d is already bound to a %s record", e.IdentityID, e.Kind)
}
func (e *IdentityAlreadyBoundError) Is(target error) bool { return target == ErrAlreadyExists }
