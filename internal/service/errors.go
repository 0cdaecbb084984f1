package service

import "errors"

// Sentinel errors surfaced to handlers, which map them to HTTP statuses
// with errors.Is. Gate and conflict failures carry the exact messages the
// API exposes.
var (
	// Conflicts (409)
	ErrEmailTaken        = errors.New("user with this email already exists")
	ErrDepartmentHasHead = errors.New("department already has a head")
	ErrOpenPeriodExists  = errors.New("department already has an open period")

	// Submission-creation gate (400)
	ErrNoPeriodConfigured = errors.New("no period configured")
	ErrPeriodClosed       = errors.New("collection period closed")
	ErrPeriodArchived     = errors.New("collection period archived")

	// Validation (400)
	ErrInvalidRole              = errors.New("invalid role: must be ADMIN, DEPARTMENT_HEAD or STAFF")
	ErrInvalidStatus            = errors.New("invalid status")
	ErrInvalidPeriodTransition  = errors.New("invalid period transition")
	ErrUserWithoutDepartment    = errors.New("user must belong to a department to create submissions")
	ErrPeriodDepartmentMismatch = errors.New("period does not belong to the user's department")
)
