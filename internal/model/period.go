package model

import (
	"time"

	"github.com/google/uuid"
)

// PeriodStatus enum constants
const (
	PeriodOpen     = "OPEN"
	PeriodClosed   = "CLOSED"
	PeriodArchived = "ARCHIVED"
)

// ValidPeriodStatus reports whether s is one of the three period states.
func ValidPeriodStatus(s string) bool {
	return s == PeriodOpen || s == PeriodClosed || s == PeriodArchived
}

// ValidPeriodTransition reports whether a period may move from one status to
// another. The lifecycle is strictly one-way: OPEN → CLOSED → ARCHIVED.
// Re-opening a closed period is not permitted.
func ValidPeriodTransition(from, to string) bool {
	switch from {
	case PeriodOpen:
		return to == PeriodClosed
	case PeriodClosed:
		return to == PeriodArchived
	default:
		return false
	}
}

// SubmissionPeriod is the bounded window during which a department accepts
// submissions. A department has at most one OPEN period at a time; the
// "current period" is the most recently created OPEN one, falling back to
// the most recent by end date.
type SubmissionPeriod struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Year         int         `gorm:"not null" json:"year"`
	StartDate    time.Time   `gorm:"not null" json:"start_date"`
	EndDate      time.Time   `gorm:"not null" json:"end_date"`
	Status       string      `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	DepartmentID uuid.UUID   `gorm:"type:uuid;not null;index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"department,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
