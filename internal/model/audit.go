package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit action constants
const (
	ActionCreateDepartment = "CREATE_DEPARTMENT"
	ActionDeleteDepartment = "DELETE_DEPARTMENT"
	ActionCreateUser       = "CREATE_USER"
	ActionDeleteUser       = "DELETE_USER"
	ActionCreatePeriod     = "CREATE_PERIOD"
	ActionPeriodTransition = "PERIOD_TRANSITION"
	ActionReviewSubmission = "REVIEW_SUBMISSION"
	ActionDeleteSubmission = "DELETE_SUBMISSION"
)

// AuditLog tracks Who, What, and When for review decisions, period
// lifecycle changes and administrative mutations.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
