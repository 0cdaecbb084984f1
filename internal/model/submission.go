package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionStatus enum constants
const (
	SubmissionPending        = "PENDING"
	SubmissionApproved       = "APPROVED"
	SubmissionRejected       = "REJECTED"
	SubmissionRevisionNeeded = "REVISION_NEEDED"
)

// ValidSubmissionStatus reports whether s is one of the four review states.
func ValidSubmissionStatus(s string) bool {
	return s == SubmissionPending || s == SubmissionApproved ||
		s == SubmissionRejected || s == SubmissionRevisionNeeded
}

// Submission is a single budget line item requested by a staff member.
// It is immutable after creation except for the review fields
// (Status, Feedback), which are only changed through the status-update
// operation.
type Submission struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string            `gorm:"type:varchar(255);not null" json:"title"`
	Description   string            `gorm:"type:text;not null" json:"description"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Reference     string            `gorm:"type:varchar(255)" json:"reference,omitempty"`
	Justification string            `gorm:"type:text" json:"justification,omitempty"`
	Status        string            `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Feedback      string            `gorm:"type:text" json:"feedback,omitempty"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User             `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	DepartmentID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"department_id"`
	Department    *Department       `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"department,omitempty"`
	CategoryID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"category_id"`
	Category      *Category         `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"category,omitempty"`
	PeriodID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"period_id"`
	Period        *SubmissionPeriod `gorm:"foreignKey:PeriodID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"period,omitempty"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// LineTotal returns quantity × unit price. The total is derived on demand
// and never stored.
func (s *Submission) LineTotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
