package model

import (
	"time"

	"github.com/google/uuid"
)

// Department is the tenant boundary: users, categories, periods and
// submissions are all scoped to one department. Deleting a department
// cascades to everything it owns (see the constraint tags on the owned
// models).
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Users       []User             `gorm:"foreignKey:DepartmentID" json:"users,omitempty"`
	Categories  []Category         `gorm:"foreignKey:DepartmentID" json:"categories,omitempty"`
	Periods     []SubmissionPeriod `gorm:"foreignKey:DepartmentID" json:"periods,omitempty"`
	Submissions []Submission       `gorm:"foreignKey:DepartmentID" json:"submissions,omitempty"`
}
