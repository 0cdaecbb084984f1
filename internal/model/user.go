package model

import (
	"time"

	"github.com/google/uuid"
)

// Role enum constants. Roles form a closed set; services validate against
// these values before persisting.
const (
	RoleAdmin          = "ADMIN"
	RoleDepartmentHead = "DEPARTMENT_HEAD"
	RoleStaff          = "STAFF"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleDepartmentHead || role == RoleStaff
}

// User represents an account in the system. ADMIN users are cross-department
// and carry a nil DepartmentID; heads and staff always belong to exactly one
// department.
type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string      `gorm:"type:varchar(255);not null" json:"name"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role         string      `gorm:"type:varchar(30);not null;index" json:"role"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"department,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
