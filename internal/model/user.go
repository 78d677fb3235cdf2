package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LegacyRole is the closed 3-value enum used before custom roles
// existed. Users created through the old flow carry one of these tags;
// permission resolution maps it onto the equivalent system role.
type LegacyRole string

const (
	LegacyAdmin          LegacyRole = "admin"
	LegacyProjectManager LegacyRole = "project_manager"
	LegacySales          LegacyRole = "sales"
)

// LegacyRoleMapping is the explicit fallback table from legacy enum
// tags to system role names. Kept as data, not inferred logic.
var LegacyRoleMapping = map[LegacyRole]string{
	LegacyAdmin:          RoleNameAdmin,
	LegacyProjectManager: RoleNameProjectManager,
	LegacySales:          RoleNameSales,
}

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string     `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	LegacyRole   LegacyRole `gorm:"type:varchar(30)" json:"legacy_role"`
	RoleID       *uuid.UUID `gorm:"type:uuid;index" json:"role_id"`
	Role         *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // Single session enforcement
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	LegacyRole LegacyRole `json:"legacy_role,omitempty"`
	RoleID     *uuid.UUID `json:"role_id,omitempty"`
	Role       *Role      `json:"role,omitempty"`
	IsActive   bool       `json:"is_active"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		LegacyRole: u.LegacyRole,
		RoleID:     u.RoleID,
		Role:       u.Role,
		IsActive:   u.IsActive,
		LastSeenAt: u.LastSeenAt,
	}
}
