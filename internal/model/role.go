package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// PermissionMap is a capability map stored as JSONB. Keys come from the
// closed catalog in permission.go; a missing key means false.
type PermissionMap map[string]bool

// Value implements driver.Valuer for JSONB storage.
func (m PermissionMap) Value() (driver.Value, error) {
	if m == nil {
		m = PermissionMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (m *PermissionMap) Scan(value interface{}) error {
	if value == nil {
		*m = PermissionMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for PermissionMap")
	}
}

// Role is a named set of capabilities. System roles are seeded at boot
// and locked against edits; custom roles are managed via the API.
type Role struct {
	BaseModel
	Name        string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string        `gorm:"type:text" json:"description"`
	Permissions PermissionMap `gorm:"type:jsonb;not null;default:'{}'" json:"permissions"`
	IsSystem    bool          `gorm:"default:false" json:"is_system"`
}

// System role names. Legacy enum roles map onto these at resolution time.
const (
	RoleNameAdmin          = "Admin"
	RoleNameProjectManager = "Chef de Projet"
	RoleNameSales          = "Commercial"
)

func allPermissions() PermissionMap {
	m := PermissionMap{}
	for _, p := range AvailablePermissions {
		m[p.Key] = true
	}
	return m
}

// DefaultRoles defines the seeded system roles and their capability maps.
var DefaultRoles = []Role{
	{
		Name:        RoleNameAdmin,
		Description: "Accès complet à toutes les fonctionnalités",
		Permissions: allPermissions(),
		IsSystem:    true,
	},
	{
		Name:        RoleNameProjectManager,
		Description: "Simulations et consultation des statistiques",
		Permissions: PermissionMap{
			PermCreateSimulations:  true,
			PermViewAllSimulations: true,
			PermEditDailyRates:     true,
			PermEditProjectTypes:   true,
			PermViewAnalytics:      true,
		},
		IsSystem: true,
	},
	{
		Name:        RoleNameSales,
		Description: "Création de simulations uniquement",
		Permissions: PermissionMap{
			PermCreateSimulations: true,
		},
		IsSystem: true,
	},
}
