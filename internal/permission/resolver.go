package permission

import (
	"log"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
)

// RoleSource is the read contract the resolver needs from the role
// store. repository.RoleRepository satisfies it.
type RoleSource interface {
	FindByID(id uuid.UUID) (*model.Role, error)
	FindByName(name string) (*model.Role, error)
}

// Resolution is the outcome of resolving one user: the role they landed
// on (if any) and their capability set.
type Resolution struct {
	RoleID   *uuid.UUID `json:"role_id"`
	RoleName string     `json:"role_name"`
	Set      Set        `json:"permissions"`
}

// EmptyResolution is the all-false state: unauthenticated users, users
// without any role, and failed lookups all land here.
func EmptyResolution() Resolution {
	return Resolution{Set: Set{}}
}

// Resolver maps an authenticated user onto a capability set.
//
// Precedence: a directly assigned custom role wins; otherwise the
// legacy enum tag is mapped through model.LegacyRoleMapping onto the
// equivalent system role; otherwise the empty set. Lookup failures
// degrade to the empty set and are logged, never raised.
type Resolver struct {
	roles RoleSource
}

func NewResolver(roles RoleSource) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve returns the capability resolution for the given user. A nil
// user (logged out) resolves to the empty state.
func (r *Resolver) Resolve(user *model.User) Resolution {
	if user == nil {
		return EmptyResolution()
	}

	if user.RoleID != nil {
		role, err := r.roles.FindByID(*user.RoleID)
		if err != nil {
			log.Printf("permission: role %s lookup failed for user %s: %v", user.RoleID, user.ID, err)
			return EmptyResolution()
		}
		return resolutionFromRole(role)
	}

	if systemName, ok := model.LegacyRoleMapping[user.LegacyRole]; ok {
		role, err := r.roles.FindByName(systemName)
		if err != nil {
			log.Printf("permission: system role %q lookup failed for user %s: %v", systemName, user.ID, err)
			return EmptyResolution()
		}
		return resolutionFromRole(role)
	}

	return EmptyResolution()
}

func resolutionFromRole(role *model.Role) Resolution {
	set := make(Set, len(role.Permissions))
	for key, granted := range role.Permissions {
		set[key] = granted
	}
	id := role.ID
	return Resolution{RoleID: &id, RoleName: role.Name, Set: set}
}
