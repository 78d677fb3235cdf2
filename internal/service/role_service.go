package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/repository"
)

var (
	ErrRoleNameTaken     = errors.New("a role with this name already exists")
	ErrSystemRoleLocked  = errors.New("system roles cannot be modified or deleted")
	ErrRoleInUse         = errors.New("role is still assigned to users")
	ErrUnknownPermission = errors.New("unknown permission key")
)

// RoleService manages custom roles. The three seeded system roles are
// readable but locked against writes.
type RoleService interface {
	List() ([]model.Role, error)
	AvailablePermissions() []model.PermissionInfo
	Create(req RoleRequest) (*model.Role, error)
	Update(id uuid.UUID, req RoleRequest) (*model.Role, error)
	Delete(id uuid.UUID) error
}

type RoleRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Permissions model.PermissionMap `json:"permissions"`
}

type roleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository) RoleService {
	return &roleService{roleRepo: roleRepo, userRepo: userRepo}
}

func (s *roleService) List() ([]model.Role, error) {
	return s.roleRepo.FindAll()
}

func (s *roleService) AvailablePermissions() []model.PermissionInfo {
	return model.AvailablePermissions
}

func (s *roleService) Create(req RoleRequest) (*model.Role, error) {
	// 1. Validate name and permission keys
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}
	permissions, err := sanitizePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	// 2. Name must be unique
	if existing, err := s.roleRepo.FindByName(name); err == nil && existing != nil {
		return nil, ErrRoleNameTaken
	}

	// 3. Create as a custom (non-system) role
	role := &model.Role{
		Name:        name,
		Description: req.Description,
		Permissions: permissions,
		IsSystem:    false,
	}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) Update(id uuid.UUID, req RoleRequest) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	if role.IsSystem {
		return nil, ErrSystemRoleLocked
	}

	if name := strings.TrimSpace(req.Name); name != "" && name != role.Name {
		if existing, err := s.roleRepo.FindByName(name); err == nil && existing != nil && existing.ID != id {
			return nil, ErrRoleNameTaken
		}
		role.Name = name
	}
	role.Description = req.Description
	if req.Permissions != nil {
		permissions, err := sanitizePermissions(req.Permissions)
		if err != nil {
			return nil, err
		}
		role.Permissions = permissions
	}

	if err := s.roleRepo.Update(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) Delete(id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		return ErrRoleNotFound
	}
	if role.IsSystem {
		return ErrSystemRoleLocked
	}

	// A role still assigned to users cannot disappear under them
	count, err := s.userRepo.CountByRoleID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleInUse
	}

	return s.roleRepo.Delete(id)
}

// sanitizePermissions rejects keys outside the closed catalog and drops
// explicit false entries, keeping stored maps minimal.
func sanitizePermissions(permissions model.PermissionMap) (model.PermissionMap, error) {
	clean := model.PermissionMap{}
	for key, granted := range permissions {
		if !model.IsKnownPermission(key) {
			return nil, ErrUnknownPermission
		}
		if granted {
			clean[key] = true
		}
	}
	return clean, nil
}
