package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/repository"
)

var (
	ErrEmailTaken       = errors.New("a user with this email already exists")
	ErrRoleNotFound     = errors.New("role not found")
	ErrSelfDeletion     = errors.New("you cannot delete your own account")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

type UserService interface {
	List() ([]model.UserResponse, error)
	Create(req CreateUserRequest) (*model.UserResponse, error)
	Update(id uuid.UUID, req UpdateUserRequest) (*model.UserResponse, error)
	Delete(actorID, id uuid.UUID) error
	SetActive(id uuid.UUID, active bool) (*model.UserResponse, error)
	AdminResetPassword(id uuid.UUID, newPassword string) error
}

type CreateUserRequest struct {
	Email      string           `json:"email" validate:"required,email"`
	Password   string           `json:"password" validate:"required,min=8"`
	FullName   string           `json:"full_name" validate:"required"`
	RoleID     *uuid.UUID       `json:"role_id"`
	LegacyRole model.LegacyRole `json:"legacy_role"`
}

type UpdateUserRequest struct {
	FullName   string           `json:"full_name"`
	RoleID     *uuid.UUID       `json:"role_id"`
	LegacyRole model.LegacyRole `json:"legacy_role"`
	IsActive   *bool            `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *userService) List() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}

func (s *userService) Create(req CreateUserRequest) (*model.UserResponse, error) {
	// 1. Email must be unique
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	// 2. A custom role assignment must point at a real role
	if req.RoleID != nil {
		if _, err := s.roleRepo.FindByID(*req.RoleID); err != nil {
			return nil, ErrRoleNotFound
		}
	}

	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	// 3. Create with hashed password
	user := &model.User{
		Email:      email,
		FullName:   strings.TrimSpace(req.FullName),
		RoleID:     req.RoleID,
		LegacyRole: req.LegacyRole,
		IsActive:   true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Update(id uuid.UUID, req UpdateUserRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if name := strings.TrimSpace(req.FullName); name != "" {
		user.FullName = name
	}
	if req.RoleID != nil {
		if _, err := s.roleRepo.FindByID(*req.RoleID); err != nil {
			return nil, ErrRoleNotFound
		}
		user.RoleID = req.RoleID
		// A custom role supersedes the legacy tag
		user.Role = nil
	}
	if req.LegacyRole != "" {
		user.LegacyRole = req.LegacyRole
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	// Reload to get the role preloaded for the response
	updated, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrSelfDeletion
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}

func (s *userService) SetActive(id uuid.UUID, active bool) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user.IsActive = active
	if !active {
		// Deactivation also revokes the open session
		user.TokenVersion = uuid.New().String()
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) AdminResetPassword(id uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return ErrUserNotFound
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash password")
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}
