package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/permission"
	"go-pricing-sim/internal/repository"
	"go-pricing-sim/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionRevoked     = errors.New("session was opened on another device")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	Heartbeat(userID uuid.UUID) error
}

type LoginResponse struct {
	Token       string                `json:"token"`
	User        model.UserResponse    `json:"user"`
	Permissions permission.Resolution `json:"permissions"`
}

type TokenValidationResponse struct {
	User        model.UserResponse    `json:"user"`
	Permissions permission.Resolution `json:"permissions"`
}

type authService struct {
	userRepo repository.UserRepository
	resolver *permission.Resolver
}

func NewAuthService(userRepo repository.UserRepository, resolver *permission.Resolver) AuthService {
	return &authService{userRepo: userRepo, resolver: resolver}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single session: rotating the token version invalidates every
	// token issued before this login
	newTokenVersion := uuid.New().String()
	now := time.Now()
	user.TokenVersion = newTokenVersion
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	// 5. Resolve capabilities from the role store, never from the token
	resolution := s.resolver.Resolve(user)

	// 6. Generate JWT
	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, resolution.RoleName, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:       token,
		User:        user.ToResponse(),
		Permissions: resolution,
	}, nil
}

// ValidateToken re-checks a token against the live user record, so a
// deactivation, role change or newer login takes effect immediately.
func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionRevoked
	}

	return &TokenValidationResponse{
		User:        user.ToResponse(),
		Permissions: s.resolver.Resolve(user),
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	// 2. Verify the current password
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	// 3. Hash and store the new one
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash password")
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	return s.userRepo.UpdateLastSeen(userID)
}
