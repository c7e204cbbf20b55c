package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/logger"
	"civdef-inventory-backend/internal/repository"
)

// ErrSelfDelete is rejected before any store call is made.
var ErrSelfDelete = errors.New("cannot delete your own user record")

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		logger.Error("Failed to list users", "error", err)
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, email, name, password string, role domain.Role) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a profile. It does not revoke credentials the target
// already holds; outstanding tokens stay valid until expiry.
func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, targetID int32) error {
	if actor.Role != domain.RoleAdmin {
		return ErrNotAuthorized
	}
	if actor.ID == targetID {
		return ErrSelfDelete
	}
	return s.userRepo.Delete(ctx, targetID)
}
