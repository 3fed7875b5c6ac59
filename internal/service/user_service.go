package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/biftracker/backend/internal/apperror"
	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
)

// UserService maintains the local user mirror. Identity is issued externally;
// the mirror exists so notifications can resolve an email for a JWT subject.
type UserService struct {
	userRepo repository.UserRepositoryInterface
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

type RegisterInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Register creates the mirror row for the authenticated subject. Registering
// the same subject with the same email again is idempotent; claiming an email
// owned by another subject is a conflict.
func (s *UserService) Register(ctx context.Context, userID uuid.UUID, input RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.ValidationError("email", "must be a valid email address")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("get user by email: %w", err)
		}
		if existing.ID == userID {
			return existing, nil
		}
		return nil, apperror.Conflict("email already registered")
	}

	user := &model.User{
		ID:    userID,
		Email: email,
		Name:  input.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Get returns the mirror row for the authenticated subject.
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}
