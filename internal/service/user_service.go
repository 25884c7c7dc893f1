package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/cache"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword covers both a failed old-password check and a
// mismatched confirmation; callers get no finer detail.
var ErrWrongPassword = errors.New("password was wrong")

type RegisterInput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	Password1   string `json:"password1"`
	Password2   string `json:"password2"`
}

type UserService struct {
	users    repository.UserRepository
	throttle cache.PasswordThrottle
	logger   *slog.Logger
}

func NewUserService(users repository.UserRepository, throttle cache.PasswordThrottle, logger *slog.Logger) *UserService {
	return &UserService{users: users, throttle: throttle, logger: logger}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput, admin bool) (string, error) {
	if err := validateRegistration(input); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password1), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	role := domain.RoleClient
	if admin {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Email:        strings.ToLower(input.Email),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		City:         input.City,
		CreatedAt:    time.Now(),
		PasswordHash: string(hash),
	}

	return s.users.Create(ctx, user)
}

func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.ByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, patch domain.ProfilePatch) error {
	if patch.IsEmpty() {
		verr := newValidationError()
		verr.add("patch", "no fields to update")
		return verr
	}
	return s.users.UpdateProfile(ctx, email, patch)
}

// ChangePassword verifies the old password and swaps in the new hash.
// Failed checks are counted per email; after three inside the window the
// account is blocked for a minute.
func (s *UserService) ChangePassword(ctx context.Context, email string, input ChangePasswordInput) error {
	blocked, err := s.throttle.BlockedFor(ctx, email)
	if err != nil {
		return err
	}
	if blocked > 0 {
		return fmt.Errorf("%w: retry in %s", cache.ErrBlocked, blocked.Round(time.Second))
	}

	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)) != nil {
		if rerr := s.throttle.RecordFailure(ctx, email); rerr != nil {
			s.logger.ErrorContext(ctx, "recording password failure", "error", rerr)
		}
		return ErrWrongPassword
	}

	if input.Password1 != input.Password2 || len(input.Password1) < 8 {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password1), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, email, string(hash))
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) ChangeRole(ctx context.Context, email, role string) error {
	if !domain.ValidRole(role) {
		verr := newValidationError()
		verr.add("role", "unknown role")
		return verr
	}
	return s.users.UpdateRole(ctx, email, role)
}

func validateRegistration(input RegisterInput) error {
	verr := newValidationError()
	if !strings.Contains(input.Email, "@") {
		verr.add("email", "is not a valid address")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		verr.add("first_name", "is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		verr.add("last_name", "is required")
	}
	if len(input.Password1) < 8 {
		verr.add("password1", "must be at least 8 characters")
	}
	if input.Password1 != input.Password2 {
		verr.add("password2", "does not match")
	}
	return verr.orNil()
}
