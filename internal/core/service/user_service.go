package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

// UserService manages accounts in the credential store.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create registers a user on first sign-in. A second call for the same email
// writes nothing and reports existed=true. Users without a role start as
// Students.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.InsertResult, bool, error) {
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	if _, err := domain.ParseRole(string(user.Role)); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	switch {
	case err == nil && existing != nil:
		return nil, true, nil
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	result, err := s.repo.Create(ctx, user)
	if err != nil {
		// Lost a race against a concurrent sign-in; the unique index held.
		if errors.Is(err, domain.ErrUserExists) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user created")
	return result, false, nil
}

// Get returns the user or domain.ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// HasRole reports whether the stored user holds exactly role. An unknown
// email is not an error; it simply holds no role.
func (s *UserService) HasRole(ctx context.Context, email string, role domain.Role) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}

func (s *UserService) ChangeRole(ctx context.Context, id string, role string) (*domain.UpdateResult, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.UpdateRole(ctx, id, r)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("role", role).Int64("modified", result.ModifiedCount).Msg("user role changed")
	return result, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Int64("deleted", result.DeletedCount).Msg("user deleted")
	return result, nil
}
