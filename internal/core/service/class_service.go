package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

const popularClassesLimit = 6

type ClassService struct {
	repo   ports.ClassRepository
	logger zerolog.Logger
}

func NewClassService(repo ports.ClassRepository, logger zerolog.Logger) *ClassService {
	return &ClassService{repo: repo, logger: logger}
}

// ListAccepted returns the public catalogue: only classes an admin accepted.
func (s *ClassService) ListAccepted(ctx context.Context) ([]domain.Class, error) {
	return s.repo.Find(ctx, domain.ClassFilter{Status: domain.StatusAccepted})
}

func (s *ClassService) ListAll(ctx context.Context) ([]domain.Class, error) {
	return s.repo.Find(ctx, domain.ClassFilter{})
}

func (s *ClassService) ListByTeacher(ctx context.Context, email string) ([]domain.Class, error) {
	return s.repo.Find(ctx, domain.ClassFilter{Email: email})
}

func (s *ClassService) Popular(ctx context.Context) ([]domain.Class, error) {
	return s.repo.FindPopular(ctx, popularClassesLimit)
}

// Get returns the class, or nil without error when it does not exist.
func (s *ClassService) Get(ctx context.Context, id string) (*domain.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrClassNotFound) {
		return nil, nil
	}
	return class, err
}

// Create stores a new listing. New classes await admin review.
func (s *ClassService) Create(ctx context.Context, class *domain.Class) (*domain.InsertResult, error) {
	class.ID = ""
	class.Status = domain.StatusPending
	class.Enrolled = 0

	result, err := s.repo.Create(ctx, class)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("class_id", result.InsertedID).Str("teacher", class.Email).Msg("class created")
	return result, nil
}

func (s *ClassService) Update(ctx context.Context, id string, update domain.ClassUpdate) (*domain.UpdateResult, error) {
	return s.repo.Update(ctx, id, update)
}

func (s *ClassService) Review(ctx context.Context, id string, status string) (*domain.UpdateResult, error) {
	st, err := domain.ParseReviewStatus(status)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.SetStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("class_id", id).Str("status", status).Msg("class reviewed")
	return result, nil
}

// AddAssignment appends to the class's assignments; it never replaces them.
func (s *ClassService) AddAssignment(ctx context.Context, id string, assignment domain.Assignment, upsert bool) (*domain.UpdateResult, error) {
	return s.repo.AppendAssignment(ctx, id, assignment, upsert)
}

func (s *ClassService) RecordEnrollment(ctx context.Context, id string) (*domain.UpdateResult, error) {
	return s.repo.IncrementEnrolled(ctx, id)
}

func (s *ClassService) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("class_id", id).Int64("deleted", result.DeletedCount).Msg("class deleted")
	return result, nil
}
