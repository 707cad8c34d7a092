package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
)

// --- Enrollments ---

type EnrollmentService struct {
	repo   ports.EnrollmentRepository
	logger zerolog.Logger
}

func NewEnrollmentService(repo ports.EnrollmentRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{repo: repo, logger: logger}
}

func (s *EnrollmentService) Enroll(ctx context.Context, e *domain.Enrollment) (*domain.InsertResult, error) {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	result, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("class_id", e.ClassID).Str("student", e.Email).Msg("enrollment recorded")
	return result, nil
}

func (s *EnrollmentService) ListForStudent(ctx context.Context, email string) ([]domain.Enrollment, error) {
	return s.repo.FindByEmail(ctx, email)
}

// --- Teacher requests ---

type TeacherRequestService struct {
	repo   ports.TeacherRequestRepository
	logger zerolog.Logger
}

func NewTeacherRequestService(repo ports.TeacherRequestRepository, logger zerolog.Logger) *TeacherRequestService {
	return &TeacherRequestService{repo: repo, logger: logger}
}

// Submit files a promotion request. Requests always start Pending.
func (s *TeacherRequestService) Submit(ctx context.Context, req *domain.TeacherRequest) (*domain.InsertResult, error) {
	req.ID = ""
	req.Status = domain.StatusPending

	result, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", req.Email).Msg("teacher request submitted")
	return result, nil
}

func (s *TeacherRequestService) List(ctx context.Context) ([]domain.TeacherRequest, error) {
	return s.repo.List(ctx)
}

// GetForEmail returns the caller's request, or nil when none was filed.
func (s *TeacherRequestService) GetForEmail(ctx context.Context, email string) (*domain.TeacherRequest, error) {
	req, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrTeacherRequestNotFound) {
		return nil, nil
	}
	return req, err
}

func (s *TeacherRequestService) Review(ctx context.Context, id string, status string) (*domain.UpdateResult, error) {
	st, err := domain.ParseReviewStatus(status)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.SetStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("request_id", id).Str("status", status).Msg("teacher request reviewed")
	return result, nil
}

// --- Feedback ---

type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

func (s *FeedbackService) Submit(ctx context.Context, f *domain.Feedback) (*domain.InsertResult, error) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, f)
}

func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.repo.List(ctx)
}

// --- Submissions ---

type SubmissionService struct {
	repo   ports.SubmissionRepository
	logger zerolog.Logger
}

func NewSubmissionService(repo ports.SubmissionRepository, logger zerolog.Logger) *SubmissionService {
	return &SubmissionService{repo: repo, logger: logger}
}

func (s *SubmissionService) Submit(ctx context.Context, sub *domain.Submission) (*domain.InsertResult, error) {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}

	result, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("class_id", sub.ClassID).
		Str("assignment", sub.AssignmentTitle).
		Str("student", sub.Email).
		Msg("assignment submitted")
	return result, nil
}

func (s *SubmissionService) ListForClass(ctx context.Context, classID string) ([]domain.Submission, error) {
	return s.repo.FindByClass(ctx, classID)
}

func (s *SubmissionService) CountForClass(ctx context.Context, classID string) (int64, error) {
	return s.repo.CountByClass(ctx, classID)
}
