package ports

import (
	"context"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

// UserRepository is the credential store. FindByEmail returns
// domain.ErrUserNotFound when no user holds the email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.InsertResult, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (*domain.DeleteResult, error)
}

// ClassRepository persists class listings and their embedded assignments.
type ClassRepository interface {
	Find(ctx context.Context, filter domain.ClassFilter) ([]domain.Class, error)
	// FindPopular returns accepted classes ordered by enrolled count, descending.
	FindPopular(ctx context.Context, limit int) ([]domain.Class, error)
	FindByID(ctx context.Context, id string) (*domain.Class, error)
	Create(ctx context.Context, class *domain.Class) (*domain.InsertResult, error)
	Update(ctx context.Context, id string, update domain.ClassUpdate) (*domain.UpdateResult, error)
	SetStatus(ctx context.Context, id string, status domain.ReviewStatus) (*domain.UpdateResult, error)
	// AppendAssignment pushes onto the assignments array. With upsert set, a
	// missing class document is created holding only the assignment.
	AppendAssignment(ctx context.Context, id string, assignment domain.Assignment, upsert bool) (*domain.UpdateResult, error)
	IncrementEnrolled(ctx context.Context, id string) (*domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (*domain.DeleteResult, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.InsertResult, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Enrollment, error)
}

type TeacherRequestRepository interface {
	Create(ctx context.Context, req *domain.TeacherRequest) (*domain.InsertResult, error)
	List(ctx context.Context) ([]domain.TeacherRequest, error)
	FindByEmail(ctx context.Context, email string) (*domain.TeacherRequest, error)
	SetStatus(ctx context.Context, id string, status domain.ReviewStatus) (*domain.UpdateResult, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (*domain.InsertResult, error)
	// List returns all feedback, newest first.
	List(ctx context.Context) ([]domain.Feedback, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) (*domain.InsertResult, error)
	FindByClass(ctx context.Context, classID string) ([]domain.Submission, error)
	CountByClass(ctx context.Context, classID string) (int64, error)
}

// PaymentGateway is the third-party payment processor.
type PaymentGateway interface {
	// CreateIntent asks for a card-payable intent and returns its client secret.
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}
