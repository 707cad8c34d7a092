package ports

import (
	"context"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

// TokenService issues and verifies stateless access tokens.
type TokenService interface {
	Issue(identity domain.Identity) (string, error)
	Verify(token string) (*domain.Identity, error)
}

type UserService interface {
	// Create inserts the user unless the email is already registered, in
	// which case existed is true and nothing is written.
	Create(ctx context.Context, user *domain.User) (result *domain.InsertResult, existed bool, err error)
	Get(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	HasRole(ctx context.Context, email string, role domain.Role) (bool, error)
	ChangeRole(ctx context.Context, id string, role string) (*domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (*domain.DeleteResult, error)
}

type ClassService interface {
	ListAccepted(ctx context.Context) ([]domain.Class, error)
	ListAll(ctx context.Context) ([]domain.Class, error)
	ListByTeacher(ctx context.Context, email string) ([]domain.Class, error)
	Popular(ctx context.Context) ([]domain.Class, error)
	Get(ctx context.Context, id string) (*domain.Class, error)
	Create(ctx context.Context, class *domain.Class) (*domain.InsertResult, error)
	Update(ctx context.Context, id string, update domain.ClassUpdate) (*domain.UpdateResult, error)
	Review(ctx context.Context, id string, status string) (*domain.UpdateResult, error)
	AddAssignment(ctx context.Context, id string, assignment domain.Assignment, upsert bool) (*domain.UpdateResult, error)
	RecordEnrollment(ctx context.Context, id string) (*domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (*domain.DeleteResult, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, enrollment *domain.Enrollment) (*domain.InsertResult, error)
	ListForStudent(ctx context.Context, email string) ([]domain.Enrollment, error)
}

type TeacherRequestService interface {
	Submit(ctx context.Context, req *domain.TeacherRequest) (*domain.InsertResult, error)
	List(ctx context.Context) ([]domain.TeacherRequest, error)
	GetForEmail(ctx context.Context, email string) (*domain.TeacherRequest, error)
	Review(ctx context.Context, id string, status string) (*domain.UpdateResult, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, feedback *domain.Feedback) (*domain.InsertResult, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, submission *domain.Submission) (*domain.InsertResult, error)
	ListForClass(ctx context.Context, classID string) ([]domain.Submission, error)
	CountForClass(ctx context.Context, classID string) (int64, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (*domain.PaymentIntent, error)
}
