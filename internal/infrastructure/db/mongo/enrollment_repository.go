package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

type EnrollmentRepository struct {
	col collection
}

func NewEnrollmentRepository(db *mongo.Database, timeout time.Duration) *EnrollmentRepository {
	return &EnrollmentRepository{col: newCollection(db, collectionEnrollments, timeout)}
}

type mongoEnrollment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ClassID       string             `bson:"classId"`
	Title         string             `bson:"title"`
	Image         string             `bson:"image,omitempty"`
	TeacherName   string             `bson:"teacherName,omitempty"`
	Email         string             `bson:"email"`
	Price         float64            `bson:"price"`
	TransactionID string             `bson:"transactionId"`
	Date          time.Time          `bson:"date"`
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) (*domain.InsertResult, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionEnrollments, "insert")()

	res, err := r.col.InsertOne(ctx, mongoEnrollment{
		ClassID:       e.ClassID,
		Title:         e.Title,
		Image:         e.Image,
		TeacherName:   e.TeacherName,
		Email:         e.Email,
		Price:         e.Price,
		TransactionID: e.TransactionID,
		Date:          e.Date.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}
	return insertResult(res), nil
}

func (r *EnrollmentRepository) FindByEmail(ctx context.Context, email string) ([]domain.Enrollment, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionEnrollments, "find")()

	cur, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("find enrollments: %w", err)
	}
	var docs []mongoEnrollment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode enrollments: %w", err)
	}

	out := make([]domain.Enrollment, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Enrollment{
			ID:            d.ID.Hex(),
			ClassID:       d.ClassID,
			Title:         d.Title,
			Image:         d.Image,
			TeacherName:   d.TeacherName,
			Email:         d.Email,
			Price:         d.Price,
			TransactionID: d.TransactionID,
			Date:          d.Date,
		})
	}
	return out, nil
}
