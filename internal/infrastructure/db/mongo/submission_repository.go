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

type SubmissionRepository struct {
	col collection
}

func NewSubmissionRepository(db *mongo.Database, timeout time.Duration) *SubmissionRepository {
	return &SubmissionRepository{col: newCollection(db, collectionSubmissions, timeout)}
}

type mongoSubmission struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ClassID         string             `bson:"classId"`
	AssignmentTitle string             `bson:"assignmentTitle"`
	Email           string             `bson:"email"`
	Content         string             `bson:"content"`
	SubmittedAt     time.Time          `bson:"submittedAt"`
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) (*domain.InsertResult, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionSubmissions, "insert")()

	res, err := r.col.InsertOne(ctx, mongoSubmission{
		ClassID:         s.ClassID,
		AssignmentTitle: s.AssignmentTitle,
		Email:           s.Email,
		Content:         s.Content,
		SubmittedAt:     s.SubmittedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return insertResult(res), nil
}

func (r *SubmissionRepository) FindByClass(ctx context.Context, classID string) ([]domain.Submission, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionSubmissions, "find")()

	cur, err := r.col.Find(ctx, bson.M{"classId": classID})
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}
	var docs []mongoSubmission
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	out := make([]domain.Submission, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Submission{
			ID:              d.ID.Hex(),
			ClassID:         d.ClassID,
			AssignmentTitle: d.AssignmentTitle,
			Email:           d.Email,
			Content:         d.Content,
			SubmittedAt:     d.SubmittedAt,
		})
	}
	return out, nil
}

func (r *SubmissionRepository) CountByClass(ctx context.Context, classID string) (int64, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionSubmissions, "count")()

	n, err := r.col.CountDocuments(ctx, bson.M{"classId": classID})
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}
