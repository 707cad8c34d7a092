package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

type FeedbackRepository struct {
	col collection
}

func NewFeedbackRepository(db *mongo.Database, timeout time.Duration) *FeedbackRepository {
	return &FeedbackRepository{col: newCollection(db, collectionFeedback, timeout)}
}

type mongoFeedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ClassID     string             `bson:"classId"`
	Title       string             `bson:"title"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Image       string             `bson:"image,omitempty"`
	Rating      int                `bson:"rating"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.InsertResult, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionFeedback, "insert")()

	res, err := r.col.InsertOne(ctx, mongoFeedback{
		ClassID:     f.ClassID,
		Title:       f.Title,
		Name:        f.Name,
		Email:       f.Email,
		Image:       f.Image,
		Rating:      f.Rating,
		Description: f.Description,
		CreatedAt:   f.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return insertResult(res), nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionFeedback, "find")()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	var docs []mongoFeedback
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	out := make([]domain.Feedback, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Feedback{
			ID:          d.ID.Hex(),
			ClassID:     d.ClassID,
			Title:       d.Title,
			Name:        d.Name,
			Email:       d.Email,
			Image:       d.Image,
			Rating:      d.Rating,
			Description: d.Description,
			CreatedAt:   d.CreatedAt,
		})
	}
	return out, nil
}
