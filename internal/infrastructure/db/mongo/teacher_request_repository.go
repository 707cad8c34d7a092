package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

type TeacherRequestRepository struct {
	col collection
}

func NewTeacherRequestRepository(db *mongo.Database, timeout time.Duration) *TeacherRequestRepository {
	return &TeacherRequestRepository{col: newCollection(db, collectionTeacherRequests, timeout)}
}

type mongoTeacherRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Image      string             `bson:"image,omitempty"`
	Title      string             `bson:"title"`
	Experience string             `bson:"experience"`
	Category   string             `bson:"category"`
	Status     string             `bson:"status"`
}

func (m mongoTeacherRequest) toDomain() domain.TeacherRequest {
	return domain.TeacherRequest{
		ID:         m.ID.Hex(),
		Name:       m.Name,
		Email:      m.Email,
		Image:      m.Image,
		Title:      m.Title,
		Experience: m.Experience,
		Category:   m.Category,
		Status:     domain.ReviewStatus(m.Status),
	}
}

func (r *TeacherRequestRepository) Create(ctx context.Context, req *domain.TeacherRequest) (*domain.InsertResult, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionTeacherRequests, "insert")()

	res, err := r.col.InsertOne(ctx, mongoTeacherRequest{
		Name:       req.Name,
		Email:      req.Email,
		Image:      req.Image,
		Title:      req.Title,
		Experience: req.Experience,
		Category:   req.Category,
		Status:     string(req.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("insert teacher request: %w", err)
	}
	return insertResult(res), nil
}

func (r *TeacherRequestRepository) List(ctx context.Context) ([]domain.TeacherRequest, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionTeacherRequests, "find")()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list teacher requests: %w", err)
	}
	var docs []mongoTeacherRequest
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode teacher requests: %w", err)
	}

	out := make([]domain.TeacherRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TeacherRequestRepository) FindByEmail(ctx context.Context, email string) (*domain.TeacherRequest, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionTeacherRequests, "find")()

	var m mongoTeacherRequest
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeacherRequestNotFound
		}
		return nil, fmt.Errorf("find teacher request: %w", err)
	}

	req := m.toDomain()
	return &req, nil
}

func (r *TeacherRequestRepository) SetStatus(ctx context.Context, id string, status domain.ReviewStatus) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionTeacherRequests, "update")()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return nil, fmt.Errorf("update teacher request: %w", err)
	}
	return updateResult(res), nil
}
