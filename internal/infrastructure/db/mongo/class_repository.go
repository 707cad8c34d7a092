package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

type ClassRepository struct {
	col collection
}

func NewClassRepository(db *mongo.Database, timeout time.Duration) *ClassRepository {
	return &ClassRepository{col: newCollection(db, collectionClasses, timeout)}
}

type mongoAssignment struct {
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Deadline    string    `bson:"deadline"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type mongoClass struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Image       string             `bson:"image"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	Enrolled    int                `bson:"enrolled"`
	Assignments []mongoAssignment  `bson:"assignments,omitempty"`
}

func (mc mongoClass) toDomain() domain.Class {
	c := domain.Class{
		ID:          mc.ID.Hex(),
		Title:       mc.Title,
		Name:        mc.Name,
		Email:       mc.Email,
		Image:       mc.Image,
		Price:       mc.Price,
		Description: mc.Description,
		Status:      domain.ReviewStatus(mc.Status),
		Enrolled:    mc.Enrolled,
	}
	for _, a := range mc.Assignments {
		c.Assignments = append(c.Assignments, domain.Assignment{
			Title:       a.Title,
			Description: a.Description,
			Deadline:    a.Deadline,
			CreatedAt:   a.CreatedAt,
		})
	}
	return c
}

func (r *ClassRepository) Find(ctx context.Context, f domain.ClassFilter) ([]domain.Class, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	return r.find(ctx, filter, options.Find())
}

func (r *ClassRepository) FindPopular(ctx context.Context, limit int) ([]domain.Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "enrolled", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"status": string(domain.StatusAccepted)}, opts)
}

func (r *ClassRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Class, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionClasses, "find")()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find classes: %w", err)
	}
	var docs []mongoClass
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}

	classes := make([]domain.Class, 0, len(docs))
	for _, d := range docs {
		classes = append(classes, d.toDomain())
	}
	return classes, nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id string) (*domain.Class, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionClasses, "find")()

	var mc mongoClass
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("find class: %w", err)
	}

	c := mc.toDomain()
	return &c, nil
}

func (r *ClassRepository) Create(ctx context.Context, class *domain.Class) (*domain.InsertResult, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionClasses, "insert")()

	doc := mongoClass{
		Title:       class.Title,
		Name:        class.Name,
		Email:       class.Email,
		Image:       class.Image,
		Price:       class.Price,
		Description: class.Description,
		Status:      string(class.Status),
		Enrolled:    class.Enrolled,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}
	return insertResult(res), nil
}

// Update sets only the fields present in update. An empty update touches
// nothing and reports zero matches.
func (r *ClassRepository) Update(ctx context.Context, id string, update domain.ClassUpdate) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return &domain.UpdateResult{Acknowledged: true}, nil
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}

	return r.updateOne(ctx, oid, bson.M{"$set": set}, options.Update())
}

func (r *ClassRepository) SetStatus(ctx context.Context, id string, status domain.ReviewStatus) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.updateOne(ctx, oid, bson.M{"$set": bson.M{"status": string(status)}}, options.Update())
}

func (r *ClassRepository) AppendAssignment(ctx context.Context, id string, a domain.Assignment, upsert bool) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	doc := mongoAssignment{
		Title:       a.Title,
		Description: a.Description,
		Deadline:    a.Deadline,
		CreatedAt:   a.CreatedAt.UTC(),
	}
	return r.updateOne(ctx, oid, bson.M{"$push": bson.M{"assignments": doc}}, options.Update().SetUpsert(upsert))
}

func (r *ClassRepository) IncrementEnrolled(ctx context.Context, id string) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.updateOne(ctx, oid, bson.M{"$inc": bson.M{"enrolled": 1}}, options.Update())
}

func (r *ClassRepository) updateOne(ctx context.Context, oid primitive.ObjectID, update bson.M, opts *options.UpdateOptions) (*domain.UpdateResult, error) {
	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionClasses, "update")()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update, opts)
	if err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}
	return updateResult(res), nil
}

func (r *ClassRepository) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.col.withTimeout(ctx)
	defer cancel()
	defer observe(collectionClasses, "delete")()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("delete class: %w", err)
	}
	return deleteResult(res), nil
}
