package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names in the tutorSageDB database.
const (
	collectionUsers           = "users"
	collectionClasses         = "classes"
	collectionTeacherRequests = "teacherRequests"
	collectionEnrollments     = "enrollClasses"
	collectionFeedback        = "feedback"
	collectionSubmissions     = "submissions"
)

// collection is a MongoDB collection paired with the deadline applied to each
// repository operation on it.
type collection struct {
	*mongo.Collection
	timeout time.Duration
}

func newCollection(db *mongo.Database, name string, timeout time.Duration) collection {
	return collection{Collection: db.Collection(name), timeout: timeout}
}

// withTimeout bounds ctx by the collection timeout, or defaultTimeout when
// none was configured.
func (c collection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes every repository relies on. The unique
// email index on users is what keeps concurrent sign-ins from creating two
// accounts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionClasses: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "enrolled", Value: -1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		collectionTeacherRequests: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		collectionEnrollments: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		collectionFeedback: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		collectionSubmissions: {
			{Keys: bson.D{{Key: "classId", Value: 1}}},
		},
	}

	for name, indexes := range plan {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
