package api

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
)

// In-memory repositories that mimic the mongo adapters closely enough for
// end-to-end router tests: hex ObjectIDs, ErrInvalidID on malformed ids and a
// unique email on users.

func parseID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]domain.User{}} }

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) List(context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.byEmail))
	for _, u := range m.byEmail {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	stored := *u
	stored.ID = primitive.NewObjectID().Hex()
	m.byEmail[u.Email] = stored
	return &domain.InsertResult{Acknowledged: true, InsertedID: stored.ID}, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.UpdateResult, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, u := range m.byEmail {
		if u.ID == id {
			u.Role = role
			m.byEmail[email] = u
			return &domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &domain.UpdateResult{Acknowledged: true}, nil
}

func (m *memUsers) Delete(_ context.Context, id string) (*domain.DeleteResult, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, u := range m.byEmail {
		if u.ID == id {
			delete(m.byEmail, email)
			return &domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &domain.DeleteResult{Acknowledged: true}, nil
}

// put stores a user directly, bypassing the service.
func (m *memUsers) put(email string, role domain.Role) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID().Hex()
	m.byEmail[email] = domain.User{ID: id, Email: email, Role: role}
	return id
}

type memClasses struct {
	mu   sync.Mutex
	byID map[string]*domain.Class
}

func newMemClasses() *memClasses { return &memClasses{byID: map[string]*domain.Class{}} }

func (m *memClasses) Find(_ context.Context, f domain.ClassFilter) ([]domain.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Class{}
	for _, c := range m.byID {
		if (f.Status == "" || c.Status == f.Status) && (f.Email == "" || c.Email == f.Email) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memClasses) FindPopular(ctx context.Context, limit int) ([]domain.Class, error) {
	out, _ := m.Find(ctx, domain.ClassFilter{Status: domain.StatusAccepted})
	sort.Slice(out, func(i, j int) bool { return out[i].Enrolled > out[j].Enrolled })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memClasses) FindByID(_ context.Context, id string) (*domain.Class, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *memClasses) Create(_ context.Context, c *domain.Class) (*domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *c
	stored.ID = primitive.NewObjectID().Hex()
	m.byID[stored.ID] = &stored
	return &domain.InsertResult{Acknowledged: true, InsertedID: stored.ID}, nil
}

func (m *memClasses) mutate(id string, upsert bool, fn func(c *domain.Class)) (*domain.UpdateResult, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		if !upsert {
			return &domain.UpdateResult{Acknowledged: true}, nil
		}
		c = &domain.Class{ID: id}
		fn(c)
		m.byID[id] = c
		return &domain.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
	}
	fn(c)
	return &domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memClasses) Update(_ context.Context, id string, u domain.ClassUpdate) (*domain.UpdateResult, error) {
	return m.mutate(id, false, func(c *domain.Class) {
		if u.Title != nil {
			c.Title = *u.Title
		}
		if u.Price != nil {
			c.Price = *u.Price
		}
	})
}

func (m *memClasses) SetStatus(_ context.Context, id string, st domain.ReviewStatus) (*domain.UpdateResult, error) {
	return m.mutate(id, false, func(c *domain.Class) { c.Status = st })
}

func (m *memClasses) AppendAssignment(_ context.Context, id string, a domain.Assignment, upsert bool) (*domain.UpdateResult, error) {
	return m.mutate(id, upsert, func(c *domain.Class) { c.Assignments = append(c.Assignments, a) })
}

func (m *memClasses) IncrementEnrolled(_ context.Context, id string) (*domain.UpdateResult, error) {
	return m.mutate(id, false, func(c *domain.Class) { c.Enrolled++ })
}

func (m *memClasses) Delete(_ context.Context, id string) (*domain.DeleteResult, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return &domain.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.byID, id)
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type memEnrollments struct {
	mu    sync.Mutex
	items []domain.Enrollment
}

func (m *memEnrollments) Create(_ context.Context, e *domain.Enrollment) (*domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *e
	stored.ID = primitive.NewObjectID().Hex()
	m.items = append(m.items, stored)
	return &domain.InsertResult{Acknowledged: true, InsertedID: stored.ID}, nil
}

func (m *memEnrollments) FindByEmail(_ context.Context, email string) ([]domain.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Enrollment{}
	for _, e := range m.items {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

type memTeacherRequests struct {
	mu    sync.Mutex
	items []domain.TeacherRequest
}

func (m *memTeacherRequests) Create(_ context.Context, r *domain.TeacherRequest) (*domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *r
	stored.ID = primitive.NewObjectID().Hex()
	m.items = append(m.items, stored)
	return &domain.InsertResult{Acknowledged: true, InsertedID: stored.ID}, nil
}

func (m *memTeacherRequests) List(context.Context) ([]domain.TeacherRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TeacherRequest{}, m.items...), nil
}

func (m *memTeacherRequests) FindByEmail(_ context.Context, email string) (*domain.TeacherRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.items {
		if r.Email == email {
			clone := r
			return &clone, nil
		}
	}
	return nil, domain.ErrTeacherRequestNotFound
}

func (m *memTeacherRequests) SetStatus(_ context.Context, id string, st domain.ReviewStatus) (*domain.UpdateResult, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Status = st
			return &domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &domain.UpdateResult{Acknowledged: true}, nil
}

type memFeedback struct {
	mu    sync.Mutex
	items []domain.Feedback
}

func (m *memFeedback) Create(_ context.Context, f *domain.Feedback) (*domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *f
	stored.ID = primitive.NewObjectID().Hex()
	m.items = append(m.items, stored)
	return &domain.InsertResult{Acknowledged: true, InsertedID: stored.ID}, nil
}

func (m *memFeedback) List(context.Context) ([]domain.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]domain.Feedback{}, m.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memSubmissions struct {
	mu    sync.Mutex
	items []domain.Submission
}

func (m *memSubmissions) Create(_ context.Context, s *domain.Submission) (*domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *s
	stored.ID = primitive.NewObjectID().Hex()
	m.items = append(m.items, stored)
	return &domain.InsertResult{Acknowledged: true, InsertedID: stored.ID}, nil
}

func (m *memSubmissions) FindByClass(_ context.Context, classID string) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Submission{}
	for _, s := range m.items {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubmissions) CountByClass(ctx context.Context, classID string) (int64, error) {
	items, _ := m.FindByClass(ctx, classID)
	return int64(len(items)), nil
}

type recordingGateway struct {
	mu      sync.Mutex
	amounts []int64
	err     error
}

func (g *recordingGateway) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	g.amounts = append(g.amounts, amount)
	return "pi_test_secret", nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context, *readpref.ReadPref) error { return nil }
