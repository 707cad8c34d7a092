package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/service"
)

const testSecret = "router-test-secret"

type testServer struct {
	e       *echo.Echo
	tokens  *service.TokenService
	users   *memUsers
	classes *memClasses
	gateway *recordingGateway
}

func newTestServer(t *testing.T, requireAuthOnOpenWrites bool) *testServer {
	t.Helper()

	log := zerolog.Nop()
	ts := &testServer{
		tokens:  service.NewTokenService(testSecret, time.Hour),
		users:   newMemUsers(),
		classes: newMemClasses(),
		gateway: &recordingGateway{},
	}

	ts.e = NewRouter(Dependencies{
		Tokens:                  ts.tokens,
		Users:                   service.NewUserService(ts.users, log),
		Classes:                 service.NewClassService(ts.classes, log),
		Enrollments:             service.NewEnrollmentService(&memEnrollments{}, log),
		TeacherRequests:         service.NewTeacherRequestService(&memTeacherRequests{}, log),
		Feedback:                service.NewFeedbackService(&memFeedback{}, log),
		Submissions:             service.NewSubmissionService(&memSubmissions{}, log),
		Payments:                service.NewPaymentService(ts.gateway, "usd", log),
		DB:                      okPinger{},
		Logger:                  log,
		AllowedOrigins:          []string{"*"},
		RequireAuthOnOpenWrites: requireAuthOnOpenWrites,
		Registry:                prometheus.NewRegistry(),
	})
	return ts
}

func (ts *testServer) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := ts.tokens.Issue(domain.Identity{Email: email})
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

func TestRouter_Liveness(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tutor Sage Server is Running", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRouter_IssuedTokenAuthenticates(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("a@x.com", domain.RoleStudent)

	rec := ts.do(http.MethodPost, "/jwt", `{"email":"a@x.com"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)

	rec = ts.do(http.MethodGet, "/users/a@x.com", "", resp.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var user domain.User
	decode(t, rec, &user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, domain.RoleStudent, user.Role)
}

func TestRouter_AuthenticationFailuresAreUniform(t *testing.T) {
	ts := newTestServer(t, false)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	forged, err := service.NewTokenService("other-secret", time.Hour).Issue(domain.Identity{Email: "a@x.com"})
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"malformed":      "not-a-jwt",
		"expired":        expired,
		"wrong secret":   forged,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			rec := ts.do(http.MethodGet, "/users/a@x.com", "", tok)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized access", errorOf(t, rec))
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/users/a@x.com", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic "+ts.token(t, "a@x.com"))
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_SelfAccess(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("a@x.com", domain.RoleStudent)
	ts.users.put("b@x.com", domain.RoleStudent)
	tok := ts.token(t, "a@x.com")

	for _, path := range []string{
		"/users/b@x.com",
		"/users/admin/b@x.com",
		"/users/teacher/b@x.com",
		"/users/student/b@x.com",
		"/enrollClasses/b@x.com",
		"/teacherRequests/b@x.com",
	} {
		rec := ts.do(http.MethodGet, path, "", tok)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Equal(t, "forbidden access", errorOf(t, rec), path)
	}

	rec := ts.do(http.MethodGet, "/users/student/a@x.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"student":true}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/users/admin/a@x.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin":false}`, rec.Body.String())
}

func TestRouter_SelfAccessWithEncodedEmail(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("a@x.com", domain.RoleStudent)
	tok := ts.token(t, "a@x.com")

	rec := ts.do(http.MethodGet, "/users/student/a%40x.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"student":true}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/users/a%40x.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var user domain.User
	decode(t, rec, &user)
	assert.Equal(t, "a@x.com", user.Email)

	rec = ts.do(http.MethodGet, "/enrollClasses/a%40x.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/users/b%40x.com", "", tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AbsentRecordsAreNull(t *testing.T) {
	ts := newTestServer(t, false)
	tok := ts.token(t, "new@x.com")

	for _, path := range []string{"/users/new@x.com", "/teacherRequests/new@x.com"} {
		rec := ts.do(http.MethodGet, path, "", tok)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()), path)
	}
}

func TestRouter_RoleGatesHaveNoHierarchy(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("admin@x.com", domain.RoleAdmin)
	ts.users.put("teacher@x.com", domain.RoleTeacher)
	ts.users.put("student@x.com", domain.RoleStudent)

	admin := ts.token(t, "admin@x.com")
	teacher := ts.token(t, "teacher@x.com")
	student := ts.token(t, "student@x.com")
	stranger := ts.token(t, "nobody@x.com")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		want   int
	}{
		{"admin lists users", http.MethodGet, "/users/admin", "", admin, http.StatusOK},
		{"teacher cannot list users", http.MethodGet, "/users/admin", "", teacher, http.StatusForbidden},
		{"admin is not a teacher", http.MethodPost, "/classes", `{"title":"x"}`, admin, http.StatusForbidden},
		{"teacher creates class", http.MethodPost, "/classes", `{"title":"x"}`, teacher, http.StatusOK},
		{"admin is not a student", http.MethodPost, "/feedback", `{"rating":5}`, admin, http.StatusForbidden},
		{"teacher is not a student", http.MethodPost, "/submissions", `{"classId":"c"}`, teacher, http.StatusForbidden},
		{"student leaves feedback", http.MethodPost, "/feedback", `{"rating":5}`, student, http.StatusOK},
		{"unknown user has no role", http.MethodPost, "/feedback", `{"rating":5}`, stranger, http.StatusForbidden},
		{"student cannot count submissions", http.MethodGet, "/submissions/c/count", "", student, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(tc.method, tc.path, tc.body, tc.token)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RoleChangeTakesEffectImmediately(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("admin@x.com", domain.RoleAdmin)
	userID := ts.users.put("s@x.com", domain.RoleStudent)
	admin := ts.token(t, "admin@x.com")
	tok := ts.token(t, "s@x.com")

	rec := ts.do(http.MethodPost, "/classes", `{"title":"x"}`, tok)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPatch, "/users/admin/"+userID, `{"role":"Teacher"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodPost, "/classes", `{"title":"x"}`, tok)
	assert.Equal(t, http.StatusOK, rec.Code, "same token, new stored role")
}

func TestRouter_DuplicateUserSentinel(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodPost, "/users", `{"name":"Ann","email":"a@x.com"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var first domain.InsertResult
	decode(t, rec, &first)
	assert.True(t, first.Acknowledged)
	assert.NotEmpty(t, first.InsertedID)

	rec = ts.do(http.MethodPost, "/users", `{"name":"Ann again","email":"a@x.com"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"user already exists","insertedId":null}`, rec.Body.String())

	users, _ := ts.users.List(context.Background())
	assert.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].Name)
	assert.Equal(t, domain.RoleStudent, users[0].Role)
}

func TestRouter_ClassLifecycle(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("admin@x.com", domain.RoleAdmin)
	ts.users.put("teacher@x.com", domain.RoleTeacher)
	admin := ts.token(t, "admin@x.com")
	teacher := ts.token(t, "teacher@x.com")

	rec := ts.do(http.MethodPost, "/classes", `{"title":"Go","email":"teacher@x.com","price":19.99}`, teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var created domain.InsertResult
	decode(t, rec, &created)

	rec = ts.do(http.MethodPost, "/classes", `{"title":"Pending","email":"teacher@x.com"}`, teacher)
	require.Equal(t, http.StatusOK, rec.Code)

	var public []domain.Class
	decode(t, ts.do(http.MethodGet, "/classes", "", ""), &public)
	assert.Empty(t, public, "new classes await review")

	rec = ts.do(http.MethodPatch, "/classes/admin/"+created.InsertedID, `{"status":"Accepted"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	decode(t, ts.do(http.MethodGet, "/classes", "", ""), &public)
	require.Len(t, public, 1)
	assert.Equal(t, "Go", public[0].Title)

	var mine []domain.Class
	decode(t, ts.do(http.MethodGet, "/myClasses/teacher@x.com", "", teacher), &mine)
	assert.Len(t, mine, 2)

	for i, title := range []string{"Week 1", "Week 2"} {
		rec = ts.do(http.MethodPut, "/classes/"+created.InsertedID, `{"title":"`+title+`","deadline":"2025-01-01"}`, teacher)
		require.Equal(t, http.StatusOK, rec.Code)

		var class domain.Class
		decode(t, ts.do(http.MethodGet, "/classes/"+created.InsertedID, "", ""), &class)
		require.Len(t, class.Assignments, i+1)
		assert.Equal(t, title, class.Assignments[i].Title)
	}

	rec = ts.do(http.MethodPatch, "/classes/enroll/"+created.InsertedID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var popular []domain.Class
	decode(t, ts.do(http.MethodGet, "/classes/popular", "", ""), &popular)
	require.Len(t, popular, 1)
	assert.Equal(t, 1, popular[0].Enrolled)
}

func TestRouter_InvalidObjectIDIsBadRequest(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("admin@x.com", domain.RoleAdmin)
	ts.users.put("teacher@x.com", domain.RoleTeacher)

	cases := []struct {
		method, path, body, token string
	}{
		{http.MethodGet, "/classes/not-an-id", "", ""},
		{http.MethodPatch, "/classes/enroll/123", "", ""},
		{http.MethodDelete, "/classes/xyz", "", ts.token(t, "teacher@x.com")},
		{http.MethodDelete, "/users/admin/xyz", "", ts.token(t, "admin@x.com")},
		{http.MethodPatch, "/teacherRequests/admin/xyz", `{"status":"Accepted"}`, ts.token(t, "admin@x.com")},
	}
	for _, tc := range cases {
		rec := ts.do(tc.method, tc.path, tc.body, tc.token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, "invalid identifier", errorOf(t, rec))
	}
}

func TestRouter_ClosedEnumerations(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("admin@x.com", domain.RoleAdmin)
	id := ts.users.put("s@x.com", domain.RoleStudent)
	admin := ts.token(t, "admin@x.com")

	rec := ts.do(http.MethodPatch, "/users/admin/"+id, `{"role":"admin"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/users", `{"email":"x@x.com","role":"Root"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid role", errorOf(t, rec))
}

func TestRouter_PaymentIntent(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodPost, "/create-payment-intent", `{"price":19.99}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_test_secret"}`, rec.Body.String())
	assert.Equal(t, []int64{1999}, ts.gateway.amounts)

	ts.gateway.err = domain.ErrPaymentFailed
	rec = ts.do(http.MethodPost, "/create-payment-intent", `{"price":5}`, "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouter_OpenWritesSwitch(t *testing.T) {
	paths := []struct{ method, path, body string }{
		{http.MethodPost, "/enrollClasses", `{"classId":"c","email":"s@x.com"}`},
		{http.MethodPost, "/create-payment-intent", `{"price":1}`},
		{http.MethodPost, "/teacherRequests", `{"email":"s@x.com"}`},
		{http.MethodPatch, "/classes/enroll/000000000000000000000000", ""},
	}

	open := newTestServer(t, false)
	for _, p := range paths {
		rec := open.do(p.method, p.path, p.body, "")
		assert.Equal(t, http.StatusOK, rec.Code, "open: "+p.path)
	}

	hardened := newTestServer(t, true)
	tok := hardened.token(t, "s@x.com")
	for _, p := range paths {
		rec := hardened.do(p.method, p.path, p.body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "hardened without token: "+p.path)

		rec = hardened.do(p.method, p.path, p.body, tok)
		assert.Equal(t, http.StatusOK, rec.Code, "hardened with token: "+p.path)
	}
}

func TestRouter_TeacherRequestReview(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("admin@x.com", domain.RoleAdmin)
	admin := ts.token(t, "admin@x.com")

	rec := ts.do(http.MethodPost, "/teacherRequests", `{"email":"s@x.com","title":"Go mentor","status":"Accepted"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var created domain.InsertResult
	decode(t, rec, &created)

	var own domain.TeacherRequest
	decode(t, ts.do(http.MethodGet, "/teacherRequests/s@x.com", "", ts.token(t, "s@x.com")), &own)
	assert.Equal(t, domain.StatusPending, own.Status, "client cannot self-approve")

	rec = ts.do(http.MethodPatch, "/teacherRequests/admin/"+created.InsertedID, `{"status":"Approved"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPatch, "/teacherRequests/admin/"+created.InsertedID, `{"status":"Accepted"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []domain.TeacherRequest
	decode(t, ts.do(http.MethodGet, "/teacherRequests/admin", "", admin), &all)
	require.Len(t, all, 1)
	assert.Equal(t, domain.StatusAccepted, all[0].Status)
}

func TestRouter_Metrics(t *testing.T) {
	ts := newTestServer(t, false)
	ts.do(http.MethodGet, "/", "", "")

	rec := ts.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requests_total")
}

func TestRouter_Readiness(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_StudentCoursework(t *testing.T) {
	ts := newTestServer(t, false)
	ts.users.put("s@x.com", domain.RoleStudent)
	ts.users.put("t@x.com", domain.RoleTeacher)
	student := ts.token(t, "s@x.com")
	teacher := ts.token(t, "t@x.com")

	rec := ts.do(http.MethodGet, "/enrollClasses/s@x.com", "", student)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = ts.do(http.MethodPost, "/enrollClasses", `{"classId":"c1","title":"Go","email":"s@x.com","price":10,"transactionId":"pi_1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/enrollClasses/s@x.com", "", student)
	require.Equal(t, http.StatusOK, rec.Code)
	var enrollments []domain.Enrollment
	decode(t, rec, &enrollments)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "pi_1", enrollments[0].TransactionID)

	for _, body := range []string{
		`{"classId":"c1","assignmentTitle":"hw1","email":"s@x.com","content":"a"}`,
		`{"classId":"c1","assignmentTitle":"hw2","email":"s@x.com","content":"b"}`,
	} {
		rec = ts.do(http.MethodPost, "/submissions", body, student)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodGet, "/submissions/c1/count", "", teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/submissions/c1", "", teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var submissions []domain.Submission
	decode(t, rec, &submissions)
	assert.Len(t, submissions, 2)

	rec = ts.do(http.MethodPost, "/feedback", `{"classId":"c1","rating":4,"description":"clear"}`, student)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/feedback", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var feedback []domain.Feedback
	decode(t, rec, &feedback)
	require.Len(t, feedback, 1)
	assert.Equal(t, 4, feedback[0].Rating)
}
