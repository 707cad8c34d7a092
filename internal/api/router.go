package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tutorsage/tutor-sage-server/internal/api/handler"
	"github.com/tutorsage/tutor-sage-server/internal/api/middleware"
	"github.com/tutorsage/tutor-sage-server/internal/core/domain"
	"github.com/tutorsage/tutor-sage-server/internal/core/ports"
	"github.com/tutorsage/tutor-sage-server/internal/infrastructure/http/handlers"

	_ "github.com/tutorsage/tutor-sage-server/docs"
)

// Dependencies are the services the router wires into handlers and gates.
type Dependencies struct {
	Tokens          ports.TokenService
	Users           ports.UserService
	Classes         ports.ClassService
	Enrollments     ports.EnrollmentService
	TeacherRequests ports.TeacherRequestService
	Feedback        ports.FeedbackService
	Submissions     ports.SubmissionService
	Payments        ports.PaymentService
	DB              handlers.Pinger

	Logger         zerolog.Logger
	AllowedOrigins []string
	// RequireAuthOnOpenWrites attaches the authentication gate to the
	// enrollment, payment and teacher-request writes.
	RequireAuthOnOpenWrites bool

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// route is one entry of the route table. Gates run in order before handler.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	gates   []echo.MiddlewareFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.UnescapePathParams())

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "tutor_sage",
		Registerer: registerer,
	}))

	for _, r := range routes(deps) {
		e.Add(r.method, r.path, r.handler, r.gates...)
	}

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func routes(deps Dependencies) []route {
	var (
		health          = handlers.NewHealthHandler(deps.DB)
		tokens          = handler.NewTokenHandler(deps.Tokens)
		users           = handler.NewUserHandler(deps.Users)
		classes         = handler.NewClassHandler(deps.Classes)
		enrollments     = handler.NewEnrollmentHandler(deps.Enrollments)
		teacherRequests = handler.NewTeacherRequestHandler(deps.TeacherRequests)
		feedback        = handler.NewFeedbackHandler(deps.Feedback)
		submissions     = handler.NewSubmissionHandler(deps.Submissions)
		payments        = handler.NewPaymentHandler(deps.Payments)
	)

	authn := middleware.Authenticate(deps.Tokens)
	self := middleware.RequireSelf("email")
	admin := middleware.RequireRole(deps.Users, domain.RoleAdmin)
	teacher := middleware.RequireRole(deps.Users, domain.RoleTeacher)
	student := middleware.RequireRole(deps.Users, domain.RoleStudent)

	// Writes the browser client issues before or during checkout.
	var open []echo.MiddlewareFunc
	if deps.RequireAuthOnOpenWrites {
		open = []echo.MiddlewareFunc{authn}
	}

	gates := func(g ...echo.MiddlewareFunc) []echo.MiddlewareFunc { return g }

	return []route{
		{http.MethodGet, "/", health.Liveness, nil},
		{http.MethodGet, "/health/ready", health.Readiness, nil},

		{http.MethodPost, "/jwt", tokens.Issue, nil},

		{http.MethodPost, "/users", users.Create, nil},
		{http.MethodGet, "/users/admin", users.List, gates(authn, admin)},
		{http.MethodPatch, "/users/admin/:id", users.ChangeRole, gates(authn, admin)},
		{http.MethodDelete, "/users/admin/:id", users.Delete, gates(authn, admin)},
		{http.MethodGet, "/users/admin/:email", users.HasRole(domain.RoleAdmin), gates(authn, self)},
		{http.MethodGet, "/users/teacher/:email", users.HasRole(domain.RoleTeacher), gates(authn, self)},
		{http.MethodGet, "/users/student/:email", users.HasRole(domain.RoleStudent), gates(authn, self)},
		{http.MethodGet, "/users/:email", users.Get, gates(authn, self)},

		{http.MethodPost, "/teacherRequests", teacherRequests.Submit, open},
		{http.MethodGet, "/teacherRequests/admin", teacherRequests.List, gates(authn, admin)},
		{http.MethodPatch, "/teacherRequests/admin/:id", teacherRequests.Review, gates(authn, admin)},
		{http.MethodGet, "/teacherRequests/:email", teacherRequests.GetForEmail, gates(authn, self)},

		{http.MethodGet, "/classes", classes.ListAccepted, nil},
		{http.MethodGet, "/classes/popular", classes.Popular, nil},
		{http.MethodGet, "/classes/admin", classes.ListAll, gates(authn, admin)},
		{http.MethodPatch, "/classes/admin/:id", classes.Review, gates(authn, admin)},
		{http.MethodPatch, "/classes/enroll/:id", classes.RecordEnrollment, open},
		{http.MethodGet, "/classes/:id", classes.Get, nil},
		{http.MethodPost, "/classes", classes.Create, gates(authn, teacher)},
		{http.MethodPatch, "/classes/:id", classes.Update, gates(authn, teacher)},
		{http.MethodPut, "/classes/:id", classes.AddAssignment, gates(authn, teacher)},
		{http.MethodDelete, "/classes/:id", classes.Delete, gates(authn, teacher)},
		{http.MethodGet, "/myClasses/:email", classes.ListByTeacher, gates(authn, teacher, self)},

		{http.MethodPost, "/enrollClasses", enrollments.Create, open},
		{http.MethodGet, "/enrollClasses/:email", enrollments.ListForStudent, gates(authn, self)},

		{http.MethodPost, "/feedback", feedback.Submit, gates(authn, student)},
		{http.MethodGet, "/feedback", feedback.List, nil},

		{http.MethodPost, "/submissions", submissions.Submit, gates(authn, student)},
		{http.MethodGet, "/submissions/:classId", submissions.ListForClass, gates(authn, teacher)},
		{http.MethodGet, "/submissions/:classId/count", submissions.Count, gates(authn, teacher)},

		{http.MethodPost, "/create-payment-intent", payments.CreateIntent, open},
	}
}
