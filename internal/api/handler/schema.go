package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Tokens ---

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Users ---

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
}

// userExistsResponse is returned with 200 when POST /users finds the email
// already registered. It keeps the shape of a successful insert result, with
// insertedId null, so sign-in clients that check insertedId need no separate
// branch for returning users.
type userExistsResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=Student Teacher Admin"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Rejected"`
}

// --- Classes ---

type classRequest struct {
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type classUpdateRequest struct {
	Title       *string  `json:"title"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type assignmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// --- Enrollments, requests, feedback, submissions ---

type enrollmentRequest struct {
	ClassID       string  `json:"classId"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	TeacherName   string  `json:"teacherName"`
	Email         string  `json:"email"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId"`
}

type teacherRequestRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Image      string `json:"image"`
	Title      string `json:"title"`
	Experience string `json:"experience"`
	Category   string `json:"category"`
}

type feedbackRequest struct {
	ClassID     string `json:"classId"`
	Title       string `json:"title"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Image       string `json:"image"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

type submissionRequest struct {
	ClassID         string `json:"classId"`
	AssignmentTitle string `json:"assignmentTitle"`
	Email           string `json:"email"`
	Content         string `json:"content"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// --- Payments ---

type paymentRequest struct {
	Price float64 `json:"price"`
}

type paymentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
