package domain

import "time"

// Enrollment records a student's paid seat in a class.
type Enrollment struct {
	ID            string    `json:"_id,omitempty"`
	ClassID       string    `json:"classId"`
	Title         string    `json:"title"`
	Image         string    `json:"image,omitempty"`
	TeacherName   string    `json:"teacherName,omitempty"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	Date          time.Time `json:"date"`
}

// TeacherRequest is a user's application to be promoted to Teacher.
type TeacherRequest struct {
	ID         string       `json:"_id,omitempty"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Image      string       `json:"image,omitempty"`
	Title      string       `json:"title"`
	Experience string       `json:"experience"`
	Category   string       `json:"category"`
	Status     ReviewStatus `json:"status"`
}

// Feedback is a student's rating of a class.
type Feedback struct {
	ID          string    `json:"_id,omitempty"`
	ClassID     string    `json:"classId"`
	Title       string    `json:"title"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Image       string    `json:"image,omitempty"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Submission is a student's work for one assignment of a class.
type Submission struct {
	ID              string    `json:"_id,omitempty"`
	ClassID         string    `json:"classId"`
	AssignmentTitle string    `json:"assignmentTitle"`
	Email           string    `json:"email"`
	Content         string    `json:"content"`
	SubmittedAt     time.Time `json:"submittedAt"`
}
