package domain

import "time"

// Assignment is embedded in a class and appended by its teacher.
type Assignment struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    string    `json:"deadline"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Class is a course listing offered by a teacher.
type Class struct {
	ID          string       `json:"_id,omitempty"`
	Title       string       `json:"title"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Image       string       `json:"image"`
	Price       float64      `json:"price"`
	Description string       `json:"description"`
	Status      ReviewStatus `json:"status"`
	Enrolled    int          `json:"enrolled"`
	Assignments []Assignment `json:"assignments,omitempty"`
}

// ClassFilter narrows class listings. Zero fields are ignored.
type ClassFilter struct {
	Status ReviewStatus
	Email  string
}

// ClassUpdate carries the teacher-editable fields; nil means unchanged.
type ClassUpdate struct {
	Title       *string
	Image       *string
	Price       *float64
	Description *string
}

// Empty reports whether the update would not touch any field.
func (u ClassUpdate) Empty() bool {
	return u.Title == nil && u.Image == nil && u.Price == nil && u.Description == nil
}
