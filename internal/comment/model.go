// Package comment provides the comment domain model, validation and data access.
package comment

import (
	"errors"
	"strings"
	"time"
)

// MinRating and MaxRating bound a comment's star rating.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrNotFound is returned when a comment does not exist.
var ErrNotFound = errors.New("comment not found")

// Comment is a stored visitor message with an optional star rating.
type Comment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Rating    *int      `json:"rating"`
}

// Input is a request to store a new comment.
type Input struct {
	Name    string `json:"name" validate:"required,max=100,singleline"`
	Email   string `json:"email" validate:"required,singleline,email,max=254"`
	Message string `json:"message" validate:"required,max=2000"`
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`

	// RemoteAddr is recorded for moderation and never serialized.
	RemoteAddr string `json:"-" validate:"-"`
}

// Normalize trims surrounding whitespace from the text fields.
func (in *Input) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
}

// Listing is a snapshot of all comments and their average rating.
type Listing struct {
	Comments      []*Comment `json:"comments"`
	AverageRating float64    `json:"averageRating"`
}

// IntPtr returns a pointer to v. Handy for building inputs with a rating.
func IntPtr(v int) *int { return &v }
