package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

const MaxTitleLength = 100

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrNoFieldsToUpdate  = errors.New("no field to update")
	ErrUpdateForbidden   = errors.New("you do not have permission to update this complaint")
	ErrDeleteForbidden   = errors.New("you do not have permission to delete this complaint")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPayload    = errors.New("invalid payload")
)

// Complaint is a record owned by exactly one user. OwnerID is fixed at
// creation time.
type Complaint struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     int64     `json:"owner_id"`
}

// OwnedBy reports whether userID may mutate the complaint.
func (c *Complaint) OwnedBy(userID int64) bool {
	return c.OwnerID == userID
}

// ValidateTitle enforces the column bound on titles.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, MaxTitleLength)
	}
	return nil
}
