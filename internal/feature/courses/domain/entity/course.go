// Package entity defines the domain models for the courses feature.
package entity

import "time"

// Course is a catalog entry created and owned by a single user.
type Course struct {
	ID              uint
	Title           string
	Description     string
	EstimatedTime   string
	MaterialsNeeded string

	// UserID references the owning user. Only the owner may modify the course.
	UserID uint
	Owner  *Owner

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner is the public summary of the user who owns a course.
// It deliberately carries no credential fields.
type Owner struct {
	ID           uint
	FirstName    string
	LastName     string
	EmailAddress string
}

// IsOwnedBy reports whether userID owns the course.
func (c *Course) IsOwnedBy(userID uint) bool {
	return c.UserID == userID
}
