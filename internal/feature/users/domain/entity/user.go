// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User represents a registered user of the course catalog.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	FirstName string `gorm:"size:255;not null"`
	LastName  string `gorm:"size:255;not null"`

	// EmailAddress is the login identifier used for Basic authentication.
	// It must be unique across all users and is matched case-sensitively.
	EmailAddress string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// The plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
