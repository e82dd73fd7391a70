// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrBadPassword is returned when the supplied password does not match the stored hash.
	ErrBadPassword = errors.New("password does not match")

	// ErrInvalidCredentials wraps every authentication failure caused by the
	// supplied credentials (unknown email or wrong password), as opposed to
	// storage failures.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
