// Package usecase implements the business logic for the courses feature.
package usecase

import "errors"

var (
	// ErrCourseNotFound is returned when no course exists with the requested ID.
	ErrCourseNotFound = errors.New("course not found")

	// ErrForbidden is returned when the authenticated user does not own the course.
	ErrForbidden = errors.New("user does not own the course")

	// ErrOwnerNotFound is returned when the owning user no longer exists.
	ErrOwnerNotFound = errors.New("course owner not found")
)
