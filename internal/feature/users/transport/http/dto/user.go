// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

import (
	"course_api/internal/feature/users/domain/entity"
	"course_api/internal/feature/users/usecase"
)

// CreateUserRequest represents the request body for POST /users.
// Field rules are enforced by the usecase so that every failure is reported at once.
type CreateUserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// ToInput converts the request into usecase input.
func (r CreateUserRequest) ToInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		EmailAddress: r.EmailAddress,
		Password:     r.Password,
	}
}

// CurrentUserResponse is the body of GET /users. The password hash is never exposed.
type CurrentUserResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// NewCurrentUserResponse builds the response from the authenticated user.
func NewCurrentUserResponse(u *entity.User) CurrentUserResponse {
	return CurrentUserResponse{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}
