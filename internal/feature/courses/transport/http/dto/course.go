// Package dto defines data transfer objects for the courses HTTP API.
package dto

import (
	"course_api/internal/feature/courses/domain/entity"
	"course_api/internal/feature/courses/usecase"
)

// CourseRequest is the body of POST /courses and PUT /courses/:id.
// The owner is always taken from the authenticated user; a userId in the body is ignored.
type CourseRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
}

// ToInput converts the request into usecase input.
func (r CourseRequest) ToInput() usecase.CourseInput {
	return usecase.CourseInput{
		Title:           r.Title,
		Description:     r.Description,
		EstimatedTime:   r.EstimatedTime,
		MaterialsNeeded: r.MaterialsNeeded,
	}
}

// OwnerSummary is the public view of a course owner.
type OwnerSummary struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// CourseResponse represents a course in the API response.
type CourseResponse struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	EstimatedTime   string        `json:"estimatedTime"`
	MaterialsNeeded string        `json:"materialsNeeded"`
	UserID          uint          `json:"userId"`
	User            *OwnerSummary `json:"user"`
}

// NewCourseResponse converts a domain course into its response form.
func NewCourseResponse(c entity.Course) CourseResponse {
	out := CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
	}
	if c.Owner != nil {
		out.User = &OwnerSummary{
			ID:           c.Owner.ID,
			FirstName:    c.Owner.FirstName,
			LastName:     c.Owner.LastName,
			EmailAddress: c.Owner.EmailAddress,
		}
	}
	return out
}

// NewCourseList converts a slice of courses. It never returns nil so the body is [] when empty.
func NewCourseList(courses []entity.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
