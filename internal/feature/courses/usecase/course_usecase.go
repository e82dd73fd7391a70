package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"course_api/internal/feature/courses/domain/entity"
	"course_api/internal/platform/validation"
)

// CourseRepository abstracts the persistence layer for courses.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CourseRepository interface {
	// List returns every course with its owner summary, ordered by ID.
	List(ctx context.Context) ([]entity.Course, error)

	// FindByID returns the course with its owner summary, or ErrCourseNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Course, error)

	// Create persists a new course and sets its ID.
	// It returns ErrOwnerNotFound if UserID references no user.
	Create(ctx context.Context, course *entity.Course) error

	// Update overwrites the editable fields of an existing course, or returns ErrCourseNotFound.
	Update(ctx context.Context, course *entity.Course) error

	// Delete removes the course, or returns ErrCourseNotFound.
	Delete(ctx context.Context, id uint) error
}

// CourseInput holds the editable fields of a course.
type CourseInput struct {
	Title           string `validate:"required"`
	Description     string `validate:"required"`
	EstimatedTime   string `validate:"required"`
	MaterialsNeeded string `validate:"required"`
}

var courseRules = validation.Rules{
	"Title.required":           "Please provide a title.",
	"Description.required":     "Please provide a description.",
	"EstimatedTime.required":   "Please provide an estimated time.",
	"MaterialsNeeded.required": "Please provide the materials needed.",
}

func (in CourseInput) normalize() CourseInput {
	return CourseInput{
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		EstimatedTime:   strings.TrimSpace(in.EstimatedTime),
		MaterialsNeeded: strings.TrimSpace(in.MaterialsNeeded),
	}
}

// CourseUsecase provides business logic for course operations.
type CourseUsecase struct {
	repo CourseRepository
}

// NewCourseUsecase creates a new CourseUsecase with the given repository.
func NewCourseUsecase(r CourseRepository) *CourseUsecase {
	return &CourseUsecase{repo: r}
}

// List returns all courses.
func (u *CourseUsecase) List(ctx context.Context) ([]entity.Course, error) {
	return u.repo.List(ctx)
}

// Get returns a single course.
func (u *CourseUsecase) Get(ctx context.Context, id uint) (*entity.Course, error) {
	return u.repo.FindByID(ctx, id)
}

// Create validates the input and creates a course owned by ownerID.
func (u *CourseUsecase) Create(ctx context.Context, ownerID uint, in CourseInput) (*entity.Course, error) {
	in = in.normalize()
	if err := validation.Validate(in, courseRules); err != nil {
		return nil, err
	}

	course := &entity.Course{
		Title:           in.Title,
		Description:     in.Description,
		EstimatedTime:   in.EstimatedTime,
		MaterialsNeeded: in.MaterialsNeeded,
		UserID:          ownerID,
	}
	if err := u.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	slog.InfoContext(ctx, "course created", "course_id", course.ID, "user_id", ownerID)
	return course, nil
}

// Update loads the course, checks that userID owns it, validates the input
// and applies it. Nothing is written unless every check passes.
func (u *CourseUsecase) Update(ctx context.Context, userID, id uint, in CourseInput) error {
	course, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureOwner(ctx, course, userID); err != nil {
		return err
	}

	in = in.normalize()
	if err := validation.Validate(in, courseRules); err != nil {
		return err
	}

	course.Title = in.Title
	course.Description = in.Description
	course.EstimatedTime = in.EstimatedTime
	course.MaterialsNeeded = in.MaterialsNeeded
	if err := u.repo.Update(ctx, course); err != nil {
		return fmt.Errorf("failed to update course %d: %w", id, err)
	}
	slog.InfoContext(ctx, "course updated", "course_id", id, "user_id", userID)
	return nil
}

// Delete loads the course, checks that userID owns it and deletes it.
func (u *CourseUsecase) Delete(ctx context.Context, userID, id uint) error {
	course, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureOwner(ctx, course, userID); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}
	slog.InfoContext(ctx, "course deleted", "course_id", id, "user_id", userID)
	return nil
}

// ensureOwner is the ownership guard for mutating operations.
func ensureOwner(ctx context.Context, course *entity.Course, userID uint) error {
	if !course.IsOwnedBy(userID) {
		slog.WarnContext(ctx, "ownership check failed", "course_id", course.ID, "owner_id", course.UserID, "user_id", userID)
		return ErrForbidden
	}
	return nil
}
