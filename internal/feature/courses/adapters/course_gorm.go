// Package adapters provides repository implementations for the courses feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"course_api/internal/feature/courses/domain/entity"
	"course_api/internal/feature/courses/usecase"
	userentity "course_api/internal/feature/users/domain/entity"
	"course_api/internal/platform/db"
)

// CourseModel is the GORM model for the courses table.
// The belongs-to association creates the foreign key to users.id on migration.
type CourseModel struct {
	ID              uint            `gorm:"primaryKey"`
	Title           string          `gorm:"size:255;not null"`
	Description     string          `gorm:"type:text;not null"`
	EstimatedTime   string          `gorm:"size:255;not null"`
	MaterialsNeeded string          `gorm:"size:255;not null"`
	UserID          uint            `gorm:"not null;index"`
	User            userentity.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM.
func (CourseModel) TableName() string {
	return "courses"
}

// ToEntity converts the GORM model to a domain entity.
// The owner summary is only set when the User association was preloaded.
func (m *CourseModel) ToEntity() entity.Course {
	c := entity.Course{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		EstimatedTime:   m.EstimatedTime,
		MaterialsNeeded: m.MaterialsNeeded,
		UserID:          m.UserID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.User.ID != 0 {
		c.Owner = &entity.Owner{
			ID:           m.User.ID,
			FirstName:    m.User.FirstName,
			LastName:     m.User.LastName,
			EmailAddress: m.User.EmailAddress,
		}
	}
	return c
}

// CourseModelFromEntity converts a domain entity to a GORM model.
func CourseModelFromEntity(c *entity.Course) *CourseModel {
	return &CourseModel{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type courseGorm struct {
	db *gorm.DB
}

var _ usecase.CourseRepository = (*courseGorm)(nil)

// NewCourseRepository creates a new instance of courseGorm.
func NewCourseRepository(db *gorm.DB) *courseGorm {
	return &courseGorm{db: db}
}

// withOwner preloads the owner without the password hash.
func withOwner(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User", func(q *gorm.DB) *gorm.DB {
		return q.Select("id", "first_name", "last_name", "email_address")
	})
}

// List returns every course with its owner, ordered by ID.
func (r *courseGorm) List(ctx context.Context) ([]entity.Course, error) {
	var rows []CourseModel
	if err := withOwner(r.db.WithContext(ctx)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Course, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

// FindByID returns the course with its owner.
func (r *courseGorm) FindByID(ctx context.Context, id uint) (*entity.Course, error) {
	var m CourseModel
	if err := withOwner(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCourseNotFound
		}
		return nil, err
	}
	c := m.ToEntity()
	return &c, nil
}

// Create inserts the course and copies the generated ID and timestamps back.
func (r *courseGorm) Create(ctx context.Context, c *entity.Course) error {
	m := CourseModelFromEntity(c)
	if err := r.db.WithContext(ctx).Omit("User").Create(m).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return usecase.ErrOwnerNotFound
		}
		return err
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	c.UpdatedAt = m.UpdatedAt
	return nil
}

// Update overwrites the editable columns. The owner column is never touched.
func (r *courseGorm) Update(ctx context.Context, c *entity.Course) error {
	result := r.db.WithContext(ctx).
		Model(&CourseModel{ID: c.ID}).
		Select("title", "description", "estimated_time", "materials_needed").
		Updates(CourseModel{
			Title:           c.Title,
			Description:     c.Description,
			EstimatedTime:   c.EstimatedTime,
			MaterialsNeeded: c.MaterialsNeeded,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrCourseNotFound
	}
	return nil
}

// Delete removes the course by ID.
func (r *courseGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&CourseModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrCourseNotFound
	}
	return nil
}
