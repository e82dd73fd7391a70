package di

import (
	"fmt"

	"gorm.io/gorm"

	courseadapters "course_api/internal/feature/courses/adapters"
	userentity "course_api/internal/feature/users/domain/entity"
)

// Migrate creates or updates the users and courses tables, including the
// unique index on users.email_address and the courses.user_id foreign key.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userentity.User{}, &courseadapters.CourseModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
