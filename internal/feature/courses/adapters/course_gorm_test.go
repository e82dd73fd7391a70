package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course_api/internal/feature/courses/domain/entity"
	"course_api/internal/feature/courses/usecase"
	userentity "course_api/internal/feature/users/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(&userentity.User{}, &CourseModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedUser はテスト用のユーザーを作成します。
func seedUser(t *testing.T, db *gorm.DB, email string) *userentity.User {
	t.Helper()

	u := &userentity.User{FirstName: "Joe", LastName: "Smith", EmailAddress: email, Password: "$2a$10$secret-hash"}
	require.NoError(t, db.Create(u).Error, "failed to seed user")
	return u
}

func newCourse(userID uint, title string) *entity.Course {
	return &entity.Course{
		Title:           title,
		Description:     "High-end furniture projects are great to dream about.",
		EstimatedTime:   "12 hours",
		MaterialsNeeded: "* 1/2 x 3/4 inch parting strip",
		UserID:          userID,
	}
}

func TestNewCourseRepository(t *testing.T) {
	t.Parallel()

	repo := NewCourseRepository(setupTestDB(t))

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestCourseGorm_CreateAndFind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCourseRepository(db)
	owner := seedUser(t, db, "joe@smith.com")

	course := newCourse(owner.ID, "Build a Basic Bookcase")
	require.NoError(t, repo.Create(context.Background(), course))
	require.NotZero(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())

	found, err := repo.FindByID(context.Background(), course.ID)

	require.NoError(t, err)
	assert.Equal(t, "Build a Basic Bookcase", found.Title)
	assert.Equal(t, owner.ID, found.UserID)
	require.NotNil(t, found.Owner)
	assert.Equal(t, entity.Owner{ID: owner.ID, FirstName: "Joe", LastName: "Smith", EmailAddress: "joe@smith.com"}, *found.Owner)
}

func TestCourseGorm_Create_UnknownOwner(t *testing.T) {
	t.Parallel()

	repo := NewCourseRepository(setupTestDB(t))

	err := repo.Create(context.Background(), newCourse(999, "Orphan"))

	assert.ErrorIs(t, err, usecase.ErrOwnerNotFound)
}

func TestCourseGorm_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewCourseRepository(setupTestDB(t))

	found, err := repo.FindByID(context.Background(), 12345)

	assert.Nil(t, found)
	assert.ErrorIs(t, err, usecase.ErrCourseNotFound)
}

func TestCourseGorm_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		titles         []string
		expectedTitles []string
	}{
		{name: "success: empty table", titles: nil, expectedTitles: []string{}},
		{
			name:           "success: ordered by id with owners",
			titles:         []string{"Build a Basic Bookcase", "Learn How to Program", "Learn How to Test Programs"},
			expectedTitles: []string{"Build a Basic Bookcase", "Learn How to Program", "Learn How to Test Programs"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewCourseRepository(db)
			owner := seedUser(t, db, "joe@smith.com")
			for _, title := range tt.titles {
				require.NoError(t, repo.Create(context.Background(), newCourse(owner.ID, title)))
			}

			courses, err := repo.List(context.Background())

			require.NoError(t, err)
			titles := make([]string, 0, len(courses))
			for _, c := range courses {
				titles = append(titles, c.Title)
				require.NotNil(t, c.Owner)
				assert.Equal(t, "joe@smith.com", c.Owner.EmailAddress)
			}
			assert.Equal(t, tt.expectedTitles, titles)
		})
	}
}

func TestCourseGorm_Update(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCourseRepository(db)
	owner := seedUser(t, db, "joe@smith.com")
	other := seedUser(t, db, "sally@jones.com")
	course := newCourse(owner.ID, "Old Title")
	require.NoError(t, repo.Create(context.Background(), course))

	course.Title = "New Title"
	course.EstimatedTime = "3 hours"
	course.UserID = other.ID // must be ignored
	require.NoError(t, repo.Update(context.Background(), course))

	found, err := repo.FindByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", found.Title)
	assert.Equal(t, "3 hours", found.EstimatedTime)
	assert.Equal(t, owner.ID, found.UserID, "owner column is never updated")

	missing := newCourse(owner.ID, "Ghost")
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(context.Background(), missing), usecase.ErrCourseNotFound)
}

func TestCourseGorm_Delete(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCourseRepository(db)
	owner := seedUser(t, db, "joe@smith.com")
	course := newCourse(owner.ID, "Short Lived")
	require.NoError(t, repo.Create(context.Background(), course))

	require.NoError(t, repo.Delete(context.Background(), course.ID))

	_, err := repo.FindByID(context.Background(), course.ID)
	assert.ErrorIs(t, err, usecase.ErrCourseNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), course.ID), usecase.ErrCourseNotFound)
}

func TestCourseModel_ToEntity_WithoutOwner(t *testing.T) {
	t.Parallel()

	m := CourseModel{ID: 1, Title: "t", UserID: 3}

	c := m.ToEntity()

	assert.Nil(t, c.Owner)
	assert.Equal(t, uint(3), c.UserID)
}
