// Command seed loads demo users and courses into the configured database.
// Users that already exist are skipped together with their courses, so the
// command can be run repeatedly.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"course_api/internal/app/di"
	courseadapters "course_api/internal/feature/courses/adapters"
	courseusecase "course_api/internal/feature/courses/usecase"
	useradapters "course_api/internal/feature/users/adapters"
	userusecase "course_api/internal/feature/users/usecase"
	"course_api/internal/platform/config"
	"course_api/internal/platform/db"
	"course_api/internal/platform/validation"
)

type seedUser struct {
	user    userusecase.RegisterInput
	courses []courseusecase.CourseInput
}

var seedData = []seedUser{
	{
		user: userusecase.RegisterInput{FirstName: "Joe", LastName: "Smith", EmailAddress: "joe@smith.com", Password: "joepassword"},
		courses: []courseusecase.CourseInput{
			{
				Title:           "Build a Basic Bookcase",
				Description:     "High-end furniture projects are great to dream about. But unless you have a well-equipped shop and some serious woodworking experience to draw on, it can be difficult to turn the dream into a reality.",
				EstimatedTime:   "12 hours",
				MaterialsNeeded: "* 1/2 x 3/4 inch parting strip\n* 1 x 2 common pine\n* 1 x 4 common pine\n* Wood glue\n* Finishing nails",
			},
			{
				Title:           "Learn How to Program",
				Description:     "In this course, you'll learn how to write code like a pro!",
				EstimatedTime:   "6 hours",
				MaterialsNeeded: "* Notebook computer running Mac OS X or Windows\n* Text editor",
			},
		},
	},
	{
		user: userusecase.RegisterInput{FirstName: "Sally", LastName: "Jones", EmailAddress: "sally@jones.com", Password: "sallypassword"},
		courses: []courseusecase.CourseInput{
			{
				Title:           "Learn How to Test Programs",
				Description:     "In this course, you'll learn how to test programs.",
				EstimatedTime:   "4 hours",
				MaterialsNeeded: "* Notebook computer running Mac OS X or Windows\n* Text editor",
			},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gdb, err := db.Open(cfg.DB)
	if err != nil {
		slog.Error("DB connection failed", "error", err)
		os.Exit(1)
	}
	if err := di.Migrate(gdb); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if err := seed(context.Background(), gdb, cfg.BcryptCost, seedData); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed completed")
}

// errAlreadySeeded rolls back the transaction of a user that already exists.
var errAlreadySeeded = errors.New("user already seeded")

// seed registers each user together with their courses in one transaction,
// so a failed course insert leaves no half-seeded user behind.
func seed(ctx context.Context, gdb *gorm.DB, cost int, data []seedUser) error {
	for _, s := range data {
		err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			users := userusecase.NewUserUsecase(useradapters.NewUserRepository(tx), cost)
			courses := courseusecase.NewCourseUsecase(courseadapters.NewCourseRepository(tx))

			u, err := users.Register(ctx, s.user)
			if err != nil {
				if isDuplicateEmail(err) {
					return errAlreadySeeded
				}
				return fmt.Errorf("register %s: %w", s.user.EmailAddress, err)
			}
			for _, in := range s.courses {
				if _, err := courses.Create(ctx, u.ID, in); err != nil {
					return fmt.Errorf("create course %q for %s: %w", in.Title, s.user.EmailAddress, err)
				}
			}
			return nil
		})
		switch {
		case errors.Is(err, errAlreadySeeded):
			slog.Info("user already seeded, skipping", "email", s.user.EmailAddress)
		case err != nil:
			return err
		default:
			slog.Info("seeded user", "email", s.user.EmailAddress, "courses", len(s.courses))
		}
	}
	return nil
}

func isDuplicateEmail(err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	for _, f := range verr.Fields {
		if f.Field == "EmailAddress" && f.Rule == "unique" {
			return true
		}
	}
	return false
}
