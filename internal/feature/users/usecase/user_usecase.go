package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"course_api/internal/feature/users/domain/entity"
	"course_api/internal/platform/validation"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create persists a new user.
	// It returns ErrEmailAlreadyExists if the email address is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with exactly the given email address.
	// It returns ErrUserNotFound if no such user exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// RegisterInput is the data required to create a user account.
type RegisterInput struct {
	FirstName    string `validate:"required"`
	LastName     string `validate:"required"`
	EmailAddress string `validate:"required,email"`
	Password     string `validate:"required,min=8,max=20"`
}

var registerRules = validation.Rules{
	"FirstName.required":    "Please provide a first name.",
	"LastName.required":     "Please provide a last name.",
	"EmailAddress.required": "Please provide an email address.",
	"EmailAddress.email":    "Please provide a valid email address.",
	"Password.required":     "Please provide a password.",
	"Password": passwordLengthMessage,
}

var passwordLengthMessage = fmt.Sprintf("Password must be between %d and %d characters long.",
	minPasswordLength, maxPasswordLength)

// duplicateEmailMessage is reported as a validation failure when the unique
// index on email_address rejects an insert.
const duplicateEmailMessage = "The email address you entered already exists."

// UserUsecase implements account registration and credential verification.
type UserUsecase struct {
	users UserRepository
	cost  int
}

// NewUserUsecase creates a UserUsecase hashing passwords with the given bcrypt cost.
func NewUserUsecase(users UserRepository, cost int) *UserUsecase {
	return &UserUsecase{users: users, cost: cost}
}

// Register validates the input, hashes the password and persists the user.
// Validation failures, including a duplicate email, are returned as *validation.Error.
func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.EmailAddress = strings.TrimSpace(in.EmailAddress)

	if err := validation.Validate(in, registerRules); err != nil {
		return nil, err
	}
	// max=20 は文字数で数えるため、bcryptのバイト上限は別途確認する
	if len(in.Password) > maxPasswordBytes {
		return nil, validation.NewError("Password", "max", passwordLengthMessage)
	}

	hashed, err := HashPassword(in.Password, u.cost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: in.EmailAddress,
		Password:     hashed,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, validation.NewError("EmailAddress", "unique", duplicateEmailMessage)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies an email/password pair and returns the matching user.
//
// Failures caused by the credentials wrap ErrInvalidCredentials together with
// ErrUserNotFound or ErrBadPassword. A bcrypt comparison runs even when the
// user does not exist so both failure paths take the same time.
// The outcome is written to the audit log; the password never is.
func (u *UserUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.Password
	}
	matched := ComparePassword(hash, password)

	switch {
	case user == nil:
		slog.WarnContext(ctx, "authentication failed", "email", email, "reason", "user_not_found")
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrUserNotFound)
	case !matched:
		slog.WarnContext(ctx, "authentication failed", "email", email, "reason", "bad_password")
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrBadPassword)
	}

	slog.InfoContext(ctx, "authentication successful", "email", user.EmailAddress)
	return user, nil
}
