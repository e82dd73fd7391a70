package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_api/internal/feature/users/domain/entity"
	"course_api/internal/feature/users/usecase"
	"course_api/internal/platform/basicauth"
	"course_api/internal/platform/validation"
)

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	calls        int
}

// Register is the mock implementation of the Register method.
func (m *mockUserUsecase) Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
	m.calls++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &entity.User{ID: 1}, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestUserHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		body             string
		registerFunc     func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
		expectedStatus   int
		expectedLocation string
		expectedErrors   []string
		expectedCalls    int
	}{
		{
			name: "success: user registration",
			body: `{"firstName":"Jo","lastName":"Doe","emailAddress":"jo@doe.com","password":"password123"}`,
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				if in.EmailAddress != "jo@doe.com" || in.Password != "password123" {
					return nil, errors.New("unexpected input")
				}
				return &entity.User{ID: 7}, nil
			},
			expectedStatus:   http.StatusCreated,
			expectedLocation: "/",
			expectedCalls:    1,
		},
		{
			name: "failure: validation errors listed",
			body: `{"emailAddress":"not-an-email"}`,
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				return nil, &validation.Error{Fields: []validation.FieldError{
					{Field: "FirstName", Message: "Please provide a first name."},
					{Field: "EmailAddress", Message: "Please provide a valid email address."},
				}}
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Please provide a first name.", "Please provide a valid email address."},
			expectedCalls:  1,
		},
		{
			name:           "failure: malformed JSON",
			body:           `{"firstName":`,
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Request body must be valid JSON."},
		},
		{
			name: "success path for empty body: usecase reports missing fields",
			body: ``,
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
				return nil, validation.NewError("FirstName", "required", "Please provide a first name.")
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Please provide a first name."},
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &mockUserUsecase{RegisterFunc: tt.registerFunc}
			router := gin.New()
			router.POST("/users", NewUserHandler(uc).Create)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			assert.Equal(t, tt.expectedCalls, uc.calls)
			if tt.expectedErrors != nil {
				var body struct {
					Errors []string `json:"errors"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedErrors, body.Errors)
			} else {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestUserHandler_Create_UnexpectedError(t *testing.T) {
	t.Parallel()

	storageErr := errors.New("database connection failed")
	uc := &mockUserUsecase{RegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
		return nil, storageErr
	}}

	var captured []error
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		for _, e := range c.Errors {
			captured = append(captured, e.Err)
		}
	})
	router.POST("/users", NewUserHandler(uc).Create)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Len(t, captured, 1)
	assert.ErrorIs(t, captured[0], storageErr)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestUserHandler_Current(t *testing.T) {
	t.Parallel()

	t.Run("success: returns the authenticated user without password", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.GET("/users", func(c *gin.Context) {
			basicauth.SetCurrentUser(c, &entity.User{
				ID: 1, FirstName: "Jo", LastName: "Doe", EmailAddress: "jo@doe.com", Password: "$2a$10$hash",
			})
			c.Next()
		}, NewUserHandler(&mockUserUsecase{}).Current)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"firstName":"Jo","lastName":"Doe","emailAddress":"jo@doe.com"}`, w.Body.String())
	})

	t.Run("failure: no authenticated user", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.GET("/users", NewUserHandler(&mockUserUsecase{}).Current)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
	})
}
