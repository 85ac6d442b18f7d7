package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validSignup() SignupInput {
	return SignupInput{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "Wordpass123",
		PasswordConfirm: "Wordpass123",
		Role:            "author",
	}
}

func TestUserService_Signup(t *testing.T) {
	repo := noopUserRepo()
	var created *models.User
	repo.createFn = func(_ context.Context, u *models.User) error {
		created = u
		u.ID = 1
		return nil
	}

	svc := NewUserService(repo)
	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "ada", user.Username)
	require.NotNil(t, user.Profile)
	assert.Equal(t, models.RoleAuthor, user.Profile.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Wordpass123")),
		"stored password must be the bcrypt hash")
}

func TestUserService_Signup_DefaultsToReader(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	in := validSignup()
	in.Role = ""

	user, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleReader, user.Profile.Role)
}

func TestUserService_Signup_FieldErrors(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	tests := []struct {
		name   string
		mutate func(*SignupInput)
		field  string
	}{
		{"short username", func(in *SignupInput) { in.Username = "ab" }, "username"},
		{"bad email", func(in *SignupInput) { in.Email = "not-an-email" }, "email"},
		{"weak password", func(in *SignupInput) { in.Password, in.PasswordConfirm = "short", "short" }, "password"},
		{"mismatched confirmation", func(in *SignupInput) { in.PasswordConfirm = "Different123" }, "password_confirm"},
		{"unknown role", func(in *SignupInput) { in.Role = "editor" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignup()
			tt.mutate(&in)

			_, err := svc.Signup(context.Background(), in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestUserService_Signup_DuplicateUsername(t *testing.T) {
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 2, Username: "ada"}, nil
	}

	svc := NewUserService(repo)
	_, err := svc.Signup(context.Background(), validSignup())
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "username")
}

func TestUserService_Authenticate(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Wordpass123"), bcrypt.DefaultCost)
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "ada" {
			return &models.User{ID: 1, Username: "ada", Password: string(hashed)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "ada", "Wordpass123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "ada", "Wrongpass123")
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, wrongPass := svc.Authenticate(context.Background(), "ada", "Wrongpass123")
		_, unknown := svc.Authenticate(context.Background(), "ghost", "Wordpass123")
		assert.Equal(t, wrongPass.Error(), unknown.Error())
	})
}
