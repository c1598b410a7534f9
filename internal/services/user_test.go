package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validSignupInput() domain.SignupInput {
	return domain.SignupInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "777",
		Password: "secret",
		Role:     "User",
		Age:      28,
	}
}

func newUserServiceForTest() (domain.UserService, *fakeUserRepo, *fakeEventRepo, *fakeTokenManager, *fakeEmailService) {
	users := newFakeUserRepo()
	events := newFakeEventRepo()
	tokens := newFakeTokenManager()
	mail := newFakeEmailService()
	svc := NewUserService(users, events, &fakeHasher{}, tokens, tokens, mail,
		discardLogger(), 24*time.Hour, time.Hour)
	return svc, users, events, tokens, mail
}

func TestUserService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, users, _, _, mail := newUserServiceForTest()

		result, err := svc.Signup(ctx, validSignupInput())
		require.NoError(t, err)
		require.Equal(t, 200, result.StatusCode)
		assert.Equal(t, "User signup successful", result.Message)

		created := result.Data.(*domain.User)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "user", created.Role, "role is lowercased")
		assert.Equal(t, "hashed:secret", created.Password)
		_, ok := users.byID[created.ID]
		require.True(t, ok)

		require.Len(t, mail.sentWelcome, 1)
		assert.Equal(t, "asha@example.com", mail.sentWelcome[0].Email)
	})

	t.Run("schema validation", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceForTest()

		in := validSignupInput()
		in.Email = "not-an-email"
		result, err := svc.Signup(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "email must be a valid email address", result.Message)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceForTest()

		first, err := svc.Signup(ctx, validSignupInput())
		require.NoError(t, err)
		require.Equal(t, 200, first.StatusCode)

		second, err := svc.Signup(ctx, validSignupInput())
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, second.StatusCode)
		assert.Equal(t, "User with this email already exists", second.Message)
	})

	t.Run("welcome mail failure does not fail signup", func(t *testing.T) {
		svc, _, _, _, mail := newUserServiceForTest()
		mail.welcomeErr = errors.New("ses unavailable")

		result, err := svc.Signup(ctx, validSignupInput())
		require.NoError(t, err)
		assert.Equal(t, 200, result.StatusCode)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (domain.UserService, *domain.User) {
		svc, users, _, _, _ := newUserServiceForTest()
		u := users.addUser(&domain.User{
			Name: "Asha", Email: "asha@example.com", Password: "hashed:secret", Role: "user",
		})
		return svc, u
	}

	t.Run("success", func(t *testing.T) {
		svc, u := seed(t)
		result, err := svc.Login(ctx, "asha@example.com", "secret")
		require.NoError(t, err)
		require.Equal(t, 200, result.StatusCode)
		assert.Equal(t, "Login successful", result.Message)

		data := result.Data.(*domain.LoginData)
		assert.Equal(t, "token-1-user", data.AccessToken)
		assert.Equal(t, u.ID, data.User.ID)
		assert.Empty(t, data.User.Password, "password is stripped")
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := seed(t)
		result, err := svc.Login(ctx, "other@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
		assert.Equal(t, "User with this email does not exist.", result.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := seed(t)
		result, err := svc.Login(ctx, "asha@example.com", "wrong")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
		assert.Equal(t, "Invalid Password.", result.Message)
	})
}

func TestUserService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _, _ := newUserServiceForTest()
	u := users.addUser(&domain.User{Name: "Asha", Email: "a@b.co", Password: "hashed:x"})

	result, err := svc.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	got := result.Data.(*domain.User)
	assert.Equal(t, "Asha", got.Name)
	assert.Empty(t, got.Password)

	_, err = svc.GetUserByID(ctx, 99)
	require.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestUserService_UpdateUserProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("propagates contact info to owned events", func(t *testing.T) {
		svc, users, events, _, _ := newUserServiceForTest()
		u := users.addUser(&domain.User{Name: "Asha", Email: "a@b.co", Phone: "111"})
		e := &domain.Event{EventName: "A", UserID: u.ID, Email: "a@b.co", Phone: "111", EventStartDate: time.Now()}
		require.NoError(t, events.Create(ctx, e))

		email := "new@b.co"
		result, err := svc.UpdateUserProfile(ctx, u.ID, domain.UpdateUserInput{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "User profile updated successfully", result.Message)
		assert.Equal(t, "new@b.co", events.byID[e.ID].Email)
		assert.Equal(t, "111", events.byID[e.ID].Phone, "phone untouched")
	})

	t.Run("name change does not touch events", func(t *testing.T) {
		svc, users, events, _, _ := newUserServiceForTest()
		u := users.addUser(&domain.User{Name: "Asha", Email: "a@b.co"})
		e := &domain.Event{EventName: "A", UserID: u.ID, Email: "a@b.co", EventStartDate: time.Now()}
		require.NoError(t, events.Create(ctx, e))

		name := "Usha"
		_, err := svc.UpdateUserProfile(ctx, u.ID, domain.UpdateUserInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", events.byID[e.ID].Email)
	})

	t.Run("age bounds", func(t *testing.T) {
		svc, users, _, _, _ := newUserServiceForTest()
		u := users.addUser(&domain.User{Email: "a@b.co"})

		age := 200
		result, err := svc.UpdateUserProfile(ctx, u.ID, domain.UpdateUserInput{Age: &age})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceForTest()
		name := "X"
		_, err := svc.UpdateUserProfile(ctx, 99, domain.UpdateUserInput{Name: &name})
		require.True(t, errors.Is(err, domain.ErrUserNotFound))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _, _ := newUserServiceForTest()
	u := users.addUser(&domain.User{Email: "a@b.co"})

	result, err := svc.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", result.Message)

	_, err = svc.DeleteUser(ctx, u.ID)
	require.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestUserService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("forgot password sends deep link", func(t *testing.T) {
		svc, users, _, _, mail := newUserServiceForTest()
		users.addUser(&domain.User{Email: "a@b.co"})

		result, err := svc.ForgotPassword(ctx, "a@b.co")
		require.NoError(t, err)
		assert.Equal(t, "Reset password email sent", result.Message)
		require.Len(t, mail.sentResets, 1)
		assert.Equal(t, "eventx://reset-password?token=reset-1", mail.sentResets[0].ResetLink)
	})

	t.Run("forgot password for unknown email", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceForTest()
		_, err := svc.ForgotPassword(ctx, "nobody@b.co")
		require.True(t, errors.Is(err, domain.ErrUserNotFound))
	})

	t.Run("reset round trip", func(t *testing.T) {
		svc, users, _, _, _ := newUserServiceForTest()
		u := users.addUser(&domain.User{Email: "a@b.co", Password: "hashed:old"})

		_, err := svc.ForgotPassword(ctx, "a@b.co")
		require.NoError(t, err)

		result, err := svc.ResetPassword(ctx, "reset-1", "brandnew")
		require.NoError(t, err)
		assert.Equal(t, "Password reset successful", result.Message)
		assert.Equal(t, "hashed:brandnew", users.byID[u.ID].Password)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, _, _, _, _ := newUserServiceForTest()
		_, err := svc.ResetPassword(ctx, "bogus", "brandnew")
		require.True(t, errors.Is(err, domain.ErrInvalidToken))
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		svc, users, _, tokens, _ := newUserServiceForTest()
		u := users.addUser(&domain.User{Email: "a@b.co"})
		token, err := tokens.IssueResetToken(u.ID, time.Hour)
		require.NoError(t, err)
		require.NoError(t, users.Delete(ctx, u.ID))

		_, err = svc.ResetPassword(ctx, token, "brandnew")
		require.True(t, errors.Is(err, domain.ErrInvalidToken))
	})
}
