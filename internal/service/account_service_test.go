package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodcart/internal/backend"
	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
	"foodcart/internal/session"
)

func TestAccountService_Register(t *testing.T) {
	be := new(MockBackend)
	svc := NewAccountService(be, nopLog)
	ctx := context.Background()

	be.On("Register", ctx, backend.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Age: 30, Gender: "female",
		ContactNo: "9999999999", Address: "12 Main St", Password: "secret1",
	}).Return(nil).Once()

	err := svc.Register(ctx, RegisterForm{
		Name: " Ada ", Email: "ada@example.com", Age: 30, Gender: "female",
		ContactNo: "9999999999", Address: "12 Main St", Password: "secret1",
	})
	require.NoError(t, err)
	be.AssertExpectations(t)
}

func TestAccountService_LoginBindsSession(t *testing.T) {
	be := new(MockBackend)
	svc := NewAccountService(be, nopLog)
	sess := newSignedInSession(t, "")
	ctx := context.Background()

	be.On("Login", ctx, "ada@example.com", "pw").Return(&model.User{ID: "u1", Name: "Ada"}, nil).Once()

	user, err := svc.Login(ctx, sess, " ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "u1", sess.UserID())
}

func TestAccountService_LoginFailureLeavesSession(t *testing.T) {
	be := new(MockBackend)
	svc := NewAccountService(be, nopLog)
	sess := newSignedInSession(t, "")
	ctx := context.Background()

	be.On("Login", ctx, mock.Anything, mock.Anything).Return(nil, &backend.APIError{StatusCode: 401, Message: "Invalid credentials"}).Once()

	_, err := svc.Login(ctx, sess, "ada@example.com", "bad")
	require.Error(t, err)
	assert.False(t, sess.SignedIn())
}

func TestAccountService_GoogleLogin(t *testing.T) {
	be := new(MockBackend)
	svc := NewAccountService(be, nopLog)
	sess := newSignedInSession(t, "")
	ctx := context.Background()

	be.On("GoogleLogin", ctx, "cred").Return(&model.User{ID: "g1"}, nil).Once()

	_, err := svc.GoogleLogin(ctx, sess, "cred")
	require.NoError(t, err)
	assert.Equal(t, "g1", sess.UserID())
}

func TestAccountService_LogoutClearsEverything(t *testing.T) {
	be := new(MockBackend)
	svc := NewAccountService(be, nopLog)
	sess := newSignedInSession(t, "u1")
	ctx := context.Background()
	require.NoError(t, sess.AdminSignIn(ctx, "tok", "a1", "root"))
	require.NoError(t, sess.SetOrderSuccessMessage(ctx, "hi"))

	require.NoError(t, svc.Logout(ctx, sess))
	assert.False(t, sess.SignedIn())
	assert.False(t, sess.IsAdmin())
	assert.Empty(t, sess.Get(session.KeyOrderSuccessMessage))
}

func TestAccountService_Profile(t *testing.T) {
	be := new(MockBackend)
	svc := NewAccountService(be, nopLog)
	ctx := context.Background()

	_, err := svc.Profile(ctx, newSignedInSession(t, ""))
	assert.ErrorIs(t, err, apperrors.ErrProfileMissing)
	assert.Equal(t, "User not logged in.", apperrors.UserMessage(err, "x"))

	be.On("User", ctx, "u1").Return(&model.User{ID: "u1", Email: "ada@example.com"}, nil).Once()
	user, err := svc.Profile(ctx, newSignedInSession(t, "u1"))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}
