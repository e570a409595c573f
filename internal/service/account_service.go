package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"foodcart/internal/backend"
	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
	"foodcart/internal/session"
)

// RegisterForm is the customer sign-up form.
type RegisterForm struct {
	Name      string `json:"name" form:"name" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Age       int    `json:"age" form:"age" validate:"required,gte=1,lte=120"`
	Gender    string `json:"gender" form:"gender" validate:"required"`
	ContactNo string `json:"contactno" form:"contactno" validate:"required"`
	Address   string `json:"address" form:"address" validate:"required"`
	Password  string `json:"password" form:"password" validate:"required,min=6"`
}

// AccountService handles customer sign-up, sign-in and profile.
type AccountService interface {
	Register(ctx context.Context, form RegisterForm) error
	Login(ctx context.Context, sess *session.Session, email, password string) (*model.User, error)
	GoogleLogin(ctx context.Context, sess *session.Session, credential string) (*model.User, error)
	Logout(ctx context.Context, sess *session.Session) error
	Profile(ctx context.Context, sess *session.Session) (*model.User, error)
}

type accountService struct {
	backend AccountBackend
	log     zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(backend AccountBackend, log zerolog.Logger) AccountService {
	return &accountService{
		backend: backend,
		log:     log.With().Str("component", "accounts").Logger(),
	}
}

// Register creates the account. The user signs in separately afterwards.
func (s *accountService) Register(ctx context.Context, form RegisterForm) error {
	req := backend.RegisterRequest{
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Age:       form.Age,
		Gender:    form.Gender,
		ContactNo: strings.TrimSpace(form.ContactNo),
		Address:   strings.TrimSpace(form.Address),
		Password:  form.Password,
	}
	if err := s.backend.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("email", req.Email).Msg("account registered")
	return nil
}

// Login checks credentials and binds the user to the session.
func (s *accountService) Login(ctx context.Context, sess *session.Session, email, password string) (*model.User, error) {
	user, err := s.backend.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.signIn(ctx, sess, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GoogleLogin exchanges a Google credential for a user and binds it.
func (s *accountService) GoogleLogin(ctx context.Context, sess *session.Session, credential string) (*model.User, error) {
	user, err := s.backend.GoogleLogin(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("google login: %w", err)
	}
	if err := s.signIn(ctx, sess, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout forgets every session key, admin included.
func (s *accountService) Logout(ctx context.Context, sess *session.Session) error {
	if err := sess.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Profile fetches the signed-in user.
func (s *accountService) Profile(ctx context.Context, sess *session.Session) (*model.User, error) {
	if !sess.SignedIn() {
		return nil, apperrors.ErrProfileMissing
	}
	user, err := s.backend.User(ctx, sess.UserID())
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

func (s *accountService) signIn(ctx context.Context, sess *session.Session, user *model.User) error {
	if user == nil || user.ID == "" {
		return apperrors.NewValidationError("email", "Login failed")
	}
	if err := sess.SignIn(ctx, user.ID); err != nil {
		return fmt.Errorf("store sign-in: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Str("session_id", sess.ID()).Msg("user signed in")
	return nil
}
