package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"foodcart/internal/backend"
	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
	"foodcart/internal/session"
)

// RestaurantForm is the admin restaurant editor.
type RestaurantForm struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Address  string `json:"address" form:"address" validate:"required"`
	Cuisine  string `json:"cuisine" form:"cuisine"`
	ImageURL string `json:"imageUrl" form:"imageUrl" validate:"omitempty,url"`
}

// MenuItemForm is the admin menu item editor.
type MenuItemForm struct {
	Name        string          `json:"name" form:"name" validate:"required"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price"`
	ImageURL    string          `json:"imageUrl" form:"imageUrl" validate:"omitempty,url"`
}

// Dashboard is the admin panel state: every restaurant and the menu of the
// selected one.
type Dashboard struct {
	Username             string
	Restaurants          []model.Restaurant
	SelectedRestaurantID string
	Menu                 []model.MenuItem
}

// AdminService is the admin CRUD panel. Every operation except Login needs the
// admin token stored in the session.
type AdminService interface {
	Login(ctx context.Context, sess *session.Session, username, password string) (*model.Admin, error)
	Logout(ctx context.Context, sess *session.Session) error
	Dashboard(ctx context.Context, sess *session.Session, restaurantID string) (*Dashboard, error)
	CreateRestaurant(ctx context.Context, sess *session.Session, form RestaurantForm) (*Dashboard, error)
	UpdateRestaurant(ctx context.Context, sess *session.Session, id string, form RestaurantForm) (*Dashboard, error)
	DeleteRestaurant(ctx context.Context, sess *session.Session, id string) (*Dashboard, error)
	CreateMenuItem(ctx context.Context, sess *session.Session, restaurantID string, form MenuItemForm) (*Dashboard, error)
	UpdateMenuItem(ctx context.Context, sess *session.Session, restaurantID, id string, form MenuItemForm) (*Dashboard, error)
	DeleteMenuItem(ctx context.Context, sess *session.Session, restaurantID, id string) (*Dashboard, error)
}

type adminService struct {
	backend AdminBackend
	log     zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(backend AdminBackend, log zerolog.Logger) AdminService {
	return &adminService{
		backend: backend,
		log:     log.With().Str("component", "admin").Logger(),
	}
}

// Login authenticates and stores the admin token in the session.
func (s *adminService) Login(ctx context.Context, sess *session.Session, username, password string) (*model.Admin, error) {
	result, err := s.backend.AdminLogin(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}
	if result == nil || result.Token == "" {
		return nil, apperrors.ErrInvalidAdminResponse
	}
	if err := sess.AdminSignIn(ctx, result.Token, result.Admin.ID, result.Admin.Username); err != nil {
		return nil, fmt.Errorf("store admin session: %w", err)
	}
	s.log.Info().Str("admin", result.Admin.Username).Msg("admin signed in")
	return &result.Admin, nil
}

// Logout drops the admin token only.
func (s *adminService) Logout(ctx context.Context, sess *session.Session) error {
	return sess.AdminSignOut(ctx)
}

// Dashboard lists restaurants and, when one is selected, its menu.
func (s *adminService) Dashboard(ctx context.Context, sess *session.Session, restaurantID string) (*Dashboard, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	restaurants, err := s.backend.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	d := &Dashboard{
		Username:             sess.AdminUsername(),
		Restaurants:          restaurants,
		SelectedRestaurantID: restaurantID,
	}
	if restaurantID != "" {
		menu, err := s.backend.RestaurantMenu(ctx, restaurantID)
		if err != nil {
			return nil, fmt.Errorf("list menu items: %w", err)
		}
		d.Menu = menu
	}
	return d, nil
}

func (s *adminService) CreateRestaurant(ctx context.Context, sess *session.Session, form RestaurantForm) (*Dashboard, error) {
	return s.mutate(ctx, sess, "", func(token string) error {
		return s.backend.CreateRestaurant(ctx, token, form.input())
	})
}

func (s *adminService) UpdateRestaurant(ctx context.Context, sess *session.Session, id string, form RestaurantForm) (*Dashboard, error) {
	return s.mutate(ctx, sess, id, func(token string) error {
		return s.backend.UpdateRestaurant(ctx, token, id, form.input())
	})
}

func (s *adminService) DeleteRestaurant(ctx context.Context, sess *session.Session, id string) (*Dashboard, error) {
	return s.mutate(ctx, sess, "", func(token string) error {
		return s.backend.DeleteRestaurant(ctx, token, id)
	})
}

func (s *adminService) CreateMenuItem(ctx context.Context, sess *session.Session, restaurantID string, form MenuItemForm) (*Dashboard, error) {
	if restaurantID == "" {
		return nil, apperrors.NewValidationError("restaurantId", "select a restaurant first")
	}
	if form.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price", "price must not be negative")
	}
	return s.mutate(ctx, sess, restaurantID, func(token string) error {
		return s.backend.CreateMenuItem(ctx, token, restaurantID, form.input())
	})
}

func (s *adminService) UpdateMenuItem(ctx context.Context, sess *session.Session, restaurantID, id string, form MenuItemForm) (*Dashboard, error) {
	if form.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price", "price must not be negative")
	}
	return s.mutate(ctx, sess, restaurantID, func(token string) error {
		return s.backend.UpdateMenuItem(ctx, token, id, form.input())
	})
}

func (s *adminService) DeleteMenuItem(ctx context.Context, sess *session.Session, restaurantID, id string) (*Dashboard, error) {
	return s.mutate(ctx, sess, restaurantID, func(token string) error {
		return s.backend.DeleteMenuItem(ctx, token, id)
	})
}

// mutate runs call with the admin token, then re-reads the dashboard.
func (s *adminService) mutate(ctx context.Context, sess *session.Session, selected string, call func(token string) error) (*Dashboard, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	if err := call(sess.AdminToken()); err != nil {
		return nil, fmt.Errorf("admin update: %w", err)
	}
	return s.Dashboard(ctx, sess, selected)
}

func (f RestaurantForm) input() backend.RestaurantInput {
	return backend.RestaurantInput{
		Name:     strings.TrimSpace(f.Name),
		Address:  strings.TrimSpace(f.Address),
		Cuisine:  model.ParseTags(f.Cuisine).String(),
		ImageURL: strings.TrimSpace(f.ImageURL),
	}
}

func (f MenuItemForm) input() backend.MenuItemInput {
	return backend.MenuItemInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       f.Price.InexactFloat64(),
		ImageURL:    strings.TrimSpace(f.ImageURL),
	}
}
