package session

import (
	"context"
	"fmt"
)

// Session is the per-browser context handed to services. Values are read once
// by Init and every change is written through to the store.
type Session struct {
	id     string
	store  Store
	values map[string]string
}

// New binds a session id to a store. Call Init before reading.
func New(id string, store Store) *Session {
	return &Session{id: id, store: store, values: map[string]string{}}
}

// Init reads the persisted values.
func (s *Session) Init(ctx context.Context) error {
	values, err := s.store.Load(ctx, s.id)
	if err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	if values == nil {
		values = map[string]string{}
	}
	s.values = values
	return nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Get returns a raw value.
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Set writes values.
func (s *Session) Set(ctx context.Context, values map[string]string) error {
	if err := s.store.Set(ctx, s.id, values); err != nil {
		return err
	}
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

// Remove deletes keys.
func (s *Session) Remove(ctx context.Context, keys ...string) error {
	if err := s.store.Delete(ctx, s.id, keys...); err != nil {
		return err
	}
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// Clear forgets everything, as on logout.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx, s.id); err != nil {
		return err
	}
	s.values = map[string]string{}
	return nil
}

// UserID returns the signed-in user, or "".
func (s *Session) UserID() string {
	return s.values[KeyUserID]
}

// SignedIn reports whether a user is signed in.
func (s *Session) SignedIn() bool {
	return s.UserID() != ""
}

// SignIn records the signed-in user.
func (s *Session) SignIn(ctx context.Context, userID string) error {
	return s.Set(ctx, map[string]string{KeyUserID: userID})
}

// AdminToken returns the admin session token, or "".
func (s *Session) AdminToken() string {
	return s.values[KeyAdminToken]
}

// IsAdmin reports whether an admin token is stored.
func (s *Session) IsAdmin() bool {
	return s.AdminToken() != ""
}

// AdminUsername returns the signed-in admin name.
func (s *Session) AdminUsername() string {
	return s.values[KeyAdminUsername]
}

// AdminID returns the signed-in admin id.
func (s *Session) AdminID() string {
	return s.values[KeyAdminID]
}

// AdminSignIn stores the admin session.
func (s *Session) AdminSignIn(ctx context.Context, token, adminID, username string) error {
	return s.Set(ctx, map[string]string{
		KeyAdminToken:    token,
		KeyAdminID:       adminID,
		KeyAdminUsername: username,
	})
}

// AdminSignOut drops the admin session only.
func (s *Session) AdminSignOut(ctx context.Context) error {
	return s.Remove(ctx, KeyAdminToken, KeyAdminID, KeyAdminUsername)
}

// SetOrderSuccessMessage stores the message shown once by the orders view.
func (s *Session) SetOrderSuccessMessage(ctx context.Context, message string) error {
	return s.Set(ctx, map[string]string{KeyOrderSuccessMessage: message})
}

// TakeOrderSuccessMessage returns and removes the stored message.
func (s *Session) TakeOrderSuccessMessage(ctx context.Context) (string, error) {
	msg := s.values[KeyOrderSuccessMessage]
	if msg == "" {
		return "", nil
	}
	if err := s.Remove(ctx, KeyOrderSuccessMessage); err != nil {
		return "", err
	}
	return msg, nil
}
