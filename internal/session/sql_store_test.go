package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodcart/internal/model"
)

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindBySession(ctx context.Context, sessionID string, now time.Time) ([]model.SessionValue, error) {
	args := m.Called(ctx, sessionID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SessionValue), args.Error(1)
}

func (m *MockSessionRepository) Upsert(ctx context.Context, values []model.SessionValue) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteKeys(ctx context.Context, sessionID string, keys []string) error {
	args := m.Called(ctx, sessionID, keys)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func TestSQLStore_Load(t *testing.T) {
	repo := new(MockSessionRepository)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.On("FindBySession", mock.Anything, "s1", now).Return([]model.SessionValue{
		{SessionID: "s1", Key: KeyUserID, Value: "u1"},
		{SessionID: "s1", Key: KeyAdminToken, Value: "tok"},
	}, nil)

	store := NewSQLStore(repo, time.Hour)
	store.now = func() time.Time { return now }

	values, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyUserID: "u1", KeyAdminToken: "tok"}, values)
	repo.AssertExpectations(t)
}

func TestSQLStore_SetStampsExpiry(t *testing.T) {
	repo := new(MockSessionRepository)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(rows []model.SessionValue) bool {
		return len(rows) == 1 &&
			rows[0].Key == KeyUserID &&
			rows[0].Value == "u1" &&
			rows[0].ExpiresAt.Equal(now.Add(time.Hour))
	})).Return(nil)

	store := NewSQLStore(repo, time.Hour)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(context.Background(), "s1", map[string]string{KeyUserID: "u1"}))
	repo.AssertExpectations(t)
}

func TestSQLStore_WrapsErrors(t *testing.T) {
	repo := new(MockSessionRepository)
	repo.On("DeleteSession", mock.Anything, "s1").Return(errors.New("db down"))

	store := NewSQLStore(repo, time.Hour)
	err := store.Clear(context.Background(), "s1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear session")
}
