package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"foodcart/internal/model"
	"foodcart/internal/repository"
)

// SQLStore keeps sessions as rows in MySQL, one row per key.
type SQLStore struct {
	repo repository.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore creates a MySQL backed store.
func NewSQLStore(repo repository.SessionRepository, ttl time.Duration) *SQLStore {
	return &SQLStore{repo: repo, ttl: ttl, now: time.Now}
}

// Load returns the unexpired session values.
func (s *SQLStore) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	rows, err := s.repo.FindBySession(ctx, sessionID, s.now())
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Set upserts values.
func (s *SQLStore) Set(ctx context.Context, sessionID string, values map[string]string) error {
	now := s.now()
	rows := make([]model.SessionValue, 0, len(values))
	for k, v := range values {
		rows = append(rows, model.SessionValue{
			SessionID: sessionID,
			Key:       k,
			Value:     v,
			ExpiresAt: now.Add(s.ttl),
			UpdatedAt: now,
		})
	}
	if err := s.repo.Upsert(ctx, rows); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes keys.
func (s *SQLStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if err := s.repo.DeleteKeys(ctx, sessionID, keys); err != nil {
		return fmt.Errorf("delete session keys: %w", err)
	}
	return nil
}

// Clear removes every key of the session.
func (s *SQLStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// RunJanitor purges expired rows every interval until ctx is done.
func (s *SQLStore) RunJanitor(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.repo.DeleteExpired(ctx, s.now())
			if err != nil {
				log.Warn().Err(err).Msg("purge expired sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int64("rows", n).Msg("purged expired sessions")
			}
		case <-ctx.Done():
			return
		}
	}
}
