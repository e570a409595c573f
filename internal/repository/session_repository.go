package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodcart/internal/model"
)

// SessionRepository defines session value persistence operations.
type SessionRepository interface {
	FindBySession(ctx context.Context, sessionID string, now time.Time) ([]model.SessionValue, error)
	Upsert(ctx context.Context, values []model.SessionValue) error
	DeleteKeys(ctx context.Context, sessionID string, keys []string) error
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// FindBySession returns the unexpired values of a session.
func (r *sessionRepository) FindBySession(ctx context.Context, sessionID string, now time.Time) ([]model.SessionValue, error) {
	var values []model.SessionValue
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", sessionID, now).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// Upsert inserts values or overwrites existing keys.
func (r *sessionRepository) Upsert(ctx context.Context, values []model.SessionValue) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&values).Error
}

// DeleteKeys removes some keys of a session.
func (r *sessionRepository) DeleteKeys(ctx context.Context, sessionID string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("session_id = ? AND `key` IN ?", sessionID, keys).
		Delete(&model.SessionValue{}).Error
}

// DeleteSession removes every key of a session.
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.SessionValue{}).Error
}

// DeleteExpired purges expired rows and reports how many were removed.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.SessionValue{})
	return res.RowsAffected, res.Error
}
