package model

import "time"

// SessionValue is one key of a browser session persisted in MySQL.
type SessionValue struct {
	SessionID string    `json:"session_id" gorm:"type:char(36);primaryKey"`
	Key       string    `json:"key" gorm:"size:64;primaryKey"`
	Value     string    `json:"value" gorm:"type:text"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name.
func (SessionValue) TableName() string {
	return "session_values"
}
