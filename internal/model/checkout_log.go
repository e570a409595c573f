package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutStatus is the outcome recorded for a checkout attempt.
type CheckoutStatus string

const (
	CheckoutStatusRejected        CheckoutStatus = "rejected"
	CheckoutStatusOrderPlaced     CheckoutStatus = "order_placed"
	CheckoutStatusOrderFailed     CheckoutStatus = "order_failed"
	CheckoutStatusGatewayOpened   CheckoutStatus = "gateway_opened"
	CheckoutStatusGatewayFailed   CheckoutStatus = "gateway_failed"
	CheckoutStatusPaymentVerified CheckoutStatus = "payment_verified"
	CheckoutStatusPaymentRejected CheckoutStatus = "payment_rejected"
)

// CheckoutLog records one checkout attempt, successful or not.
// A gateway_opened row without a later payment_verified row for the same
// gateway order is a payment that was never confirmed.
type CheckoutLog struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	SessionID      string          `json:"session_id" gorm:"type:char(36);not null;index"`
	UserID         string          `json:"user_id" gorm:"size:64;index"`
	PaymentMethod  string          `json:"payment_method" gorm:"size:20;not null"`
	GatewayOrderID string          `json:"gateway_order_id,omitempty" gorm:"size:64;index"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(20,2);not null"`
	Status         CheckoutStatus  `json:"status" gorm:"type:varchar(20);not null;index"`
	ErrorMessage   string          `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (cl *CheckoutLog) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return nil
}
