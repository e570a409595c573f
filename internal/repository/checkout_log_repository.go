package repository

import (
	"context"

	"gorm.io/gorm"

	"foodcart/internal/model"
)

// CheckoutLogRepository defines checkout journal persistence operations.
type CheckoutLogRepository interface {
	Create(ctx context.Context, log *model.CheckoutLog) error
	CreateBatch(ctx context.Context, logs []model.CheckoutLog) error
	FindByGatewayOrder(ctx context.Context, gatewayOrderID string) ([]model.CheckoutLog, error)
}

type checkoutLogRepository struct {
	db *gorm.DB
}

// NewCheckoutLogRepository creates a new checkout log repository.
func NewCheckoutLogRepository(db *gorm.DB) CheckoutLogRepository {
	return &checkoutLogRepository{db: db}
}

// Create creates a new checkout log entry.
func (r *checkoutLogRepository) Create(ctx context.Context, log *model.CheckoutLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateBatch creates multiple checkout log entries in a single statement batch.
func (r *checkoutLogRepository) CreateBatch(ctx context.Context, logs []model.CheckoutLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

// FindByGatewayOrder lists the journal of one gateway order, oldest first.
func (r *checkoutLogRepository) FindByGatewayOrder(ctx context.Context, gatewayOrderID string) ([]model.CheckoutLog, error) {
	var logs []model.CheckoutLog
	if err := r.db.WithContext(ctx).
		Where("gateway_order_id = ?", gatewayOrderID).
		Order("created_at asc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
