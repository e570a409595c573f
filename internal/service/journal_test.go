package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foodcart/internal/model"
)

func TestAsyncJournal_FlushesOnClose(t *testing.T) {
	repo := new(MockCheckoutLogRepository)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(logs []model.CheckoutLog) bool {
		return len(logs) == 3
	})).Return(nil).Once()

	j := NewAsyncJournal(repo, nopLog)
	for i := 0; i < 3; i++ {
		j.Record(context.Background(), model.CheckoutLog{SessionID: "s", Status: model.CheckoutStatusOrderPlaced})
	}
	j.Close()
	j.Close()

	repo.AssertExpectations(t)
}

func TestAsyncJournal_FlushesFullBatches(t *testing.T) {
	repo := new(MockCheckoutLogRepository)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(logs []model.CheckoutLog) bool {
		return len(logs) == journalBatchSize
	})).Return(nil).Once()
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(logs []model.CheckoutLog) bool {
		return len(logs) == 2
	})).Return(nil).Once()

	j := NewAsyncJournal(repo, nopLog)
	for i := 0; i < journalBatchSize+2; i++ {
		j.Record(context.Background(), model.CheckoutLog{SessionID: "s"})
	}
	j.Close()

	repo.AssertExpectations(t)
}

func TestAsyncJournal_RecordAfterCloseWritesDirectly(t *testing.T) {
	repo := new(MockCheckoutLogRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *model.CheckoutLog) bool {
		return entry.GatewayOrderID == "order_late"
	})).Return(nil).Once()

	j := NewAsyncJournal(repo, nopLog)
	j.Close()

	assert.NotPanics(t, func() {
		j.Record(context.Background(), model.CheckoutLog{SessionID: "s", GatewayOrderID: "order_late"})
	})
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestNopJournal(t *testing.T) {
	assert.NotPanics(t, func() {
		NopJournal{}.Record(context.Background(), model.CheckoutLog{})
	})
}
