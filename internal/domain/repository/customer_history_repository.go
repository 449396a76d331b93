package repository

import (
	"context"

	"github.com/google/uuid"

	"opticare-backend/internal/domain/entity"
)

// CustomerHistoryRepository defines the interface for the per-customer
// deleted-item aggregates
type CustomerHistoryRepository interface {
	GetByMobileNo(ctx context.Context, mobileNo string) (*entity.CustomerHistory, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.CustomerHistory, error)
	Create(ctx context.Context, history *entity.CustomerHistory) error
	Update(ctx context.Context, history *entity.CustomerHistory) error
}
