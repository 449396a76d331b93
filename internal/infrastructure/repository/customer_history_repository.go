package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"opticare-backend/internal/domain/entity"
	domainRepo "opticare-backend/internal/domain/repository"
)

type customerHistoryRepository struct {
	db *gorm.DB
}

// NewCustomerHistoryRepository creates a new customer history repository
func NewCustomerHistoryRepository(db *gorm.DB) domainRepo.CustomerHistoryRepository {
	return &customerHistoryRepository{db: db}
}

func (r *customerHistoryRepository) GetByMobileNo(ctx context.Context, mobileNo string) (*entity.CustomerHistory, error) {
	var history entity.CustomerHistory
	err := r.db.WithContext(ctx).First(&history, "mobile_no = ?", mobileNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &history, err
}

func (r *customerHistoryRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.CustomerHistory, error) {
	var history entity.CustomerHistory
	err := r.db.WithContext(ctx).First(&history, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &history, err
}

func (r *customerHistoryRepository) Create(ctx context.Context, history *entity.CustomerHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *customerHistoryRepository) Update(ctx context.Context, history *entity.CustomerHistory) error {
	return r.db.WithContext(ctx).Save(history).Error
}
