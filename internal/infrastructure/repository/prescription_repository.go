package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"opticare-backend/internal/domain/entity"
	domainRepo "opticare-backend/internal/domain/repository"
)

type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *gorm.DB) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *entity.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).First(&prescription, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) GetByPrescriptionNo(ctx context.Context, prescriptionNo string) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).First(&prescription, "prescription_no = ?", prescriptionNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).First(&prescription, "reference_no = ?", referenceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *entity.Prescription) error {
	return r.db.WithContext(ctx).Save(prescription).Error
}
