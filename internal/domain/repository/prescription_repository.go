package repository

import (
	"context"

	"github.com/google/uuid"

	"opticare-backend/internal/domain/entity"
)

// PrescriptionRepository defines the interface for prescription data operations
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	GetByPrescriptionNo(ctx context.Context, prescriptionNo string) (*entity.Prescription, error)
	GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Prescription, error)
	Update(ctx context.Context, prescription *entity.Prescription) error
}
