package service

import (
	"context"

	"github.com/google/uuid"

	"opticare-backend/internal/domain/entity"
	"opticare-backend/internal/domain/repository"
	"opticare-backend/pkg/apperror"
)

// PrescriptionService handles prescription-related operations
type PrescriptionService struct {
	prescriptionRepo repository.PrescriptionRepository
	numbers          *NumberGenerator
}

// NewPrescriptionService creates a new prescription service
func NewPrescriptionService(prescriptionRepo repository.PrescriptionRepository, numbers *NumberGenerator) *PrescriptionService {
	return &PrescriptionService{prescriptionRepo: prescriptionRepo, numbers: numbers}
}

// CreatePrescriptionInput represents the create prescription input
type CreatePrescriptionInput struct {
	PrescriptionNo string // generated when empty
	ReferenceNo    string // defaults to prescription number
	CustomerName   string
	MobileNo       string
	Age            *int
	Gender         string
	Address        string
	TestedBy       string
	RightSphere    string
	RightCylinder  string
	RightAxis      string
	RightAdd       string
	LeftSphere     string
	LeftCylinder   string
	LeftAxis       string
	LeftAdd        string
	PD             string
}

// CreatePrescription creates a new prescription. The reference-number
// uniqueness lookup is an advisory pre-check; the unique index catches
// the race it cannot.
func (s *PrescriptionService) CreatePrescription(ctx context.Context, input *CreatePrescriptionInput) (*entity.Prescription, error) {
	var fieldErrors []apperror.FieldError
	if input.CustomerName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "customer name is required"})
	}
	if input.MobileNo == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "mobile_no", Message: "mobile number is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	prescriptionNo := input.PrescriptionNo
	if prescriptionNo == "" {
		generated, err := s.numbers.Generate(ctx, NumberKindPrescription)
		if err != nil {
			return nil, err
		}
		prescriptionNo = generated
	} else {
		existing, err := s.prescriptionRepo.GetByPrescriptionNo(ctx, prescriptionNo)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Prescription number " + prescriptionNo + " already exists")
		}
	}

	referenceNo := input.ReferenceNo
	if referenceNo == "" {
		referenceNo = prescriptionNo
	} else if referenceNo != prescriptionNo {
		existing, err := s.prescriptionRepo.GetByReferenceNo(ctx, referenceNo)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Reference number " + referenceNo + " already exists")
		}
	}

	prescription := &entity.Prescription{
		PrescriptionNo: prescriptionNo,
		ReferenceNo:    referenceNo,
		CustomerName:   input.CustomerName,
		MobileNo:       input.MobileNo,
		Age:            input.Age,
		Gender:         input.Gender,
		Address:        input.Address,
		TestedBy:       input.TestedBy,
		RightSphere:    input.RightSphere,
		RightCylinder:  input.RightCylinder,
		RightAxis:      input.RightAxis,
		RightAdd:       input.RightAdd,
		LeftSphere:     input.LeftSphere,
		LeftCylinder:   input.LeftCylinder,
		LeftAxis:       input.LeftAxis,
		LeftAdd:        input.LeftAdd,
		PD:             input.PD,
	}

	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// GetPrescription retrieves a prescription by ID
func (s *PrescriptionService) GetPrescription(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, apperror.NewNotFoundError("Prescription")
	}
	return prescription, nil
}

// UpdateReferenceNo changes the independently-editable reference number,
// keeping it globally unique
func (s *PrescriptionService) UpdateReferenceNo(ctx context.Context, id uuid.UUID, referenceNo string) (*entity.Prescription, error) {
	if referenceNo == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "reference_no", Message: "reference number is required"},
		})
	}

	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, apperror.NewNotFoundError("Prescription")
	}
	if prescription.ReferenceNo == referenceNo {
		return prescription, nil
	}

	existing, err := s.prescriptionRepo.GetByReferenceNo(ctx, referenceNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Reference number " + referenceNo + " already exists")
	}

	prescription.ReferenceNo = referenceNo
	if err := s.prescriptionRepo.Update(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}
