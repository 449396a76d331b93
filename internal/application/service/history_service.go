package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"opticare-backend/internal/domain/entity"
	"opticare-backend/internal/domain/finance"
	"opticare-backend/internal/domain/repository"
	"opticare-backend/pkg/apperror"
)

// HistoryService maintains the per-customer aggregate of deleted order
// lines. Recording is allowed to fail independently of the deletion that
// triggered it; callers log the failure and proceed.
type HistoryService struct {
	historyRepo repository.CustomerHistoryRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo repository.CustomerHistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// CustomerKey identifies the customer aggregate. Mobile number is tried
// first because it is the more stable human-facing key across records
// created by different flows.
type CustomerKey struct {
	MobileNo   string
	CustomerID *uuid.UUID
	Name       string
	Address    string
}

// RecordResult reports the outcome of a history write. Success=false is a
// soft outcome, never an error that should block the item deletion.
type RecordResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RecordDeletion appends a deleted-item snapshot to the customer's
// aggregate, creating the aggregate if none exists. A snapshot whose item
// id is already present is rejected as an idempotent re-delete.
func (s *HistoryService) RecordDeletion(ctx context.Context, key CustomerKey, snapshot entity.DeletedItem) (RecordResult, error) {
	if key.MobileNo == "" && key.CustomerID == nil {
		return RecordResult{Success: false, Message: "customer key missing"},
			apperror.NewValidationError([]apperror.FieldError{
				{Field: "mobile_no", Message: "mobile number or customer id is required"},
			})
	}

	history, err := s.lookup(ctx, key)
	if err != nil {
		return RecordResult{Success: false, Message: "history lookup failed"}, err
	}

	if history == nil {
		history = &entity.CustomerHistory{
			CustomerID:        key.CustomerID,
			MobileNo:          key.MobileNo,
			CustomerName:      key.Name,
			Address:           key.Address,
			TotalDeletedItems: 1,
			TotalDeletedValue: finance.Round2(snapshot.Amount),
		}
		if err := history.SetItems([]entity.DeletedItem{snapshot}); err != nil {
			return RecordResult{Success: false, Message: "failed to encode history entry"}, err
		}
		if err := s.historyRepo.Create(ctx, history); err != nil {
			return RecordResult{Success: false, Message: "failed to create history record"}, err
		}
		return RecordResult{Success: true, Message: "history record created"}, nil
	}

	items, err := history.Items()
	if err != nil {
		return RecordResult{Success: false, Message: "failed to decode history entries"}, err
	}

	// Idempotent re-delete guard: identity is checked by item id, not by
	// content.
	for _, existing := range items {
		if existing.ItemID == snapshot.ItemID {
			return RecordResult{
				Success: false,
				Message: fmt.Sprintf("item %s already recorded", snapshot.ItemID),
			}, nil
		}
	}

	items = append(items, snapshot)
	if err := history.SetItems(items); err != nil {
		return RecordResult{Success: false, Message: "failed to encode history entry"}, err
	}
	history.TotalDeletedItems++
	history.TotalDeletedValue = finance.Round2(history.TotalDeletedValue + snapshot.Amount)

	// Contact info may have changed since the aggregate was created.
	if key.Name != "" {
		history.CustomerName = key.Name
	}
	if key.Address != "" {
		history.Address = key.Address
	}
	if key.MobileNo != "" {
		history.MobileNo = key.MobileNo
	}
	if key.CustomerID != nil {
		history.CustomerID = key.CustomerID
	}

	if err := s.historyRepo.Update(ctx, history); err != nil {
		return RecordResult{Success: false, Message: "failed to update history record"}, err
	}
	return RecordResult{Success: true, Message: "history record updated"}, nil
}

// SearchField selects which snapshot field a history search matches on
type SearchField string

const (
	SearchByReferenceNo    SearchField = "reference_no"
	SearchByPrescriptionNo SearchField = "prescription_no"
)

// Search returns a projection of the aggregate filtered to the snapshots
// matching the given field, with totals recomputed for the filtered view.
// The stored aggregate is never mutated.
func (s *HistoryService) Search(ctx context.Context, key CustomerKey, field SearchField, value string) (*entity.CustomerHistory, error) {
	history, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, apperror.NewNotFoundError("Customer history")
	}

	items, err := history.Items()
	if err != nil {
		return nil, err
	}

	var matched []entity.DeletedItem
	var total float64
	for _, item := range items {
		var candidate string
		switch field {
		case SearchByPrescriptionNo:
			candidate = item.PrescriptionNo
		default:
			candidate = item.ReferenceNo
		}
		if candidate == value {
			matched = append(matched, item)
			total += item.Amount
		}
	}

	projection := *history
	if err := projection.SetItems(matched); err != nil {
		return nil, err
	}
	projection.TotalDeletedItems = len(matched)
	projection.TotalDeletedValue = finance.Round2(total)
	return &projection, nil
}

// Get returns the stored aggregate for the customer key
func (s *HistoryService) Get(ctx context.Context, key CustomerKey) (*entity.CustomerHistory, error) {
	history, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, apperror.NewNotFoundError("Customer history")
	}
	return history, nil
}

func (s *HistoryService) lookup(ctx context.Context, key CustomerKey) (*entity.CustomerHistory, error) {
	if key.MobileNo != "" {
		history, err := s.historyRepo.GetByMobileNo(ctx, key.MobileNo)
		if err != nil {
			return nil, err
		}
		if history != nil {
			return history, nil
		}
	}
	if key.CustomerID != nil {
		return s.historyRepo.GetByCustomerID(ctx, *key.CustomerID)
	}
	return nil, nil
}
