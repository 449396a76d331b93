package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"opticare-backend/internal/domain/entity"
)

func deletedItem(id uuid.UUID, amount float64) entity.DeletedItem {
	return entity.DeletedItem{
		ItemID:         id,
		Name:           "Lens",
		Rate:           amount,
		Qty:            1,
		Amount:         amount,
		PrescriptionNo: "PRS2608-28-CD34",
		ReferenceNo:    "REF-1",
		DeletedAt:      time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func storedHistory(t *testing.T, items ...entity.DeletedItem) *entity.CustomerHistory {
	t.Helper()
	history := &entity.CustomerHistory{
		ID:                uuid.New(),
		MobileNo:          "9876543210",
		CustomerName:      "Asha",
		TotalDeletedItems: len(items),
	}
	for _, item := range items {
		history.TotalDeletedValue += item.Amount
	}
	assert.NoError(t, history.SetItems(items))
	return history
}

func TestRecordDeletion_CreatesAggregateWhenAbsent(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)
	key := CustomerKey{MobileNo: "9876543210", Name: "Asha", Address: "12 Main Rd"}

	repo.On("GetByMobileNo", mock.Anything, "9876543210").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.CustomerHistory")).Return(nil)

	result, err := svc.RecordDeletion(context.Background(), key, deletedItem(uuid.New(), 600))

	assert.NoError(t, err)
	assert.True(t, result.Success)

	created := repo.Calls[1].Arguments.Get(1).(*entity.CustomerHistory)
	assert.Equal(t, "9876543210", created.MobileNo)
	assert.Equal(t, 1, created.TotalDeletedItems)
	assert.Equal(t, 600.0, created.TotalDeletedValue)
	items, decodeErr := created.Items()
	assert.NoError(t, decodeErr)
	assert.Len(t, items, 1)
}

func TestRecordDeletion_AppendsAndIncrementsTotals(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)
	existing := storedHistory(t, deletedItem(uuid.New(), 300))

	repo.On("GetByMobileNo", mock.Anything, "9876543210").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	result, err := svc.RecordDeletion(context.Background(), CustomerKey{MobileNo: "9876543210"}, deletedItem(uuid.New(), 600))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, existing.TotalDeletedItems)
	assert.Equal(t, 900.0, existing.TotalDeletedValue)
	items, decodeErr := existing.Items()
	assert.NoError(t, decodeErr)
	assert.Len(t, items, 2)
}

func TestRecordDeletion_SecondDeleteOfSameItemIsRejectedSoftly(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)
	itemID := uuid.New()
	existing := storedHistory(t, deletedItem(itemID, 600))

	repo.On("GetByMobileNo", mock.Anything, "9876543210").Return(existing, nil)

	result, err := svc.RecordDeletion(context.Background(), CustomerKey{MobileNo: "9876543210"}, deletedItem(itemID, 600))

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "already recorded")
	assert.Equal(t, 1, existing.TotalDeletedItems)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecordDeletion_MissingCustomerKey(t *testing.T) {
	svc := NewHistoryService(new(CustomerHistoryRepoMock))

	result, err := svc.RecordDeletion(context.Background(), CustomerKey{}, deletedItem(uuid.New(), 100))

	assert.Error(t, err)
	assert.False(t, result.Success)
}

func TestRecordDeletion_FallsBackToCustomerID(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)
	customerID := uuid.New()
	existing := storedHistory(t, deletedItem(uuid.New(), 300))

	repo.On("GetByMobileNo", mock.Anything, "9876543210").Return(nil, nil)
	repo.On("GetByCustomerID", mock.Anything, customerID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	result, err := svc.RecordDeletion(context.Background(), CustomerKey{MobileNo: "9876543210", CustomerID: &customerID}, deletedItem(uuid.New(), 100))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 400.0, existing.TotalDeletedValue)
}

func TestSearch_FiltersWithoutMutatingStoredAggregate(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)

	match := deletedItem(uuid.New(), 600)
	other := deletedItem(uuid.New(), 300)
	other.ReferenceNo = "REF-OTHER"
	existing := storedHistory(t, match, other)

	repo.On("GetByMobileNo", mock.Anything, "9876543210").Return(existing, nil)

	projection, err := svc.Search(context.Background(), CustomerKey{MobileNo: "9876543210"}, SearchByReferenceNo, "REF-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, projection.TotalDeletedItems)
	assert.Equal(t, 600.0, projection.TotalDeletedValue)
	items, decodeErr := projection.Items()
	assert.NoError(t, decodeErr)
	assert.Len(t, items, 1)
	assert.Equal(t, match.ItemID, items[0].ItemID)

	// The stored aggregate keeps all entries.
	storedItems, decodeErr := existing.Items()
	assert.NoError(t, decodeErr)
	assert.Len(t, storedItems, 2)
	assert.Equal(t, 2, existing.TotalDeletedItems)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSearch_ByPrescriptionNo(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)
	item := deletedItem(uuid.New(), 250)
	existing := storedHistory(t, item)

	repo.On("GetByMobileNo", mock.Anything, "9876543210").Return(existing, nil)

	projection, err := svc.Search(context.Background(), CustomerKey{MobileNo: "9876543210"}, SearchByPrescriptionNo, "PRS2608-28-CD34")

	assert.NoError(t, err)
	assert.Equal(t, 1, projection.TotalDeletedItems)
}

func TestGet_UnknownCustomer(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)

	repo.On("GetByMobileNo", mock.Anything, "0000000000").Return(nil, nil)

	_, err := svc.Get(context.Background(), CustomerKey{MobileNo: "0000000000"})

	assert.Error(t, err)
}

func TestRecordDeletion_LookupFailurePropagates(t *testing.T) {
	repo := new(CustomerHistoryRepoMock)
	svc := NewHistoryService(repo)

	repo.On("GetByMobileNo", mock.Anything, "9876543210").Return(nil, errors.New("db down"))

	result, err := svc.RecordDeletion(context.Background(), CustomerKey{MobileNo: "9876543210"}, deletedItem(uuid.New(), 100))

	assert.Error(t, err)
	assert.False(t, result.Success)
}
