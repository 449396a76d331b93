package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"opticare-backend/internal/domain/entity"
	"opticare-backend/internal/domain/enum"
	"opticare-backend/internal/domain/repository"
)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *OrderRepoMock) GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error) {
	args := m.Called(ctx, orderNo)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *OrderRepoMock) GetByPrescriptionID(ctx context.Context, prescriptionID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, prescriptionID)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *OrderRepoMock) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OrderRepoMock) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	args := m.Called(ctx, params)
	orders, _ := args.Get(0).([]entity.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBatch(ctx context.Context, items []entity.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]entity.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrderPaymentRepoMock struct{ mock.Mock }

func (m *OrderPaymentRepoMock) Create(ctx context.Context, payment *entity.OrderPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *OrderPaymentRepoMock) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.OrderPayment, error) {
	args := m.Called(ctx, orderID)
	payment, _ := args.Get(0).(*entity.OrderPayment)
	return payment, args.Error(1)
}

func (m *OrderPaymentRepoMock) UpdateRaw(ctx context.Context, payment *entity.OrderPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *OrderPaymentRepoMock) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type PrescriptionRepoMock struct{ mock.Mock }

func (m *PrescriptionRepoMock) Create(ctx context.Context, prescription *entity.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *PrescriptionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	args := m.Called(ctx, id)
	prescription, _ := args.Get(0).(*entity.Prescription)
	return prescription, args.Error(1)
}

func (m *PrescriptionRepoMock) GetByPrescriptionNo(ctx context.Context, prescriptionNo string) (*entity.Prescription, error) {
	args := m.Called(ctx, prescriptionNo)
	prescription, _ := args.Get(0).(*entity.Prescription)
	return prescription, args.Error(1)
}

func (m *PrescriptionRepoMock) GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Prescription, error) {
	args := m.Called(ctx, referenceNo)
	prescription, _ := args.Get(0).(*entity.Prescription)
	return prescription, args.Error(1)
}

func (m *PrescriptionRepoMock) Update(ctx context.Context, prescription *entity.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

type CustomerHistoryRepoMock struct{ mock.Mock }

func (m *CustomerHistoryRepoMock) GetByMobileNo(ctx context.Context, mobileNo string) (*entity.CustomerHistory, error) {
	args := m.Called(ctx, mobileNo)
	history, _ := args.Get(0).(*entity.CustomerHistory)
	return history, args.Error(1)
}

func (m *CustomerHistoryRepoMock) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*entity.CustomerHistory, error) {
	args := m.Called(ctx, customerID)
	history, _ := args.Get(0).(*entity.CustomerHistory)
	return history, args.Error(1)
}

func (m *CustomerHistoryRepoMock) Create(ctx context.Context, history *entity.CustomerHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *CustomerHistoryRepoMock) Update(ctx context.Context, history *entity.CustomerHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}
