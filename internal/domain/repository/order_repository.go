package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"opticare-backend/internal/domain/entity"
	"opticare-backend/internal/domain/enum"
	"opticare-backend/pkg/pagination"
)

// OrderRepository defines the interface for order header operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error)
	GetByPrescriptionID(ctx context.Context, prescriptionID uuid.UUID) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderItemRepository defines the interface for order line operations.
// Lines are replaced wholesale on update, so there is no per-row update.
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}

// OrderPaymentRepository defines the interface for the payment row.
// Updates write raw columns only; the generated columns stay store-owned.
type OrderPaymentRepository interface {
	Create(ctx context.Context, payment *entity.OrderPayment) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.OrderPayment, error)
	UpdateRaw(ctx context.Context, payment *entity.OrderPayment) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
