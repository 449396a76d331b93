package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"opticare-backend/internal/domain/enum"
)

// Order represents one purchase transaction tied to exactly one
// prescription. The store does not enforce one order per prescription;
// the order writer enforces it by lookup-before-insert.
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PrescriptionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"prescription_id"`
	OrderNo        string           `gorm:"size:50;uniqueIndex;not null" json:"order_no"`
	BillNo         string           `gorm:"size:50" json:"bill_no,omitempty"`
	OrderDate      time.Time        `gorm:"type:date;not null" json:"order_date"`
	DeliveryDate   *time.Time       `gorm:"type:date" json:"delivery_date,omitempty"`
	Status         enum.OrderStatus `gorm:"default:0" json:"status"`
	Remarks        string           `gorm:"type:text" json:"remarks,omitempty"`
	BookedBy       string           `gorm:"size:100" json:"booked_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Prescription Prescription  `gorm:"foreignKey:PrescriptionID" json:"-"`
	Items        []OrderItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payment      *OrderPayment `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of a purchase. Lines are never diffed on update:
// the whole set is deleted and re-inserted, so rows carry no identity
// beyond their order and sequence.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Seq             int       `gorm:"not null" json:"seq"`
	ItemType        string    `gorm:"size:50" json:"item_type,omitempty"`
	Code            string    `gorm:"size:50" json:"code,omitempty"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Rate            float64   `gorm:"type:numeric(12,2);not null" json:"rate"`
	Qty             int       `gorm:"not null;default:1" json:"qty"`
	TaxPercent      float64   `gorm:"type:numeric(5,2);default:0" json:"tax_percent"`
	DiscountPercent float64   `gorm:"type:numeric(5,2);default:0" json:"discount_percent"`
	DiscountAmount  float64   `gorm:"type:numeric(12,2);default:0" json:"discount_amount"`
	// Amount must equal rate*qty + tax - discount at the moment of write.
	Amount    float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderPayment holds the payment record, exactly one per order. The
// application writes only the raw fields; total_advance and balance are
// generated by Postgres and read-only from this side.
type OrderPayment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	PaymentEstimate float64   `gorm:"type:numeric(12,2);default:0" json:"payment_estimate"`
	TaxAmount       float64   `gorm:"type:numeric(12,2);default:0" json:"tax_amount"`
	DiscountAmount  float64   `gorm:"type:numeric(12,2);default:0" json:"discount_amount"`
	FinalAmount     float64   `gorm:"type:numeric(12,2);default:0" json:"final_amount"`
	AdvanceCash     float64   `gorm:"type:numeric(12,2);default:0" json:"advance_cash"`
	AdvanceCardUpi  float64   `gorm:"type:numeric(12,2);default:0;column:advance_card_upi" json:"advance_card_upi"`
	AdvanceOther    float64   `gorm:"type:numeric(12,2);default:0" json:"advance_other"`
	ScheduleAmount  float64   `gorm:"type:numeric(12,2);default:0" json:"schedule_amount"`
	TotalAdvance    float64   `gorm:"->;type:numeric(12,2) GENERATED ALWAYS AS (advance_cash + advance_card_upi + advance_other) STORED" json:"total_advance"`
	Balance         float64   `gorm:"->;type:numeric(12,2) GENERATED ALWAYS AS (GREATEST(final_amount - advance_cash - advance_card_upi - advance_other, 0)) STORED" json:"balance"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new order payment
func (p *OrderPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderPayment model
func (OrderPayment) TableName() string {
	return "order_payments"
}

// RawColumns lists the writable payment columns. Updates must never touch
// the generated columns, so repository updates select exactly these.
func (OrderPayment) RawColumns() []string {
	return []string{
		"payment_estimate",
		"tax_amount",
		"discount_amount",
		"final_amount",
		"advance_cash",
		"advance_card_upi",
		"advance_other",
		"schedule_amount",
	}
}
