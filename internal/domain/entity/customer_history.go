package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeletedItem is an immutable snapshot of an order line taken at the
// moment it was removed, denormalized so it can be displayed without
// re-joining the order or prescription tables. Never mutated after
// insertion.
type DeletedItem struct {
	ItemID         uuid.UUID `json:"item_id"`
	Name           string    `json:"name"`
	Code           string    `json:"code,omitempty"`
	ItemType       string    `json:"item_type,omitempty"`
	Rate           float64   `json:"rate"`
	Qty            int       `json:"qty"`
	TaxPercent     float64   `json:"tax_percent"`
	DiscountAmount float64   `json:"discount_amount"`
	Amount         float64   `json:"amount"`
	OrderNo        string    `json:"order_no,omitempty"`
	PrescriptionNo string    `json:"prescription_no,omitempty"`
	ReferenceNo    string    `json:"reference_no,omitempty"`
	DeletedAt      time.Time `json:"deleted_at"`
}

// CustomerHistory is the per-customer aggregate of removed order lines.
// The deleted items live as an embedded JSON collection, not a
// foreign-keyed table. Mobile number is the primary human-facing key;
// customer id is the fallback.
type CustomerHistory struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID        *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	MobileNo          string         `gorm:"size:20;index;not null" json:"mobile_no"`
	CustomerName      string         `gorm:"size:255" json:"customer_name"`
	Address           string         `gorm:"type:text" json:"address,omitempty"`
	DeletedItems      datatypes.JSON `gorm:"type:jsonb" json:"deleted_items"`
	TotalDeletedItems int            `gorm:"default:0" json:"total_deleted_items"`
	TotalDeletedValue float64        `gorm:"type:numeric(14,2);default:0" json:"total_deleted_value"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new history aggregate
func (h *CustomerHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerHistory model
func (CustomerHistory) TableName() string {
	return "customer_history"
}

// Items decodes the embedded deleted-item list
func (h *CustomerHistory) Items() ([]DeletedItem, error) {
	if len(h.DeletedItems) == 0 {
		return nil, nil
	}
	var items []DeletedItem
	if err := json.Unmarshal(h.DeletedItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetItems encodes the deleted-item list back into the JSON column
func (h *CustomerHistory) SetItems(items []DeletedItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	h.DeletedItems = datatypes.JSON(raw)
	return nil
}
