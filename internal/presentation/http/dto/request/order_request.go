package request

// SaveOrderRequest is the JSON body for creating or updating an order.
// Advance and discount fields arrive as strings because the POS forms
// submit raw text; malformed values resolve to zero instead of failing
// the save.
type SaveOrderRequest struct {
	OrderNo        string             `json:"order_no"`
	PrescriptionID string             `json:"prescription_id" binding:"required"`
	BillNo         string             `json:"bill_no"`
	OrderDate      string             `json:"order_date"`
	DeliveryDate   string             `json:"delivery_date"`
	Status         *int               `json:"status"`
	Remarks        string             `json:"remarks"`
	BookedBy       string             `json:"booked_by"`
	Items          []OrderItemRequest `json:"items" binding:"required"`
	Payment        PaymentRequest     `json:"payment"`
}

// OrderItemRequest is one line of a save request
type OrderItemRequest struct {
	ItemType        string  `json:"item_type"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Rate            float64 `json:"rate"`
	Qty             int     `json:"qty"`
	TaxPercent      float64 `json:"tax_percent"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
}

// PaymentRequest carries the raw advance inputs as entered at the counter
type PaymentRequest struct {
	AdvanceCash     string `json:"advance_cash"`
	AdvanceCardUpi  string `json:"advance_card_upi"`
	AdvanceOther    string `json:"advance_other"`
	ScheduleAmount  string `json:"schedule_amount"`
	AppliedDiscount string `json:"applied_discount"`
}

// UpdateOrderStatusRequest changes an order's fulfilment status
type UpdateOrderStatusRequest struct {
	Status int `json:"status"`
}
