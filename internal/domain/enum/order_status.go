package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus int

const (
	OrderStatusProcessing OrderStatus = 0
	OrderStatusReady      OrderStatus = 1
	OrderStatusDelivered  OrderStatus = 2
	OrderStatusCancelled  OrderStatus = 3
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusReady:
		return "Ready"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Processing"
	}
}

// IsValid reports whether the value is one of the known statuses
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusProcessing && s <= OrderStatusCancelled
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Processing":
		*s = OrderStatusProcessing
	case "Ready":
		*s = OrderStatusReady
	case "Delivered":
		*s = OrderStatusDelivered
	case "Cancelled":
		*s = OrderStatusCancelled
	default:
		return fmt.Errorf("invalid order status %q", str)
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusProcessing
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
