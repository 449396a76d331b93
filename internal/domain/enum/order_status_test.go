package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_String(t *testing.T) {
	assert.Equal(t, "Processing", OrderStatusProcessing.String())
	assert.Equal(t, "Ready", OrderStatusReady.String())
	assert.Equal(t, "Delivered", OrderStatusDelivered.String())
	assert.Equal(t, "Cancelled", OrderStatusCancelled.String())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusProcessing.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus(-1).IsValid())
	assert.False(t, OrderStatus(99).IsValid())
}

func TestOrderStatus_JSON(t *testing.T) {
	data, err := json.Marshal(OrderStatusReady)
	assert.NoError(t, err)
	assert.Equal(t, `"Ready"`, string(data))

	var fromName OrderStatus
	assert.NoError(t, json.Unmarshal([]byte(`"Delivered"`), &fromName))
	assert.Equal(t, OrderStatusDelivered, fromName)

	var fromInt OrderStatus
	assert.NoError(t, json.Unmarshal([]byte(`3`), &fromInt))
	assert.Equal(t, OrderStatusCancelled, fromInt)
}

func TestOrderStatus_JSONRejectsUnknownName(t *testing.T) {
	var s OrderStatus
	err := json.Unmarshal([]byte(`"Shipped"`), &s)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}

func TestOrderStatus_Scan(t *testing.T) {
	var s OrderStatus
	assert.NoError(t, s.Scan(int64(2)))
	assert.Equal(t, OrderStatusDelivered, s)

	assert.NoError(t, s.Scan(nil))
	assert.Equal(t, OrderStatusProcessing, s)
}
