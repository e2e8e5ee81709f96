package domain

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderJSONShape(t *testing.T) {
	order := Order{
		ID:     "o1",
		UserID: "u1",
		Items: []OrderItem{
			{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 2, Price: 20},
		},
		Total:         40,
		PaymentMethod: PaymentMethodCOD,
		Status:        OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	data, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "u1", decoded["userId"])
	// The buyer is identified by userId only; no embedded user document.
	assert.NotContains(t, decoded, "user")
}
