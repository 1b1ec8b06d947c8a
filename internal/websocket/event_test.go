package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		name     string
		et       EventType
		expected string
	}{
		{"created", EventTypeCreated, "created"},
		{"updated", EventTypeUpdated, "updated"},
		{"deleted", EventTypeDeleted, "deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestEntityType_String(t *testing.T) {
	tests := []struct {
		name     string
		et       EntityType
		expected string
	}{
		{"expense", EntityTypeExpense, "expense"},
		{"category", EntityTypeCategory, "category"},
		{"budget", EntityTypeBudget, "budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":          1,
		"description": "Weekly shop",
		"amount":      "42.50",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeExpense, payload)
	after := time.Now()

	assert.Equal(t, "expense.created", evt.Type)
	assert.Equal(t, EntityTypeExpense, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"id":          float64(1),
		"description": "Weekly shop",
		"amount":      "42.50",
	}

	evt := Event{
		Type:      "expense.created",
		Entity:    EntityTypeExpense,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded Event
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime.UTC(), decoded.Timestamp.UTC())

	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), decodedPayload["id"])
	assert.Equal(t, "Weekly shop", decodedPayload["description"])
	assert.Equal(t, "42.50", decodedPayload["amount"])
}

func TestEvent_ToJSON(t *testing.T) {
	payload := map[string]interface{}{
		"id": float64(42),
	}

	evt := NewEvent(EventTypeUpdated, EntityTypeExpense, payload)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var decoded map[string]interface{}
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "expense.updated", decoded["type"])
	assert.Equal(t, "expense", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id": float64(1),
	}

	tests := []struct {
		name       string
		build      func(payload interface{}) Event
		wantType   string
		wantEntity EntityType
	}{
		{"ExpenseCreated", ExpenseCreated, "expense.created", EntityTypeExpense},
		{"ExpenseUpdated", ExpenseUpdated, "expense.updated", EntityTypeExpense},
		{"ExpenseDeleted", ExpenseDeleted, "expense.deleted", EntityTypeExpense},
		{"CategoryCreated", CategoryCreated, "category.created", EntityTypeCategory},
		{"CategoryUpdated", CategoryUpdated, "category.updated", EntityTypeCategory},
		{"CategoryDeleted", CategoryDeleted, "category.deleted", EntityTypeCategory},
		{"BudgetCreated", BudgetCreated, "budget.created", EntityTypeBudget},
		{"BudgetUpdated", BudgetUpdated, "budget.updated", EntityTypeBudget},
		{"BudgetDeleted", BudgetDeleted, "budget.deleted", EntityTypeBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := tt.build(payload)
			assert.Equal(t, tt.wantType, evt.Type)
			assert.Equal(t, tt.wantEntity, evt.Entity)
			assert.Equal(t, payload, evt.Payload)
		})
	}
}
