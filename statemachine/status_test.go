package statemachine

import (
	"testing"

	"restaurant-order-api/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		wantErr bool
	}{
		{name: "pending to completed", from: models.OrderPending, to: models.OrderCompleted},
		{name: "pending to cancelled", from: models.OrderPending, to: models.OrderCancelled},
		{name: "completed is terminal", from: models.OrderCompleted, to: models.OrderPending, wantErr: true},
		{name: "cancelled is terminal", from: models.OrderCancelled, to: models.OrderCompleted, wantErr: true},
		{name: "no self transition", from: models.OrderPending, to: models.OrderPending, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := CanTransitionOrder(testCase.from, testCase.to)
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingTransitions(t *testing.T) {
	assert.NoError(t, CanTransitionBooking(models.BookingPending, models.BookingConfirmed))
	assert.NoError(t, CanTransitionBooking(models.BookingConfirmed, models.BookingCompleted))
	assert.NoError(t, CanTransitionBooking(models.BookingConfirmed, models.BookingCancelled))
	assert.Error(t, CanTransitionBooking(models.BookingPending, models.BookingCompleted))
	assert.Error(t, CanTransitionBooking(models.BookingCancelled, models.BookingPending))
}

func TestSettleForcesCompleted(t *testing.T) {
	// Settlement is an event, not a table transition: it applies from any state.
	for _, from := range []models.OrderStatus{models.OrderPending, models.OrderCompleted, models.OrderCancelled} {
		assert.Equal(t, models.OrderCompleted, Settle(from))
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(models.OrderPending))
	assert.False(t, ValidOrderStatus("shipped"))
	assert.True(t, ValidBookingStatus(models.BookingConfirmed))
	assert.False(t, ValidBookingStatus("waitlisted"))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, OrderTransitionsFrom(models.OrderCompleted))
	assert.Empty(t, OrderTransitionsFrom(models.OrderCancelled))
	assert.NotEmpty(t, OrderTransitionsFrom(models.OrderPending))
}
