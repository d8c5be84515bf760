package statemachine

import (
	"errors"

	"restaurant-order-api/models"
)

// orderTransitions is the authoritative state machine for orders.
// completed and cancelled are terminal.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:   {models.OrderCompleted, models.OrderCancelled},
	models.OrderCompleted: {},
	models.OrderCancelled: {},
}

// bookingTransitions is the authoritative state machine for bookings.
var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
	models.BookingCompleted: {},
	models.BookingCancelled: {},
}

// ValidOrderStatus reports whether s is a member of the closed order enum
func ValidOrderStatus(s models.OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidBookingStatus reports whether s is a member of the closed booking enum
func ValidBookingStatus(s models.BookingStatus) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// OrderTransitionsFrom returns all valid next states from a given order state
func OrderTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	return orderTransitions[status]
}

// CanTransitionOrder checks whether an order may move from one state to another
func CanTransitionOrder(from, to models.OrderStatus) error {
	for _, next := range orderTransitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.New("invalid transition: " + string(from) + " -> " + string(to) +
		". Valid transitions from " + string(from) + " are: " + describeOrderFrom(from))
}

// CanTransitionBooking checks whether a booking may move from one state to another
func CanTransitionBooking(from, to models.BookingStatus) error {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.New("invalid transition: " + string(from) + " -> " + string(to))
}

// Settle is the payment-settled event. Recording a payment marks the order
// fulfilled no matter which state it was in, so this transition bypasses the
// table above.
func Settle(models.OrderStatus) models.OrderStatus {
	return models.OrderCompleted
}

func describeOrderFrom(status models.OrderStatus) string {
	nexts := orderTransitions[status]
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllOrderTransitions returns the order state machine for documentation
func AllOrderTransitions() map[models.OrderStatus][]models.OrderStatus {
	return orderTransitions
}

// AllBookingTransitions returns the booking state machine for documentation
func AllBookingTransitions() map[models.BookingStatus][]models.BookingStatus {
	return bookingTransitions
}
