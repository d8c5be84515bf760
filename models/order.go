package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order states
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentState tracks whether an order has been settled
type PaymentState string

const (
	PaymentUnpaid PaymentState = "unpaid"
	PaymentPaid   PaymentState = "paid"
)

// BookingStatus is the closed set of booking states
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type Order struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        *uint           `json:"user_id"`
	User          *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TableID       *uint           `json:"table_id"`
	Table         *DiningTable    `json:"table,omitempty" gorm:"foreignKey:TableID"`
	Status        OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus PaymentState    `json:"payment_status" gorm:"not null;default:'unpaid'"`
	Note          string          `json:"note"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	Items         []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null"`
	MenuItemID uint            `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem        `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"` // snapshot of the menu price at order time
}

// Payment references its order one-directionally; the order does not own it.
type Payment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Booking struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	UserID       *uint         `json:"user_id"`
	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CustomerName string        `json:"customer_name" gorm:"not null"`
	Phone        string        `json:"phone" gorm:"not null"`
	BookingTime  time.Time     `json:"booking_time" gorm:"not null"`
	Guests       int           `json:"guests"`
	Note         string        `json:"note"`
	Status       BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null"`
	Stars     int       `json:"stars" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
