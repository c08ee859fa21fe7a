package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// RevenueStatuses are the states in which an order counts toward revenue.
// Pending and cancelled orders are excluded.
var RevenueStatuses = []OrderStatus{OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered}

// OrderItem represents a single line within an order. It snapshots the book
// price at order time and is immutable after creation.
type OrderItem struct {
	ID         uint  `json:"id" gorm:"primaryKey"`
	OrderID    uint  `json:"order_id" gorm:"index"`
	BookID     uint  `json:"book_id" gorm:"index"`
	Book       Book  `json:"book"`
	Quantity   int   `json:"quantity"`
	UnitPrice  int64 `json:"unit_price"`  // price at the time of order
	TotalPrice int64 `json:"total_price"` // UnitPrice * Quantity
}

// Order represents a customer order.
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"total_amount"` // sum of item totals
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	ShippingAddress string      `json:"shipping_address"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
