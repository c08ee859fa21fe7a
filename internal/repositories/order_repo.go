package repositories

import (
	"time"

	"tokobuku/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	// Place atomically resolves and prices the requested lines, checks and
	// deducts stock, and persists the order with its items. On any failure
	// no stock is deducted and nothing is persisted.
	Place(order *models.Order, lines []models.OrderLine) error
	UpdateStatus(id uint, status models.OrderStatus) error
	// FindInRange returns orders in the given states created in [start, end),
	// with items and books populated, oldest first. Nil bounds are open.
	FindInRange(start, end *time.Time, statuses []models.OrderStatus) ([]models.Order, error)
	// Delete(id uint) error // Deletion of orders might be complex, so we'll omit for now.
}
