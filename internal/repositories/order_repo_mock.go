package repositories

import (
	"fmt"
	"sync"
	"time"

	"tokobuku/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It shares a MockBookRepository so that Place honors the same atomic
// stock-deduction contract as the GORM implementation.
type MockOrderRepository struct {
	orders map[uint]models.Order
	books  *MockBookRepository
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository
// backed by the given book repository for stock checks.
func NewMockOrderRepository(books *MockBookRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		books:  books,
		nextID: 1,
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for id := uint(1); id < r.nextID; id++ {
		if order, ok := r.orders[id]; ok {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d not found", id)
	}
	return &order, nil
}

// GetByUser returns all orders for one user.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for id := uint(1); id < r.nextID; id++ {
		if order, ok := r.orders[id]; ok && order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// Place reserves stock through the book repository and stores the order.
// Reserve either deducts every line or nothing, so a failure here leaves
// stock and the order map untouched.
func (r *MockOrderRepository) Place(order *models.Order, lines []models.OrderLine) error {
	items, total, err := r.books.Reserve(lines)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	order.Status = models.OrderStatusPending
	order.TotalAmount = total
	order.Items = items
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].ID = uint(i) + 1
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %d not found for status update", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// FindInRange returns orders in the given states created within [start, end).
func (r *MockOrderRepository) FindInRange(start, end *time.Time, statuses []models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := make(map[models.OrderStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	var orderList []models.Order
	for id := uint(1); id < r.nextID; id++ {
		order, ok := r.orders[id]
		if !ok {
			continue
		}
		if len(allowed) > 0 && !allowed[order.Status] {
			continue
		}
		if start != nil && order.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && !order.CreatedAt.Before(*end) {
			continue
		}
		orderList = append(orderList, order)
	}
	return orderList, nil
}
