package repositories

import (
	"errors"
	"fmt"
	"time"

	"tokobuku/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their items from the database.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Book").Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items.Book").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders belonging to one user.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Book").Where("user_id = ?", userID).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Place runs the whole order placement inside one database transaction.
// Book rows are locked FOR UPDATE before the stock check so that two
// concurrent orders against the same book cannot both pass validation
// against stale stock. Any error rolls back every write, including stock
// decrements from earlier lines of the same call.
func (r *GORMOrderRepository) Place(order *models.Order, lines []models.OrderLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var total int64
		resolved := make([]models.Book, len(lines))
		items := make([]models.OrderItem, len(lines))
		needed := make(map[uint]int, len(lines)) // cumulative, in case a book repeats

		for i, line := range lines {
			var book models.Book
			q := byRef(tx.Clauses(clause.Locking{Strength: "UPDATE"}), line.BookRef)
			if err := q.First(&book).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &models.BookNotFoundError{Ref: line.BookRef.String(), Index: i + 1}
				}
				return fmt.Errorf("failed to look up book %s: %w", line.BookRef, err)
			}

			needed[book.ID] += line.Quantity
			if book.Quantity < needed[book.ID] {
				return &models.InsufficientStockError{
					BookID:    book.ID,
					BookName:  book.Name,
					Available: book.Quantity - (needed[book.ID] - line.Quantity),
					Requested: line.Quantity,
					Index:     i + 1,
				}
			}

			lineTotal := book.SalePrice * int64(line.Quantity)
			total += lineTotal
			items[i] = models.OrderItem{
				BookID:     book.ID,
				Quantity:   line.Quantity,
				UnitPrice:  book.SalePrice,
				TotalPrice: lineTotal,
			}
			resolved[i] = book
		}

		// All lines passed validation; deduct stock once per book.
		for id, qty := range needed {
			if err := tx.Model(&models.Book{}).Where("id = ?", id).
				Update("quantity", gorm.Expr("quantity - ?", qty)).Error; err != nil {
				return fmt.Errorf("failed to deduct stock for book %d: %w", id, err)
			}
		}
		for i := range resolved {
			resolved[i].Quantity -= needed[resolved[i].ID]
		}

		order.Status = models.OrderStatusPending
		order.TotalAmount = total
		order.Items = items
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Populate book details on the returned order without re-saving them.
		for i := range order.Items {
			order.Items[i].Book = resolved[i]
		}
		return nil
	})
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found for status update", id)
	}
	return nil
}

// FindInRange returns orders in the given states created within [start, end).
func (r *GORMOrderRepository) FindInRange(start, end *time.Time, statuses []models.OrderStatus) ([]models.Order, error) {
	q := r.db.Preload("Items.Book").Order("created_at, id")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at < ?", *end)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to query orders in range: %w", err)
	}
	return orders, nil
}
