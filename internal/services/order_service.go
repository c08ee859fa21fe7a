package services

import (
	"encoding/json"
	"log"

	"tokobuku/internal/models"
	"tokobuku/internal/repositories"
	"tokobuku/pkg/rabbitmq"
)

// CreateOrderRequest is the payload for placing a new order.
type CreateOrderRequest struct {
	Items           []models.OrderLine `json:"items"`
	ShippingAddress string             `json:"shipping_address"`
	Phone           string             `json:"phone"`
	Notes           string             `json:"notes"`
}

// OrderService handles business logic related to orders. Placement is
// all-or-nothing: validation happens up front, then the repository runs the
// stock check, deduction and persistence inside one transaction.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByUser retrieves all orders placed by one user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// PlaceOrder validates the request and places the order atomically.
// No stock is touched unless every line passes validation; a failure inside
// the repository rolls back every write of this call.
func (s *OrderService) PlaceOrder(userID string, req CreateOrderRequest) (*models.Order, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	if len(req.Items) == 0 {
		return nil, models.ErrEmptyOrder
	}
	for i, line := range req.Items {
		if line.BookRef.IsZero() {
			return nil, &models.ValidationError{Index: i + 1, Field: "book_id", Reason: "is required"}
		}
		if line.Quantity <= 0 {
			return nil, &models.ValidationError{Index: i + 1, Field: "quantity", Reason: "must be a positive integer"}
		}
	}

	order := &models.Order{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
	}
	if err := s.orderRepo.Place(order, req.Items); err != nil {
		return nil, err
	}

	s.publishOrderCreated(order)
	return order, nil
}

// publishOrderCreated emits an order.created event. Publication is
// best-effort: the order is already committed, so failures are only logged.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.mqClient.PublishOrderCreated(body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %d: %v", order.ID, err)
		return
	}
	log.Printf("Successfully published order created event for order %d", order.ID)
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return &models.ValidationError{Field: "status", Reason: "is not a valid order status"}
	}
	return s.orderRepo.UpdateStatus(id, status)
}
