package repositories_test

import (
	"errors"
	"fmt"
	"testing"

	"tokobuku/internal/models"
	"tokobuku/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a fresh in-memory SQLite database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Author{},
		&models.Category{},
		&models.Book{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedBook(t *testing.T, repo *repositories.GORMBookRepository, name string, price int64, qty int) *models.Book {
	t.Helper()
	book := &models.Book{Name: name, SalePrice: price, Quantity: qty}
	require.NoError(t, repo.Create(book))
	return book
}

func TestPlace_AccountingAndConservation(t *testing.T) {
	db := setupDB(t)
	bookRepo := repositories.NewGORMBookRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	book := seedBook(t, bookRepo, "Laskar Pelangi", 50000, 10)

	order := &models.Order{UserID: "user-1", ShippingAddress: "Jl. Merdeka 1"}
	err := orderRepo.Place(order, []models.OrderLine{
		{BookRef: models.Ref(fmt.Sprint(book.ID)), Quantity: 3},
	})
	require.NoError(t, err)

	// Line totals and the order total follow unit price * quantity.
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(50000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(150000), order.Items[0].TotalPrice)
	assert.Equal(t, int64(150000), order.TotalAmount)
	assert.Equal(t, book.Name, order.Items[0].Book.Name)

	// Stock is conserved: 10 - 3 = 7.
	after, err := bookRepo.GetByRef(models.Ref(fmt.Sprint(book.ID)))
	require.NoError(t, err)
	assert.Equal(t, 7, after.Quantity)

	// The persisted order matches the returned one.
	stored, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, stored.TotalAmount)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, stored.Items[0].UnitPrice*int64(stored.Items[0].Quantity), stored.Items[0].TotalPrice)
}

func TestPlace_MultiLineTotals(t *testing.T) {
	db := setupDB(t)
	bookRepo := repositories.NewGORMBookRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	a := seedBook(t, bookRepo, "A", 10000, 5)
	b := seedBook(t, bookRepo, "B", 25000, 5)

	order := &models.Order{UserID: "user-1"}
	err := orderRepo.Place(order, []models.OrderLine{
		{BookRef: models.Ref(fmt.Sprint(a.ID)), Quantity: 2},
		{BookRef: models.Ref(fmt.Sprint(b.ID)), Quantity: 1},
	})
	require.NoError(t, err)

	var sum int64
	for _, item := range order.Items {
		sum += item.TotalPrice
	}
	assert.Equal(t, sum, order.TotalAmount)
	assert.Equal(t, int64(45000), order.TotalAmount)
}

func TestPlace_AtomicOnInsufficientStock(t *testing.T) {
	db := setupDB(t)
	bookRepo := repositories.NewGORMBookRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	a := seedBook(t, bookRepo, "A", 10000, 5)
	b := seedBook(t, bookRepo, "B", 20000, 0)

	// B cannot satisfy the request, so the whole order fails and A's stock
	// is untouched even though A was validated (and would have been
	// deducted) first.
	order := &models.Order{UserID: "user-1"}
	err := orderRepo.Place(order, []models.OrderLine{
		{BookRef: models.Ref(fmt.Sprint(a.ID)), Quantity: 2},
		{BookRef: models.Ref(fmt.Sprint(b.ID)), Quantity: 1},
	})

	var stockErr *models.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, b.ID, stockErr.BookID)
	assert.Equal(t, "B", stockErr.BookName)
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 1, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Index)

	afterA, err := bookRepo.GetByRef(models.Ref(fmt.Sprint(a.ID)))
	require.NoError(t, err)
	assert.Equal(t, 5, afterA.Quantity)

	orders, err := orderRepo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, orders)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestPlace_RepeatedBookAcrossLines(t *testing.T) {
	db := setupDB(t)
	bookRepo := repositories.NewGORMBookRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	a := seedBook(t, bookRepo, "A", 10000, 10)

	// Two lines of the same book count against stock cumulatively.
	order := &models.Order{UserID: "user-1"}
	err := orderRepo.Place(order, []models.OrderLine{
		{BookRef: models.Ref(fmt.Sprint(a.ID)), Quantity: 6},
		{BookRef: models.Ref(fmt.Sprint(a.ID)), Quantity: 6},
	})

	var stockErr *models.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 4, stockErr.Available) // 10 minus the first line
	assert.Equal(t, 2, stockErr.Index)

	after, err := bookRepo.GetByRef(models.Ref(fmt.Sprint(a.ID)))
	require.NoError(t, err)
	assert.Equal(t, 10, after.Quantity)

	// A fitting split succeeds and deducts once per copy.
	err = orderRepo.Place(&models.Order{UserID: "user-1"}, []models.OrderLine{
		{BookRef: models.Ref(fmt.Sprint(a.ID)), Quantity: 6},
		{BookRef: models.Ref(fmt.Sprint(a.ID)), Quantity: 4},
	})
	require.NoError(t, err)

	after, err = bookRepo.GetByRef(models.Ref(fmt.Sprint(a.ID)))
	require.NoError(t, err)
	assert.Equal(t, 0, after.Quantity)
}

func TestPlace_BookNotFound(t *testing.T) {
	db := setupDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{UserID: "user-1"}
	err := orderRepo.Place(order, []models.OrderLine{{BookRef: "999", Quantity: 1}})

	var notFoundErr *models.BookNotFoundError
	require.True(t, errors.As(err, &notFoundErr))
	assert.Equal(t, "999", notFoundErr.Ref)
	assert.Equal(t, 1, notFoundErr.Index)
}

func TestPlace_ResolvesDocumentID(t *testing.T) {
	db := setupDB(t)
	bookRepo := repositories.NewGORMBookRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	book := seedBook(t, bookRepo, "Bumi Manusia", 120000, 4)
	require.NotEmpty(t, book.DocumentID)

	// The same resolver accepts the external document id.
	order := &models.Order{UserID: "user-1"}
	err := orderRepo.Place(order, []models.OrderLine{
		{BookRef: models.Ref(book.DocumentID), Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, book.ID, order.Items[0].BookID)

	after, err := bookRepo.GetByRef(models.Ref(book.DocumentID))
	require.NoError(t, err)
	assert.Equal(t, 2, after.Quantity)
}

func TestPlace_SequentialOverdraw(t *testing.T) {
	db := setupDB(t)
	bookRepo := repositories.NewGORMBookRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	book := seedBook(t, bookRepo, "Limited", 10000, 10)
	ref := models.Ref(fmt.Sprint(book.ID))

	first := &models.Order{UserID: "user-1"}
	require.NoError(t, orderRepo.Place(first, []models.OrderLine{{BookRef: ref, Quantity: 6}}))

	// The second 6-copy order sees the deducted stock and fails.
	second := &models.Order{UserID: "user-2"}
	err := orderRepo.Place(second, []models.OrderLine{{BookRef: ref, Quantity: 6}})
	var stockErr *models.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 4, stockErr.Available)

	after, err := bookRepo.GetByRef(ref)
	require.NoError(t, err)
	assert.Equal(t, 4, after.Quantity)
}

func TestUpdateStatusAndFindInRange(t *testing.T) {
	db := setupDB(t)
	bookRepo := repositories.NewGORMBookRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	book := seedBook(t, bookRepo, "A", 10000, 100)
	ref := models.Ref(fmt.Sprint(book.ID))

	delivered := &models.Order{UserID: "user-1"}
	require.NoError(t, orderRepo.Place(delivered, []models.OrderLine{{BookRef: ref, Quantity: 1}}))
	require.NoError(t, orderRepo.UpdateStatus(delivered.ID, models.OrderStatusDelivered))

	cancelled := &models.Order{UserID: "user-1"}
	require.NoError(t, orderRepo.Place(cancelled, []models.OrderLine{{BookRef: ref, Quantity: 5}}))
	require.NoError(t, orderRepo.UpdateStatus(cancelled.ID, models.OrderStatusCancelled))

	orders, err := orderRepo.FindInRange(nil, nil, models.RevenueStatuses)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, delivered.ID, orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "A", orders[0].Items[0].Book.Name)

	err = orderRepo.UpdateStatus(9999, models.OrderStatusShipped)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
