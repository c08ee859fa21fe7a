package repositories_test

import (
	"errors"
	"sync"
	"testing"

	"tokobuku/internal/models"
	"tokobuku/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockPlace_ConcurrentOrders(t *testing.T) {
	bookRepo := repositories.NewMockBookRepository()
	orderRepo := repositories.NewMockOrderRepository(bookRepo)

	book := &models.Book{Name: "Limited", SalePrice: 10000, Quantity: 10}
	require.NoError(t, bookRepo.Create(book))

	// Two concurrent orders for 6 of 10 copies: exactly one must succeed
	// and the final stock must be 4, never negative or double-deducted.
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := &models.Order{UserID: "user-1"}
			results[i] = orderRepo.Place(order, []models.OrderLine{
				{BookRef: "1", Quantity: 6},
			})
		}(i)
	}
	wg.Wait()

	var successes, stockFailures int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *models.InsufficientStockError
		if errors.As(err, &stockErr) {
			stockFailures++
			assert.Equal(t, 6, stockErr.Requested)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, stockFailures)

	after, err := bookRepo.GetByRef("1")
	require.NoError(t, err)
	assert.Equal(t, 4, after.Quantity)

	orders, err := orderRepo.GetAll()
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestMockPlace_AtomicAcrossLines(t *testing.T) {
	bookRepo := repositories.NewMockBookRepository()
	orderRepo := repositories.NewMockOrderRepository(bookRepo)

	require.NoError(t, bookRepo.Create(&models.Book{Name: "A", SalePrice: 10000, Quantity: 5}))
	require.NoError(t, bookRepo.Create(&models.Book{Name: "B", SalePrice: 20000, Quantity: 0}))

	order := &models.Order{UserID: "user-1"}
	err := orderRepo.Place(order, []models.OrderLine{
		{BookRef: "1", Quantity: 2},
		{BookRef: "2", Quantity: 1},
	})

	var stockErr *models.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "B", stockErr.BookName)
	assert.Equal(t, 2, stockErr.Index)

	a, err := bookRepo.GetByRef("1")
	require.NoError(t, err)
	assert.Equal(t, 5, a.Quantity)

	orders, err := orderRepo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, orders)
}
