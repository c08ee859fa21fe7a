package services_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"tokobuku/internal/models"
	"tokobuku/internal/repositories"
	"tokobuku/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// reportFixture wires a ReportService against an in-memory SQLite database.
type reportFixture struct {
	db        *gorm.DB
	bookRepo  *repositories.GORMBookRepository
	orderRepo *repositories.GORMOrderRepository
	service   *services.ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
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

	f := &reportFixture{
		db:        db,
		bookRepo:  repositories.NewGORMBookRepository(db),
		orderRepo: repositories.NewGORMOrderRepository(db),
	}
	f.service = services.NewReportService(f.orderRepo, f.bookRepo)
	return f
}

func (f *reportFixture) addBook(t *testing.T, name string, price int64, qty int, categoryID, authorID uint) *models.Book {
	t.Helper()
	book := &models.Book{Name: name, SalePrice: price, Quantity: qty, CategoryID: categoryID, AuthorID: authorID}
	require.NoError(t, f.bookRepo.Create(book))
	return book
}

// addOrder places an order, moves it to the given status and pins its
// creation time so time-series buckets are deterministic.
func (f *reportFixture) addOrder(t *testing.T, status models.OrderStatus, createdAt time.Time, lines ...models.OrderLine) *models.Order {
	t.Helper()
	order := &models.Order{UserID: "user-1"}
	require.NoError(t, f.orderRepo.Place(order, lines))
	if status != models.OrderStatusPending {
		require.NoError(t, f.orderRepo.UpdateStatus(order.ID, status))
	}
	require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("created_at", createdAt).Error)
	return order
}

func ref(id uint) models.Ref { return models.Ref(fmt.Sprint(id)) }

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 10, 0, 0, 0, time.UTC)
}

func TestRevenue_StatusFiltering(t *testing.T) {
	f := newReportFixture(t)
	book := f.addBook(t, "Laskar Pelangi", 100000, 100, 0, 0)

	f.addOrder(t, models.OrderStatusDelivered, day(2025, 3, 1), models.OrderLine{BookRef: ref(book.ID), Quantity: 1})
	f.addOrder(t, models.OrderStatusCancelled, day(2025, 3, 1), models.OrderLine{BookRef: ref(book.ID), Quantity: 5})
	f.addOrder(t, models.OrderStatusPending, day(2025, 3, 2), models.OrderLine{BookRef: ref(book.ID), Quantity: 2})

	report, err := f.service.Revenue(services.ReportFilter{}, "")
	require.NoError(t, err)

	// Only the delivered order counts: 1 * 100000.
	assert.Equal(t, int64(100000), report.GrandTotal)
	assert.Equal(t, 1, report.Summary.OrderCount)
	assert.Equal(t, 1, report.Summary.ItemsSold)
	require.Len(t, report.BookSales, 1)
	assert.Equal(t, 1, report.BookSales[0].QuantitySold)
}

func TestRevenue_TimeSeriesCompleteness(t *testing.T) {
	f := newReportFixture(t)
	book := f.addBook(t, "A", 50000, 100, 0, 0)

	f.addOrder(t, models.OrderStatusConfirmed, day(2025, 3, 1), models.OrderLine{BookRef: ref(book.ID), Quantity: 2})
	f.addOrder(t, models.OrderStatusShipped, day(2025, 3, 3), models.OrderLine{BookRef: ref(book.ID), Quantity: 1})

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)
	report, err := f.service.Revenue(services.ReportFilter{Start: &start, End: &end}, services.GroupByDay)
	require.NoError(t, err)

	// One point per calendar day in range, zero-filled where no orders.
	require.Len(t, report.TimeSeries, 5)
	assert.Equal(t, "2025-03-01", report.TimeSeries[0].Period)
	assert.Equal(t, int64(100000), report.TimeSeries[0].Revenue)
	assert.Equal(t, "2025-03-02", report.TimeSeries[1].Period)
	assert.Zero(t, report.TimeSeries[1].Revenue)
	assert.Zero(t, report.TimeSeries[1].OrderCount)
	assert.Zero(t, report.TimeSeries[1].AverageOrderValue)
	assert.Equal(t, int64(50000), report.TimeSeries[2].Revenue)

	var sum int64
	for _, p := range report.TimeSeries {
		sum += p.Revenue
	}
	assert.Equal(t, report.GrandTotal, sum)
}

func TestRevenue_MonthlySeries(t *testing.T) {
	f := newReportFixture(t)
	book := f.addBook(t, "A", 10000, 100, 0, 0)

	f.addOrder(t, models.OrderStatusDelivered, day(2025, 1, 15), models.OrderLine{BookRef: ref(book.ID), Quantity: 1})
	f.addOrder(t, models.OrderStatusDelivered, day(2025, 3, 2), models.OrderLine{BookRef: ref(book.ID), Quantity: 2})

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	report, err := f.service.Revenue(services.ReportFilter{Start: &start, End: &end}, services.GroupByMonth)
	require.NoError(t, err)

	require.Len(t, report.TimeSeries, 3)
	assert.Equal(t, "2025-01", report.TimeSeries[0].Period)
	assert.Equal(t, int64(10000), report.TimeSeries[0].Revenue)
	assert.Equal(t, "2025-02", report.TimeSeries[1].Period)
	assert.Zero(t, report.TimeSeries[1].Revenue)
	assert.Equal(t, "2025-03", report.TimeSeries[2].Period)
	assert.Equal(t, int64(20000), report.TimeSeries[2].Revenue)
}

func TestRevenue_BookSalesSorted(t *testing.T) {
	f := newReportFixture(t)
	cheap := f.addBook(t, "Cheap", 10000, 100, 0, 0)
	costly := f.addBook(t, "Costly", 90000, 100, 0, 0)

	f.addOrder(t, models.OrderStatusDelivered, day(2025, 3, 1),
		models.OrderLine{BookRef: ref(cheap.ID), Quantity: 1},
		models.OrderLine{BookRef: ref(costly.ID), Quantity: 1},
	)

	report, err := f.service.Revenue(services.ReportFilter{}, "")
	require.NoError(t, err)
	require.Len(t, report.BookSales, 2)
	assert.Equal(t, "Costly", report.BookSales[0].BookName)
	assert.Equal(t, "Cheap", report.BookSales[1].BookName)
}

func TestRevenue_CategoryFilter(t *testing.T) {
	f := newReportFixture(t)
	novel := f.addBook(t, "Novel", 50000, 100, 1, 0)
	tech := f.addBook(t, "Tech", 80000, 100, 2, 0)

	// Mixed order: only the novel line counts under the category filter.
	f.addOrder(t, models.OrderStatusDelivered, day(2025, 3, 1),
		models.OrderLine{BookRef: ref(novel.ID), Quantity: 2},
		models.OrderLine{BookRef: ref(tech.ID), Quantity: 1},
	)
	// Order with no matching line is excluded entirely.
	f.addOrder(t, models.OrderStatusDelivered, day(2025, 3, 2),
		models.OrderLine{BookRef: ref(tech.ID), Quantity: 3},
	)

	report, err := f.service.Revenue(services.ReportFilter{CategoryID: 1}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), report.GrandTotal)
	assert.Equal(t, 1, report.Summary.OrderCount)
	require.Len(t, report.BookSales, 1)
	assert.Equal(t, "Novel", report.BookSales[0].BookName)
}

func TestRevenue_InvalidGroupBy(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.service.Revenue(services.ReportFilter{}, "hourly")
	var validationErr *models.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "groupBy", validationErr.Field)
}

func TestInventory_Report(t *testing.T) {
	f := newReportFixture(t)
	sold := f.addBook(t, "Seller", 50000, 20, 0, 0)
	f.addBook(t, "Shelf warmer", 30000, 50, 0, 0)
	low := f.addBook(t, "Nearly gone", 20000, 3, 0, 0)

	f.addOrder(t, models.OrderStatusDelivered, day(2025, 3, 1),
		models.OrderLine{BookRef: ref(sold.ID), Quantity: 4},
		models.OrderLine{BookRef: ref(low.ID), Quantity: 1},
	)

	report, err := f.service.Inventory(services.ReportFilter{})
	require.NoError(t, err)

	// Every book appears, including the one with zero sales.
	require.Len(t, report.Books, 3)
	assert.Equal(t, 16, report.Books[0].CurrentStock) // 20 - 4
	assert.Equal(t, 4, report.Books[0].QuantitySold)
	assert.Equal(t, int64(200000), report.Books[0].Revenue)
	assert.Zero(t, report.Books[1].QuantitySold)

	require.Len(t, report.LowStockBooks, 1)
	assert.Equal(t, low.ID, report.LowStockBooks[0].BookID)
	assert.Equal(t, 2, report.LowStockBooks[0].CurrentStock)

	assert.Equal(t, 3, report.Summary.TotalBooks)
	assert.Equal(t, 16+50+2, report.Summary.TotalStock)
	assert.Equal(t, 5, report.Summary.TotalSold)
	assert.Equal(t, 1, report.Summary.LowStockCount)

	// Pure read: a second call with the same filter is identical.
	again, err := f.service.Inventory(services.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestTopBooksAndMovement(t *testing.T) {
	f := newReportFixture(t)
	a := f.addBook(t, "A", 10000, 100, 0, 0)
	b := f.addBook(t, "B", 20000, 100, 0, 0)
	c := f.addBook(t, "C", 30000, 100, 0, 0)

	f.addOrder(t, models.OrderStatusDelivered, day(2025, 3, 1),
		models.OrderLine{BookRef: ref(a.ID), Quantity: 5}, // 50000
		models.OrderLine{BookRef: ref(b.ID), Quantity: 1}, // 20000
		models.OrderLine{BookRef: ref(c.ID), Quantity: 3}, // 90000
	)

	top, err := f.service.TopBooks(services.ReportFilter{}, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "C", top[0].BookName)
	assert.Equal(t, "A", top[1].BookName)

	moved, err := f.service.Movement(services.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, moved, 3)
	assert.Equal(t, "A", moved[0].BookName) // most copies sold
	assert.Equal(t, 5, moved[0].QuantitySold)
}
