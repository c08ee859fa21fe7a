package services

import (
	"sort"
	"time"

	"tokobuku/internal/models"
	"tokobuku/internal/repositories"
)

// lowStockThreshold is the stock level below which a book is flagged.
const lowStockThreshold = 10

// ReportFilter narrows report queries. Nil time bounds are open;
// zero CategoryID/AuthorID means no book restriction.
type ReportFilter struct {
	Start      *time.Time
	End        *time.Time
	CategoryID uint
	AuthorID   uint
}

// GroupBy is a time-series bucketing granularity.
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)

// BookSales is the per-book aggregation row of a revenue report.
type BookSales struct {
	BookID       uint   `json:"book_id"`
	BookName     string `json:"book_name"`
	QuantitySold int    `json:"quantity_sold"`
	TotalRevenue int64  `json:"total_revenue"`
}

// RevenueSummary totals a revenue report.
type RevenueSummary struct {
	OrderCount        int   `json:"order_count"`
	ItemsSold         int   `json:"items_sold"`
	GrandTotal        int64 `json:"grand_total"`
	AverageOrderValue int64 `json:"average_order_value"`
}

// TimeSeriesPoint is one bucket of a revenue time series. Every period in
// the requested range appears, including periods with zero orders.
type TimeSeriesPoint struct {
	Period            string `json:"period"`
	Revenue           int64  `json:"revenue"`
	OrderCount        int    `json:"order_count"`
	ItemCount         int    `json:"item_count"`
	AverageOrderValue int64  `json:"average_order_value"`
}

// RevenueReport is the output of the revenue aggregation.
type RevenueReport struct {
	Summary    RevenueSummary    `json:"summary"`
	BookSales  []BookSales       `json:"book_sales"`
	GrandTotal int64             `json:"grand_total"`
	TimeSeries []TimeSeriesPoint `json:"time_series,omitempty"`
}

// InventoryRow is one book of an inventory report, annotated with its
// cumulative sales over the filtered period.
type InventoryRow struct {
	BookID       uint   `json:"book_id"`
	BookName     string `json:"book_name"`
	CurrentStock int    `json:"current_stock"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      int64  `json:"revenue"`
}

// InventorySummary totals an inventory report.
type InventorySummary struct {
	TotalBooks    int   `json:"total_books"`
	TotalStock    int   `json:"total_stock"`
	TotalSold     int   `json:"total_sold"`
	TotalRevenue  int64 `json:"total_revenue"`
	LowStockCount int   `json:"low_stock_count"`
}

// InventoryReport is the output of the inventory aggregation.
type InventoryReport struct {
	Summary       InventorySummary `json:"summary"`
	Books         []InventoryRow   `json:"books"`
	LowStockBooks []InventoryRow   `json:"low_stock_books"`
}

// ReportService recomputes revenue and inventory statistics from order
// history on every request. All methods are pure reads and may be retried.
type ReportService struct {
	orderRepo repositories.OrderRepository
	bookRepo  repositories.BookRepository
}

// NewReportService creates a new ReportService.
func NewReportService(orderRepo repositories.OrderRepository, bookRepo repositories.BookRepository) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
	}
}

// ValidGroupBy reports whether g is a supported bucketing granularity.
func ValidGroupBy(g GroupBy) bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByYear:
		return true
	}
	return false
}

// bookIDSet resolves the category/author restriction into a set of book ids.
// A nil set means "no restriction".
func (s *ReportService) bookIDSet(filter ReportFilter) (map[uint]bool, error) {
	if filter.CategoryID == 0 && filter.AuthorID == 0 {
		return nil, nil
	}
	books, err := s.bookRepo.GetAll(repositories.BookFilter{
		CategoryID: filter.CategoryID,
		AuthorID:   filter.AuthorID,
	})
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(books))
	for _, b := range books {
		set[b.ID] = true
	}
	return set, nil
}

// Revenue aggregates revenue from confirmed, shipped and delivered orders in
// the filter's range. Pending and cancelled orders never contribute. When
// groupBy is non-empty the result carries a complete time series spanning
// the range, with zero-filled periods.
func (s *ReportService) Revenue(filter ReportFilter, groupBy GroupBy) (*RevenueReport, error) {
	if groupBy != "" && !ValidGroupBy(groupBy) {
		return nil, &models.ValidationError{Field: "groupBy", Reason: "must be one of day, week, month, year"}
	}

	bookSet, err := s.bookIDSet(filter)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindInRange(filter.Start, filter.End, models.RevenueStatuses)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{BookSales: []BookSales{}}
	perBook := make(map[uint]int) // book id -> index into report.BookSales

	buckets := make(map[string]*revenueBucket)

	for _, order := range orders {
		var orderRevenue int64
		var orderItems int
		for _, item := range order.Items {
			if bookSet != nil && !bookSet[item.BookID] {
				continue
			}
			idx, ok := perBook[item.BookID]
			if !ok {
				idx = len(report.BookSales)
				perBook[item.BookID] = idx
				report.BookSales = append(report.BookSales, BookSales{
					BookID:   item.BookID,
					BookName: item.Book.Name,
				})
			}
			report.BookSales[idx].QuantitySold += item.Quantity
			report.BookSales[idx].TotalRevenue += item.TotalPrice
			orderRevenue += item.TotalPrice
			orderItems += item.Quantity
		}
		if orderItems == 0 {
			// No line of this order matched the book restriction.
			continue
		}

		report.Summary.OrderCount++
		report.Summary.ItemsSold += orderItems
		report.GrandTotal += orderRevenue

		if groupBy != "" {
			key := periodKey(order.CreatedAt, groupBy)
			b, ok := buckets[key]
			if !ok {
				b = &revenueBucket{}
				buckets[key] = b
			}
			b.revenue += orderRevenue
			b.orders++
			b.items += orderItems
		}
	}

	report.Summary.GrandTotal = report.GrandTotal
	if report.Summary.OrderCount > 0 {
		report.Summary.AverageOrderValue = report.GrandTotal / int64(report.Summary.OrderCount)
	}

	// Highest revenue first; ties keep first-seen order.
	sort.SliceStable(report.BookSales, func(i, j int) bool {
		return report.BookSales[i].TotalRevenue > report.BookSales[j].TotalRevenue
	})

	if groupBy != "" {
		report.TimeSeries = buildTimeSeries(filter, orders, groupBy, buckets)
	}
	return report, nil
}

// revenueBucket accumulates one time-series period.
type revenueBucket struct {
	revenue int64
	orders  int
	items   int
}

// buildTimeSeries materializes one point per period across the range, so
// periods without orders appear with zero values. With no explicit range the
// span is derived from the earliest and latest matching orders.
func buildTimeSeries(filter ReportFilter, orders []models.Order, groupBy GroupBy, buckets map[string]*revenueBucket) []TimeSeriesPoint {
	start, end := filter.Start, filter.End
	if start == nil || end == nil {
		if len(orders) == 0 {
			return []TimeSeriesPoint{}
		}
		if start == nil {
			t := orders[0].CreatedAt
			start = &t
		}
		if end == nil {
			t := orders[len(orders)-1].CreatedAt.Add(time.Second)
			end = &t
		}
	}

	series := []TimeSeriesPoint{}
	for cur := periodStart(*start, groupBy); cur.Before(*end); cur = nextPeriod(cur, groupBy) {
		point := TimeSeriesPoint{Period: periodKey(cur, groupBy)}
		if b, ok := buckets[point.Period]; ok {
			point.Revenue = b.revenue
			point.OrderCount = b.orders
			point.ItemCount = b.items
			if b.orders > 0 {
				point.AverageOrderValue = b.revenue / int64(b.orders)
			}
		}
		series = append(series, point)
	}
	return series
}

// Inventory aggregates current stock with cumulative sales over the
// filter's range. All matching books appear, including unsold ones.
func (s *ReportService) Inventory(filter ReportFilter) (*InventoryReport, error) {
	books, err := s.bookRepo.GetAll(repositories.BookFilter{
		CategoryID: filter.CategoryID,
		AuthorID:   filter.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindInRange(filter.Start, filter.End, models.RevenueStatuses)
	if err != nil {
		return nil, err
	}

	type sales struct {
		sold    int
		revenue int64
	}
	perBook := make(map[uint]*sales)
	for _, order := range orders {
		for _, item := range order.Items {
			st, ok := perBook[item.BookID]
			if !ok {
				st = &sales{}
				perBook[item.BookID] = st
			}
			st.sold += item.Quantity
			st.revenue += item.TotalPrice
		}
	}

	report := &InventoryReport{
		Books:         make([]InventoryRow, 0, len(books)),
		LowStockBooks: []InventoryRow{},
	}
	for _, b := range books {
		row := InventoryRow{
			BookID:       b.ID,
			BookName:     b.Name,
			CurrentStock: b.Quantity,
		}
		if st, ok := perBook[b.ID]; ok {
			row.QuantitySold = st.sold
			row.Revenue = st.revenue
		}
		report.Books = append(report.Books, row)
		report.Summary.TotalBooks++
		report.Summary.TotalStock += row.CurrentStock
		report.Summary.TotalSold += row.QuantitySold
		report.Summary.TotalRevenue += row.Revenue
		if row.CurrentStock < lowStockThreshold {
			report.LowStockBooks = append(report.LowStockBooks, row)
			report.Summary.LowStockCount++
		}
	}
	return report, nil
}

// Movement returns the books that actually sold in the range, busiest first.
func (s *ReportService) Movement(filter ReportFilter) ([]InventoryRow, error) {
	report, err := s.Inventory(filter)
	if err != nil {
		return nil, err
	}
	moved := make([]InventoryRow, 0, len(report.Books))
	for _, row := range report.Books {
		if row.QuantitySold > 0 {
			moved = append(moved, row)
		}
	}
	sort.SliceStable(moved, func(i, j int) bool {
		return moved[i].QuantitySold > moved[j].QuantitySold
	})
	return moved, nil
}

// TopBooks returns the limit best-selling books by revenue.
func (s *ReportService) TopBooks(filter ReportFilter, limit int) ([]BookSales, error) {
	report, err := s.Revenue(filter, "")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if len(report.BookSales) > limit {
		report.BookSales = report.BookSales[:limit]
	}
	return report.BookSales, nil
}

// periodStart truncates t to the start of its period. Weeks start on Monday.
func periodStart(t time.Time, groupBy GroupBy) time.Time {
	t = t.Truncate(0) // drop monotonic clock reading
	switch groupBy {
	case GroupByWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case GroupByMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GroupByYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	default: // day
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// nextPeriod advances t by one period.
func nextPeriod(t time.Time, groupBy GroupBy) time.Time {
	switch groupBy {
	case GroupByWeek:
		return t.AddDate(0, 0, 7)
	case GroupByMonth:
		return t.AddDate(0, 1, 0)
	case GroupByYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// periodKey labels the period containing t.
func periodKey(t time.Time, groupBy GroupBy) string {
	start := periodStart(t, groupBy)
	switch groupBy {
	case GroupByMonth:
		return start.Format("2006-01")
	case GroupByYear:
		return start.Format("2006")
	default: // day and week label with the period's first day
		return start.Format("2006-01-02")
	}
}
