package handlers

import (
	"bytes"
	"encoding/csv"
	"log"
	"strconv"
	"time"

	"tokobuku/internal/models"
	"tokobuku/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for revenue and inventory reports.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/revenue", h.HandleRevenue)
	reportRoutes.Get("/revenue/trends", h.HandleRevenueTrends)
	reportRoutes.Get("/revenue/top-books", h.HandleTopBooks)
	reportRoutes.Get("/inventory", h.HandleInventory)
	reportRoutes.Get("/inventory/low-stock", h.HandleLowStock)
	reportRoutes.Get("/inventory/movement", h.HandleMovement)
	reportRoutes.Get("/dashboard", h.HandleDashboard)
}

// parseReportFilter reads the shared report query parameters. Dates use
// YYYY-MM-DD; endDate is inclusive; date selects a single day. Invalid
// dates are rejected here, before any query runs.
func parseReportFilter(c *fiber.Ctx) (services.ReportFilter, error) {
	filter := services.ReportFilter{
		CategoryID: uint(c.QueryInt("categoryId")),
		AuthorID:   uint(c.QueryInt("authorId")),
	}

	if day := c.Query("date"); day != "" {
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			return filter, &models.ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD date"}
		}
		end := t.AddDate(0, 0, 1)
		filter.Start, filter.End = &t, &end
		return filter, nil
	}

	if start := c.Query("startDate"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return filter, &models.ValidationError{Field: "startDate", Reason: "must be a YYYY-MM-DD date"}
		}
		filter.Start = &t
	}
	if end := c.Query("endDate"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return filter, &models.ValidationError{Field: "endDate", Reason: "must be a YYYY-MM-DD date"}
		}
		exclusive := t.AddDate(0, 0, 1)
		filter.End = &exclusive
	}
	return filter, nil
}

// HandleRevenue computes the revenue report, optionally grouped into a time
// series and optionally rendered as CSV.
func (h *ReportHandler) HandleRevenue(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return respondDomainError(c, err, "Could not compute revenue report")
	}

	report, err := h.service.Revenue(filter, services.GroupBy(c.Query("groupBy")))
	if err != nil {
		log.Printf("Error computing revenue report: %v", err)
		return respondDomainError(c, err, "Could not compute revenue report")
	}

	if c.Query("format") == "csv" {
		return sendCSV(c, "revenue.csv", revenueCSV(report))
	}
	return c.JSON(report)
}

// HandleRevenueTrends returns only the revenue time series, defaulting to
// daily buckets.
func (h *ReportHandler) HandleRevenueTrends(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return respondDomainError(c, err, "Could not compute revenue trends")
	}

	groupBy := services.GroupBy(c.Query("groupBy", string(services.GroupByDay)))
	report, err := h.service.Revenue(filter, groupBy)
	if err != nil {
		log.Printf("Error computing revenue trends: %v", err)
		return respondDomainError(c, err, "Could not compute revenue trends")
	}
	return c.JSON(fiber.Map{
		"group_by":    groupBy,
		"grand_total": report.GrandTotal,
		"time_series": report.TimeSeries,
	})
}

// HandleTopBooks returns the best-selling books by revenue.
func (h *ReportHandler) HandleTopBooks(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return respondDomainError(c, err, "Could not compute top books")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	topBooks, err := h.service.TopBooks(filter, limit)
	if err != nil {
		log.Printf("Error computing top books: %v", err)
		return respondDomainError(c, err, "Could not compute top books")
	}
	return c.JSON(fiber.Map{
		"top_books": topBooks,
	})
}

// HandleInventory computes the inventory report.
func (h *ReportHandler) HandleInventory(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return respondDomainError(c, err, "Could not compute inventory report")
	}

	report, err := h.service.Inventory(filter)
	if err != nil {
		log.Printf("Error computing inventory report: %v", err)
		return respondDomainError(c, err, "Could not compute inventory report")
	}

	if c.Query("format") == "csv" {
		return sendCSV(c, "inventory.csv", inventoryCSV(report.Books))
	}
	return c.JSON(report)
}

// HandleLowStock returns only the books below the low-stock threshold.
func (h *ReportHandler) HandleLowStock(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return respondDomainError(c, err, "Could not compute low stock report")
	}

	report, err := h.service.Inventory(filter)
	if err != nil {
		log.Printf("Error computing low stock report: %v", err)
		return respondDomainError(c, err, "Could not compute low stock report")
	}
	return c.JSON(fiber.Map{
		"low_stock_books": report.LowStockBooks,
		"count":           len(report.LowStockBooks),
	})
}

// HandleMovement returns per-book sales movement over the range.
func (h *ReportHandler) HandleMovement(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return respondDomainError(c, err, "Could not compute inventory movement")
	}

	moved, err := h.service.Movement(filter)
	if err != nil {
		log.Printf("Error computing inventory movement: %v", err)
		return respondDomainError(c, err, "Could not compute inventory movement")
	}
	return c.JSON(fiber.Map{
		"movement": moved,
	})
}

// HandleDashboard combines the revenue and inventory summaries into one
// payload for the storefront dashboard.
func (h *ReportHandler) HandleDashboard(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return respondDomainError(c, err, "Could not compute dashboard")
	}

	revenue, err := h.service.Revenue(filter, "")
	if err != nil {
		log.Printf("Error computing dashboard revenue: %v", err)
		return respondDomainError(c, err, "Could not compute dashboard")
	}
	inventory, err := h.service.Inventory(filter)
	if err != nil {
		log.Printf("Error computing dashboard inventory: %v", err)
		return respondDomainError(c, err, "Could not compute dashboard")
	}
	topBooks := revenue.BookSales
	if len(topBooks) > 5 {
		topBooks = topBooks[:5]
	}

	return c.JSON(fiber.Map{
		"revenue":         revenue.Summary,
		"inventory":       inventory.Summary,
		"top_books":       topBooks,
		"low_stock_books": inventory.LowStockBooks,
	})
}

// revenueCSV renders the per-book revenue rows.
func revenueCSV(report *services.RevenueReport) [][]string {
	rows := [][]string{{"book_id", "book_name", "quantity_sold", "total_revenue"}}
	for _, b := range report.BookSales {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(b.BookID), 10),
			b.BookName,
			strconv.Itoa(b.QuantitySold),
			strconv.FormatInt(b.TotalRevenue, 10),
		})
	}
	return rows
}

// inventoryCSV renders the inventory rows.
func inventoryCSV(books []services.InventoryRow) [][]string {
	rows := [][]string{{"book_id", "book_name", "current_stock", "quantity_sold", "revenue"}}
	for _, b := range books {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(b.BookID), 10),
			b.BookName,
			strconv.Itoa(b.CurrentStock),
			strconv.Itoa(b.QuantitySold),
			strconv.FormatInt(b.Revenue, 10),
		})
	}
	return rows
}

// sendCSV writes the rows as a CSV attachment.
func sendCSV(c *fiber.Ctx, filename string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not render CSV",
			"error":   err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
