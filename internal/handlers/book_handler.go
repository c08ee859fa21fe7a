package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"tokobuku/internal/models"
	"tokobuku/internal/repositories"
	"tokobuku/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for the book catalog.
type BookHandler struct {
	service  *services.BookService
	validate *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service *services.BookService) *BookHandler {
	return &BookHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the book routes with the Fiber app.
func (h *BookHandler) RegisterRoutes(router fiber.Router) {
	bookRoutes := router.Group("/books")
	bookRoutes.Get("/", h.HandleGetBooks)
	bookRoutes.Get("/:id", h.HandleGetBookByRef)
	bookRoutes.Post("/", h.HandleCreateBook)
	bookRoutes.Put("/:id", h.HandleUpdateBook)
	bookRoutes.Delete("/:id", h.HandleDeleteBook)
}

// HandleGetBooks retrieves all books, optionally filtered by category/author.
func (h *BookHandler) HandleGetBooks(c *fiber.Ctx) error {
	filter := repositories.BookFilter{
		CategoryID: uint(c.QueryInt("categoryId")),
		AuthorID:   uint(c.QueryInt("authorId")),
	}
	books, err := h.service.GetAllBooks(filter)
	if err != nil {
		log.Printf("Error getting all books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve books",
			"error":   err.Error(),
		})
	}
	return c.JSON(books)
}

// HandleGetBookByRef retrieves a book by numeric id or document id.
func (h *BookHandler) HandleGetBookByRef(c *fiber.Ctx) error {
	ref := models.Ref(c.Params("id"))
	book, err := h.service.GetBookByRef(ref)
	if err != nil {
		var notFoundErr *models.BookNotFoundError
		if errors.As(err, &notFoundErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Book %s not found", ref),
			})
		}
		log.Printf("Error getting book %s: %v", ref, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve book",
			"error":   err.Error(),
		})
	}
	return c.JSON(book)
}

// HandleCreateBook creates a new book.
func (h *BookHandler) HandleCreateBook(c *fiber.Ctx) error {
	var book models.Book
	if err := c.BodyParser(&book); err != nil {
		log.Printf("Error parsing book request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(book); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.CreateBook(&book); err != nil {
		log.Printf("Error creating book: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create book",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// HandleUpdateBook updates an existing book.
func (h *BookHandler) HandleUpdateBook(c *fiber.Ctx) error {
	ref := models.Ref(c.Params("id"))
	existing, err := h.service.GetBookByRef(ref)
	if err != nil {
		var notFoundErr *models.BookNotFoundError
		if errors.As(err, &notFoundErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Book %s not found", ref),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve book",
			"error":   err.Error(),
		})
	}

	var book models.Book
	if err := c.BodyParser(&book); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	book.ID = existing.ID
	book.DocumentID = existing.DocumentID

	if err := h.validate.Struct(book); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.UpdateBook(&book); err != nil {
		log.Printf("Error updating book %s: %v", ref, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update book",
			"error":   err.Error(),
		})
	}
	return c.JSON(book)
}

// HandleDeleteBook deletes a book by reference.
func (h *BookHandler) HandleDeleteBook(c *fiber.Ctx) error {
	ref := models.Ref(c.Params("id"))
	if err := h.service.DeleteBook(ref); err != nil {
		var notFoundErr *models.BookNotFoundError
		if errors.As(err, &notFoundErr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Book %s not found", ref),
			})
		}
		log.Printf("Error deleting book %s: %v", ref, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete book",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Book %s deleted successfully", ref),
	})
}

// respondValidationErrors renders validator.v10 errors in the shared
// field-indexed shape.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", name)
	}
	return uint(n), nil
}
