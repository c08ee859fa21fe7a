package handlers

import (
	"log"
	"strings"

	"tokobuku/internal/models"
	"tokobuku/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for authors and categories.
type CatalogHandler struct {
	authors    *services.AuthorService
	categories *services.CategoryService
	validate   *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(authors *services.AuthorService, categories *services.CategoryService) *CatalogHandler {
	return &CatalogHandler{
		authors:    authors,
		categories: categories,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers author and category routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	authorRoutes := router.Group("/authors")
	authorRoutes.Get("/", h.HandleGetAuthors)
	authorRoutes.Get("/:id", h.HandleGetAuthorByID)
	authorRoutes.Post("/", h.HandleCreateAuthor)
	authorRoutes.Put("/:id", h.HandleUpdateAuthor)
	authorRoutes.Delete("/:id", h.HandleDeleteAuthor)

	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleGetAuthors retrieves all authors.
func (h *CatalogHandler) HandleGetAuthors(c *fiber.Ctx) error {
	authors, err := h.authors.GetAllAuthors()
	if err != nil {
		log.Printf("Error getting authors: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve authors",
			"error":   err.Error(),
		})
	}
	return c.JSON(authors)
}

// HandleGetAuthorByID retrieves a single author.
func (h *CatalogHandler) HandleGetAuthorByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	author, err := h.authors.GetAuthorByID(id)
	if err != nil {
		return respondCatalogError(c, err, "Could not retrieve author")
	}
	return c.JSON(author)
}

// HandleCreateAuthor creates a new author.
func (h *CatalogHandler) HandleCreateAuthor(c *fiber.Ctx) error {
	var author models.Author
	if err := c.BodyParser(&author); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(author); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.authors.CreateAuthor(&author); err != nil {
		log.Printf("Error creating author: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create author",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(author)
}

// HandleUpdateAuthor updates an existing author.
func (h *CatalogHandler) HandleUpdateAuthor(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	var author models.Author
	if err := c.BodyParser(&author); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	author.ID = id
	if err := h.validate.Struct(author); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.authors.UpdateAuthor(&author); err != nil {
		return respondCatalogError(c, err, "Could not update author")
	}
	return c.JSON(author)
}

// HandleDeleteAuthor deletes an author.
func (h *CatalogHandler) HandleDeleteAuthor(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.authors.DeleteAuthor(id); err != nil {
		return respondCatalogError(c, err, "Could not delete author")
	}
	return c.JSON(fiber.Map{"message": "Author deleted successfully"})
}

// HandleGetCategories retrieves all categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.categories.GetAllCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category.
func (h *CatalogHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	category, err := h.categories.GetCategoryByID(id)
	if err != nil {
		return respondCatalogError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.categories.CreateCategory(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates an existing category.
func (h *CatalogHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	category.ID = id
	if err := h.validate.Struct(category); err != nil {
		return respondValidationErrors(c, err)
	}
	if err := h.categories.UpdateCategory(&category); err != nil {
		return respondCatalogError(c, err, "Could not update category")
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.categories.DeleteCategory(id); err != nil {
		return respondCatalogError(c, err, "Could not delete category")
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// respondCatalogError maps repository errors for authors/categories, which
// use "not found" error strings rather than typed errors.
func respondCatalogError(c *fiber.Ctx, err error, fallback string) error {
	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	log.Printf("%s: %v", fallback, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}
