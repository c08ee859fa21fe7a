package handlers

import (
	"errors"

	"tokobuku/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondDomainError maps domain errors from the services to an HTTP status
// and the structured {message, error, details} body. Unknown errors fall
// back to a 500 with the given message.
func respondDomainError(c *fiber.Ctx, err error, fallback string) error {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.BookNotFoundError
		stockErr      *models.InsufficientStockError
	)

	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrEmptyOrder):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order must contain at least one item",
			"error":   err.Error(),
		})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationErr.Error(),
			"details": fiber.Map{
				"index": validationErr.Index,
				"field": validationErr.Field,
			},
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Book not found",
			"error":   notFoundErr.Error(),
			"details": fiber.Map{
				"book_id": notFoundErr.Ref,
				"index":   notFoundErr.Index,
			},
		})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Insufficient stock",
			"error":   stockErr.Error(),
			"details": fiber.Map{
				"book_id":   stockErr.BookID,
				"book_name": stockErr.BookName,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
				"index":     stockErr.Index,
			},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}
