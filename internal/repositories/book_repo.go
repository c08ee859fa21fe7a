package repositories

import (
	"tokobuku/internal/models"
)

// BookFilter narrows catalog queries for listings and reports.
// Zero values mean "no restriction".
type BookFilter struct {
	CategoryID uint
	AuthorID   uint
}

// BookRepository defines the interface for book data access.
type BookRepository interface {
	GetAll(filter BookFilter) ([]models.Book, error)
	GetByRef(ref models.Ref) (*models.Book, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(ref models.Ref) error
}
