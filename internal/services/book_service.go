package services

import (
	"tokobuku/internal/models"
	"tokobuku/internal/repositories"
)

// BookService handles business logic related to the catalog.
type BookService struct {
	repo repositories.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(repo repositories.BookRepository) *BookService {
	return &BookService{
		repo: repo,
	}
}

// GetAllBooks retrieves all books matching the filter.
func (s *BookService) GetAllBooks(filter repositories.BookFilter) ([]models.Book, error) {
	return s.repo.GetAll(filter)
}

// GetBookByRef retrieves a single book by numeric id or document id.
func (s *BookService) GetBookByRef(ref models.Ref) (*models.Book, error) {
	return s.repo.GetByRef(ref)
}

// CreateBook creates a new book.
func (s *BookService) CreateBook(book *models.Book) error {
	return s.repo.Create(book)
}

// UpdateBook updates an existing book.
func (s *BookService) UpdateBook(book *models.Book) error {
	return s.repo.Update(book)
}

// DeleteBook deletes a book by reference.
func (s *BookService) DeleteBook(ref models.Ref) error {
	return s.repo.Delete(ref)
}
