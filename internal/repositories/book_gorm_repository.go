package repositories

import (
	"errors"
	"fmt"
	"tokobuku/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// byRef scopes a book query to a client-supplied reference, matching either
// the numeric primary key or the external document id. Every book lookup in
// this package funnels through here.
func byRef(db *gorm.DB, ref models.Ref) *gorm.DB {
	if id, ok := ref.NumericID(); ok {
		return db.Where("id = ?", id)
	}
	return db.Where("document_id = ?", ref.String())
}

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// GetAll retrieves all books matching the filter from the database.
func (r *GORMBookRepository) GetAll(filter BookFilter) ([]models.Book, error) {
	var books []models.Book
	q := r.db
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if err := q.Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get books: %w", err)
	}
	return books, nil
}

// GetByRef retrieves a single book by numeric id or document id.
func (r *GORMBookRepository) GetByRef(ref models.Ref) (*models.Book, error) {
	var book models.Book
	if err := byRef(r.db, ref).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.BookNotFoundError{Ref: ref.String()}
		}
		return nil, fmt.Errorf("failed to get book %s: %w", ref, err)
	}
	return &book, nil
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if book.DocumentID == "" {
		book.DocumentID = uuid.New().String()
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update updates an existing book in the database.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Save(book) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows were
		// affected for an update, so we check RowsAffected.
		return &models.BookNotFoundError{Ref: fmt.Sprint(book.ID)}
	}
	return nil
}

// Delete deletes a book from the database.
func (r *GORMBookRepository) Delete(ref models.Ref) error {
	res := byRef(r.db, ref).Delete(&models.Book{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete book %s: %w", ref, res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.BookNotFoundError{Ref: ref.String()}
	}
	return nil
}
