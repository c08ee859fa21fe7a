package repositories

import (
	"strconv"
	"sync"
	"tokobuku/internal/models"

	"github.com/google/uuid"
)

// MockBookRepository is an in-memory implementation of BookRepository.
type MockBookRepository struct {
	books  map[uint]models.Book
	nextID uint
	mu     sync.RWMutex
}

// NewMockBookRepository creates a new instance of MockBookRepository.
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{
		books:  make(map[uint]models.Book),
		nextID: 1,
	}
}

// GetAll returns all books matching the filter.
func (r *MockBookRepository) GetAll(filter BookFilter) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookList := make([]models.Book, 0, len(r.books))
	for id := uint(1); id < r.nextID; id++ {
		b, ok := r.books[id]
		if !ok {
			continue
		}
		if filter.CategoryID != 0 && b.CategoryID != filter.CategoryID {
			continue
		}
		if filter.AuthorID != 0 && b.AuthorID != filter.AuthorID {
			continue
		}
		bookList = append(bookList, b)
	}
	return bookList, nil
}

// GetByRef returns a book by numeric id or document id.
func (r *MockBookRepository) GetByRef(ref models.Ref) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.lookup(ref)
	if !ok {
		return nil, &models.BookNotFoundError{Ref: ref.String()}
	}
	return &book, nil
}

// Create adds a new book.
func (r *MockBookRepository) Create(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == 0 {
		book.ID = r.nextID
	}
	if book.ID >= r.nextID {
		r.nextID = book.ID + 1
	}
	if book.DocumentID == "" {
		book.DocumentID = uuid.New().String()
	}
	r.books[book.ID] = *book
	return nil
}

// Update modifies an existing book.
func (r *MockBookRepository) Update(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ID]; !ok {
		return &models.BookNotFoundError{Ref: uintString(book.ID)}
	}
	r.books[book.ID] = *book
	return nil
}

// Delete removes a book.
func (r *MockBookRepository) Delete(ref models.Ref) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.lookup(ref)
	if !ok {
		return &models.BookNotFoundError{Ref: ref.String()}
	}
	delete(r.books, book.ID)
	return nil
}

// Reserve validates and deducts stock for all lines under one lock, giving
// the mock the same all-or-nothing guarantee the GORM repository gets from a
// database transaction. On success it returns the priced order items and the
// order total; on failure nothing is deducted.
func (r *MockBookRepository) Reserve(lines []models.OrderLine) ([]models.OrderItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved := make([]models.Book, len(lines))
	needed := make(map[uint]int, len(lines)) // cumulative, in case a book repeats
	for i, line := range lines {
		book, ok := r.lookup(line.BookRef)
		if !ok {
			return nil, 0, &models.BookNotFoundError{Ref: line.BookRef.String(), Index: i + 1}
		}
		needed[book.ID] += line.Quantity
		if book.Quantity < needed[book.ID] {
			return nil, 0, &models.InsufficientStockError{
				BookID:    book.ID,
				BookName:  book.Name,
				Available: book.Quantity - (needed[book.ID] - line.Quantity),
				Requested: line.Quantity,
				Index:     i + 1,
			}
		}
		resolved[i] = book
	}

	var total int64
	items := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		book := resolved[i]
		book.Quantity -= needed[book.ID]
		r.books[book.ID] = book

		lineTotal := book.SalePrice * int64(line.Quantity)
		total += lineTotal
		items[i] = models.OrderItem{
			BookID:     book.ID,
			Book:       book,
			Quantity:   line.Quantity,
			UnitPrice:  book.SalePrice,
			TotalPrice: lineTotal,
		}
	}
	return items, total, nil
}

// lookup resolves a reference without locking; callers hold r.mu.
func (r *MockBookRepository) lookup(ref models.Ref) (models.Book, bool) {
	if id, ok := ref.NumericID(); ok {
		b, ok := r.books[id]
		return b, ok
	}
	for _, b := range r.books {
		if b.DocumentID == ref.String() {
			return b, true
		}
	}
	return models.Book{}, false
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
