package repositories

import (
	"errors"
	"fmt"

	"tokobuku/internal/models"

	"gorm.io/gorm"
)

// GORMAuthorRepository is a GORM implementation of AuthorRepository.
type GORMAuthorRepository struct {
	db *gorm.DB
}

// NewGORMAuthorRepository creates a new instance of GORMAuthorRepository.
func NewGORMAuthorRepository(db *gorm.DB) *GORMAuthorRepository {
	return &GORMAuthorRepository{db: db}
}

// GetAll retrieves all authors.
func (r *GORMAuthorRepository) GetAll() ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.Order("id").Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to get authors: %w", err)
	}
	return authors, nil
}

// GetByID retrieves a single author by its ID.
func (r *GORMAuthorRepository) GetByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("author with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get author by ID %d: %w", id, err)
	}
	return &author, nil
}

// Create creates a new author.
func (r *GORMAuthorRepository) Create(author *models.Author) error {
	if err := r.db.Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

// Update updates an existing author.
func (r *GORMAuthorRepository) Update(author *models.Author) error {
	res := r.db.Save(author)
	if res.Error != nil {
		return fmt.Errorf("failed to update author: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("author with ID %d not found for update", author.ID)
	}
	return nil
}

// Delete deletes an author by its ID.
func (r *GORMAuthorRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Author{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete author: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("author with ID %d not found for deletion", id)
	}
	return nil
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll retrieves all categories.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

// Create creates a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update updates an existing category.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for update", category.ID)
	}
	return nil
}

// Delete deletes a category by its ID.
func (r *GORMCategoryRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for deletion", id)
	}
	return nil
}
