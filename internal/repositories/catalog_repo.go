package repositories

import "tokobuku/internal/models"

// AuthorRepository defines the interface for author data access.
type AuthorRepository interface {
	GetAll() ([]models.Author, error)
	GetByID(id uint) (*models.Author, error)
	Create(author *models.Author) error
	Update(author *models.Author) error
	Delete(id uint) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
}
