package services

import (
	"tokobuku/internal/models"
	"tokobuku/internal/repositories"
)

// AuthorService handles business logic related to authors.
type AuthorService struct {
	repo repositories.AuthorRepository
}

// NewAuthorService creates a new AuthorService.
func NewAuthorService(repo repositories.AuthorRepository) *AuthorService {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) GetAllAuthors() ([]models.Author, error)     { return s.repo.GetAll() }
func (s *AuthorService) GetAuthorByID(id uint) (*models.Author, error) { return s.repo.GetByID(id) }
func (s *AuthorService) CreateAuthor(a *models.Author) error         { return s.repo.Create(a) }
func (s *AuthorService) UpdateAuthor(a *models.Author) error         { return s.repo.Update(a) }
func (s *AuthorService) DeleteAuthor(id uint) error                  { return s.repo.Delete(id) }

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories() ([]models.Category, error) { return s.repo.GetAll() }
func (s *CategoryService) GetCategoryByID(id uint) (*models.Category, error) {
	return s.repo.GetByID(id)
}
func (s *CategoryService) CreateCategory(c *models.Category) error { return s.repo.Create(c) }
func (s *CategoryService) UpdateCategory(c *models.Category) error { return s.repo.Update(c) }
func (s *CategoryService) DeleteCategory(id uint) error            { return s.repo.Delete(id) }
