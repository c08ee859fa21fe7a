package models

import "gorm.io/gorm"

// Author represents a book author.
type Author struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"type:varchar(200)" validate:"required,min=1,max=200"`
	Bio        string `json:"bio" validate:"omitempty,max=2000"`
	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Category groups books for browsing and report filtering.
type Category struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Slug       string `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"omitempty,max=100"`
	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
