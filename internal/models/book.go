package models

import "gorm.io/gorm"

// Book represents a title in the catalog.
// ID is the numeric primary key used in relations; DocumentID is the stable
// external identifier clients may use interchangeably with the numeric id.
type Book struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	DocumentID  string   `json:"document_id" gorm:"uniqueIndex;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	SalePrice   int64    `json:"sale_price" validate:"required,gt=0"` // smallest currency unit
	Quantity    int      `json:"quantity" validate:"gte=0"`           // copies in stock
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Tags        []string `json:"tags" gorm:"serializer:json"`
	AuthorID    uint     `json:"author_id"`
	CategoryID  uint     `json:"category_id"`
	gorm.Model  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
