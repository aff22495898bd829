package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductCategory mirrors parser.ProductCategory at the persistence boundary.
type ProductCategory string

const (
	ProductCategoryPortion ProductCategory = "PORTION"
	ProductCategoryWhole   ProductCategory = "WHOLE"
)

// Product is a sellable item in the bakery catalog. Price is the transfer
// (bank wire) price and the canonical one; PriceCard is the optional
// card-payment surcharge price.
type Product struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string           `json:"name" gorm:"not null;index"`
	Description *string          `json:"description,omitempty"`
	Price       float64          `json:"price" gorm:"type:decimal(12,2);not null"`
	PriceCard   *float64         `json:"priceCard,omitempty" gorm:"type:decimal(12,2)"`
	PaymentLink *string          `json:"paymentLink,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Category    *ProductCategory `json:"category,omitempty" gorm:"type:varchar(10);index"`
	CreatedAt   time.Time        `json:"createdAt" gorm:"index:,sort:desc"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	DeletedAt   *gorm.DeletedAt  `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description *string          `json:"description,omitempty"`
	Price       float64          `json:"price" binding:"required,gt=0"`
	PriceCard   *float64         `json:"priceCard,omitempty"`
	PaymentLink *string          `json:"paymentLink,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *float64         `json:"price,omitempty"`
	PriceCard   *float64         `json:"priceCard,omitempty"`
	PaymentLink *string          `json:"paymentLink,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
}

// ProductResponse wraps a single product
type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data,omitempty"`
	Message *string  `json:"message,omitempty"`
}

// ProductsListResponse wraps a product list
type ProductsListResponse struct {
	Success bool      `json:"success"`
	Data    []Product `json:"data"`
	Total   int64     `json:"total"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
