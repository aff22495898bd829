package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseItem is one line of a recorded purchase. The product name is
// snapshotted so the register stays readable after catalog edits.
type PurchaseItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Category    string  `json:"category,omitempty"`
}

// PurchaseItems is stored as a JSONB column.
type PurchaseItems []PurchaseItem

// Value implements the driver.Valuer interface for PurchaseItems
func (p PurchaseItems) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for PurchaseItems
func (p *PurchaseItems) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// PurchaseSummary holds the aggregate figures shown in the register.
type PurchaseSummary struct {
	Porciones float64 `json:"porciones"`
	Tortas    float64 `json:"tortas"`
}

// Value implements the driver.Valuer interface for PurchaseSummary
func (s PurchaseSummary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for PurchaseSummary
func (s *PurchaseSummary) Scan(value interface{}) error {
	if value == nil {
		*s = PurchaseSummary{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Purchase is one recorded customer order, built from a pasted WhatsApp
// message plus manual corrections in the admin panel.
type Purchase struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RawMessage  string          `json:"rawMessage" gorm:"type:text;not null"`
	Items       PurchaseItems   `json:"parsedItems" gorm:"type:jsonb"`
	TotalItems  float64         `json:"totalItems"`
	Summary     PurchaseSummary `json:"summary" gorm:"type:jsonb"`
	TotalAmount float64         `json:"totalAmount" gorm:"type:decimal(12,2)"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"index:,sort:desc"`
	DeletedAt   *gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItemInput is one editable row in the purchase form. Category may be
// left empty to use the inferred one.
type PurchaseItemInput struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Category  string  `json:"category,omitempty"`
}

// CreatePurchaseRequest records a purchase from a message and its line items
type CreatePurchaseRequest struct {
	RawMessage string              `json:"rawMessage" binding:"required"`
	Items      []PurchaseItemInput `json:"items" binding:"required,dive"`
}

// ParsePurchaseRequest previews parser output for a pasted message
type ParsePurchaseRequest struct {
	Message string `json:"message" binding:"required"`
}

// ParsePurchaseResponse is the parser preview: detected items plus the
// aggregate summary, nothing persisted.
type ParsePurchaseResponse struct {
	Success     bool            `json:"success"`
	Items       []PurchaseItem  `json:"items"`
	Summary     PurchaseSummary `json:"summary"`
	TotalItems  float64         `json:"totalItems"`
	TotalAmount float64         `json:"totalAmount"`
}

// PurchaseResponse wraps a single purchase
type PurchaseResponse struct {
	Success bool      `json:"success"`
	Data    *Purchase `json:"data,omitempty"`
	Message *string   `json:"message,omitempty"`
}

// PurchasesListResponse wraps the purchase history
type PurchasesListResponse struct {
	Success bool       `json:"success"`
	Data    []Purchase `json:"data"`
	Total   int64      `json:"total"`
}

// PurchaseReport aggregates the register for the admin dashboard
type PurchaseReport struct {
	Purchases  int64   `json:"purchases"`
	TotalItems float64 `json:"totalItems"`
	Revenue    float64 `json:"revenue"`
	Porciones  float64 `json:"porciones"`
	Tortas     float64 `json:"tortas"`
}
