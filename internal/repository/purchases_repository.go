package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BauthyBa/bautigatica/internal/models"
)

type PurchasesRepository struct {
	db *gorm.DB
}

func NewPurchasesRepository(db *gorm.DB) *PurchasesRepository {
	return &PurchasesRepository{db: db}
}

// CreatePurchase records a purchase
func (r *PurchasesRepository) CreatePurchase(purchase *models.Purchase) error {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	purchase.CreatedAt = time.Now()
	return r.db.Create(purchase).Error
}

// ListPurchases returns the most recent purchases, newest first.
func (r *PurchasesRepository) ListPurchases(limit int) ([]models.Purchase, int64, error) {
	var total int64
	if err := r.db.Model(&models.Purchase{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []models.Purchase
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// GetPurchaseByID retrieves a purchase by ID
func (r *PurchasesRepository) GetPurchaseByID(purchaseID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Where("id = ?", purchaseID).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// DeletePurchase soft deletes a purchase
func (r *PurchasesRepository) DeletePurchase(purchaseID uuid.UUID) error {
	return r.db.Where("id = ?", purchaseID).Delete(&models.Purchase{}).Error
}

// GetReport aggregates the register: purchase count, item total, revenue and
// the portion/whole figures summed across stored summaries.
func (r *PurchasesRepository) GetReport() (*models.PurchaseReport, error) {
	var report models.PurchaseReport

	if err := r.db.Model(&models.Purchase{}).Count(&report.Purchases).Error; err != nil {
		return nil, err
	}

	row := r.db.Model(&models.Purchase{}).
		Select("COALESCE(SUM(total_items), 0), COALESCE(SUM(total_amount), 0), COALESCE(SUM((summary->>'porciones')::numeric), 0), COALESCE(SUM((summary->>'tortas')::numeric), 0)").
		Row()
	if err := row.Scan(&report.TotalItems, &report.Revenue, &report.Porciones, &report.Tortas); err != nil {
		return nil, err
	}

	return &report, nil
}
