package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/BauthyBa/bautigatica/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL = 5 * time.Minute
	CatalogCacheTTL = 2 * time.Minute // whole-catalog list, shorter due to admin edits
)

const catalogCacheKey = "bautigatica:products:catalog"

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProductsRepository(db *gorm.DB, redis *redis.Client) *ProductsRepository {
	return &ProductsRepository{db: db, redis: redis}
}

func productCacheKey(productID uuid.UUID) string {
	return fmt.Sprintf("bautigatica:products:%s", productID.String())
}

// invalidateProductCaches drops the single-product and catalog list caches.
func (r *ProductsRepository) invalidateProductCaches(ctx context.Context, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, productCacheKey(productID), catalogCacheKey).Err()
}

// CreateProduct creates a new product
func (r *ProductsRepository) CreateProduct(product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	err := r.db.Create(product).Error
	if err == nil && r.redis != nil {
		_ = r.redis.Del(context.Background(), catalogCacheKey).Err()
	}
	return err
}

// GetProductByID retrieves a product by ID with caching
func (r *ProductsRepository) GetProductByID(productID uuid.UUID) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := productCacheKey(productID)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.Where("id = ?", productID).First(&product).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// ListProducts returns the full catalog, newest first, with caching.
func (r *ProductsRepository) ListProducts() ([]models.Product, error) {
	ctx := context.Background()

	if r.redis != nil {
		val, err := r.redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var products []models.Product
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	var products []models.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			r.redis.Set(ctx, catalogCacheKey, data, CatalogCacheTTL)
		}
	}

	return products, nil
}

// UpdateProduct updates a product and invalidates cache
func (r *ProductsRepository) UpdateProduct(productID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	err := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(updates).Error

	if err == nil {
		r.invalidateProductCaches(context.Background(), productID)
	}
	return err
}

// DeleteProduct soft deletes a product
func (r *ProductsRepository) DeleteProduct(productID uuid.UUID) error {
	err := r.db.Where("id = ?", productID).Delete(&models.Product{}).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), productID)
	}
	return err
}
