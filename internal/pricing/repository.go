package pricing

import (
	"context"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"gorm.io/gorm"
)

// MaterialPriceRepository handles database operations for reference prices
type MaterialPriceRepository interface {
	// GetByMaterial retrieves the current price record for a material
	GetByMaterial(ctx context.Context, material string) (*domain.MaterialPrice, error)

	// List retrieves every stored material price
	List(ctx context.Context) ([]domain.MaterialPrice, error)

	// Save persists a new or updated price record
	Save(ctx context.Context, mp *domain.MaterialPrice) error
}

// ProductRepository handles database operations for catalog products
type ProductRepository interface {
	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// FindByMaterial retrieves all products made of the given material
	FindByMaterial(ctx context.Context, material string) ([]*domain.Product, error)

	// Save persists a product
	Save(ctx context.Context, p *domain.Product) error
}

// GormMaterialPriceRepository is the GORM implementation of MaterialPriceRepository
type GormMaterialPriceRepository struct {
	db *gorm.DB
}

// NewGormMaterialPriceRepository creates a new GORM-based repository
func NewGormMaterialPriceRepository(db *gorm.DB) *GormMaterialPriceRepository {
	return &GormMaterialPriceRepository{db: db}
}

func (r *GormMaterialPriceRepository) GetByMaterial(ctx context.Context, material string) (*domain.MaterialPrice, error) {
	var mp domain.MaterialPrice
	err := r.db.WithContext(ctx).Where("material = ?", material).First(&mp).Error
	if err != nil {
		return nil, err
	}
	return &mp, nil
}

func (r *GormMaterialPriceRepository) List(ctx context.Context) ([]domain.MaterialPrice, error) {
	var prices []domain.MaterialPrice
	err := r.db.WithContext(ctx).Order("material ASC").Find(&prices).Error
	return prices, err
}

func (r *GormMaterialPriceRepository) Save(ctx context.Context, mp *domain.MaterialPrice) error {
	return r.db.WithContext(ctx).Save(mp).Error
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Stones").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) FindByMaterial(ctx context.Context, material string) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Where("material = ?", material).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Omit("Stones").Save(p).Error
}
