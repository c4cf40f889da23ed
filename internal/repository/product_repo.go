package repository

import (
	"context"

	"billtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for catalog products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.Product, error)
	FindByItemCode(ctx context.Context, companyID, itemCode string) (*model.Product, error)
	List(ctx context.Context, companyID string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, companyID string, id uuid.UUID) error

	// Restock sets the nominal quantity. This is the only write path for Product.Quantity.
	Restock(ctx context.Context, companyID string, id uuid.UUID, quantity int) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByItemCode(ctx context.Context, companyID, itemCode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND item_code = ? AND active = true", companyID, itemCode).
		Order("created_at ASC"). // item codes are not unique in legacy data; oldest wins
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, companyID string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("item_name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, companyID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Update("active", false).Error
}

func (r *productRepo) Restock(ctx context.Context, companyID string, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("company_id = ? AND id = ? AND active = true", companyID, id).
		Update("quantity", quantity).Error
}
