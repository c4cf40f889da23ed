package repository

import (
	"context"

	"billtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SoldProductRepository interface {
	Create(ctx context.Context, sp *model.SoldProduct) error
	List(ctx context.Context, companyID string) ([]model.SoldProduct, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
}

type soldProductRepo struct{ db *gorm.DB }

func NewSoldProductRepository(db *gorm.DB) SoldProductRepository { return &soldProductRepo{db: db} }

func (r *soldProductRepo) Create(ctx context.Context, sp *model.SoldProduct) error {
	return r.db.WithContext(ctx).Create(sp).Error
}

func (r *soldProductRepo) List(ctx context.Context, companyID string) ([]model.SoldProduct, error) {
	var rows []model.SoldProduct
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("sold_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *soldProductRepo) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&model.SoldProduct{}).Error
}
