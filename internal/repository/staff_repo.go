package repository

import (
	"context"

	"billtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.Staff) error
	FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.Staff, error)
	List(ctx context.Context, companyID, department string) ([]model.Staff, error)
	Update(ctx context.Context, s *model.Staff) error
	SoftDelete(ctx context.Context, companyID string, id uuid.UUID) error
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) Create(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *staffRepo) FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepo) List(ctx context.Context, companyID, department string) ([]model.Staff, error) {
	var staff []model.Staff
	q := r.db.WithContext(ctx).Where("company_id = ? AND active = true", companyID)
	if department != "" {
		q = q.Where("department = ?", department)
	}
	err := q.Order("name ASC").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) Update(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *staffRepo) SoftDelete(ctx context.Context, companyID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Staff{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Update("active", false).Error
}
