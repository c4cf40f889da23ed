package repository

import (
	"context"
	"errors"
	"time"

	"billtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CashBillRepository defines data access for cash bills. Bill creation runs
// inside a transaction so the invoice counter increment and the insert commit
// together.
type CashBillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.CashBill) error
	FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.CashBill, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]model.CashBill, int64, error)

	// ListAll returns every bill for the company, used by the
	// reconciliation which must see the full sales history.
	ListAll(ctx context.Context, companyID string) ([]model.CashBill, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	NextInvoiceNo(tx *gorm.DB, companyID string) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

// CreditBillRepository mirrors the cash side plus settlement.
type CreditBillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.CreditBill) error
	FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.CreditBill, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]model.CreditBill, int64, error)
	ListAll(ctx context.Context, companyID string) ([]model.CreditBill, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	MarkPaid(ctx context.Context, companyID string, id uuid.UUID, at time.Time) error
	NextInvoiceNo(tx *gorm.DB, companyID string) (int64, error)
	DB() *gorm.DB
}

// nextInvoiceNo increments the per-company counter row under a row lock,
// creating it on first use. Must run inside the caller's transaction.
func nextInvoiceNo(tx *gorm.DB, companyID, kind string) (int64, error) {
	var c model.InvoiceCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND kind = ?", companyID, kind).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = model.InvoiceCounter{CompanyID: companyID, Kind: kind, Next: 1}
		if err := tx.Create(&c).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}
	n := c.Next
	if err := tx.Model(&model.InvoiceCounter{}).
		Where("id = ?", c.ID).
		Update("next", n+1).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ── cash ─────────────────────────────────────────────────────────────────────

type cashBillRepo struct{ db *gorm.DB }

func NewCashBillRepository(db *gorm.DB) CashBillRepository { return &cashBillRepo{db: db} }

func (r *cashBillRepo) Create(ctx context.Context, tx *gorm.DB, b *model.CashBill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *cashBillRepo) FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.CashBill, error) {
	var b model.CashBill
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *cashBillRepo) List(ctx context.Context, companyID string, limit, offset int) ([]model.CashBill, int64, error) {
	var bills []model.CashBill
	var total int64
	q := r.db.WithContext(ctx).Model(&model.CashBill{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bills).Error
	return bills, total, err
}

func (r *cashBillRepo) ListAll(ctx context.Context, companyID string) ([]model.CashBill, error) {
	var bills []model.CashBill
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&bills).Error
	return bills, err
}

func (r *cashBillRepo) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&model.CashBill{}).Error
}

func (r *cashBillRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.CashBill{}).
		Where("id = ?", id).
		Update("pdf_path", path).Error
}

func (r *cashBillRepo) NextInvoiceNo(tx *gorm.DB, companyID string) (int64, error) {
	return nextInvoiceNo(tx, companyID, "cash")
}

func (r *cashBillRepo) DB() *gorm.DB { return r.db }

// ── credit ───────────────────────────────────────────────────────────────────

type creditBillRepo struct{ db *gorm.DB }

func NewCreditBillRepository(db *gorm.DB) CreditBillRepository { return &creditBillRepo{db: db} }

func (r *creditBillRepo) Create(ctx context.Context, tx *gorm.DB, b *model.CreditBill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *creditBillRepo) FindByID(ctx context.Context, companyID string, id uuid.UUID) (*model.CreditBill, error) {
	var b model.CreditBill
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *creditBillRepo) List(ctx context.Context, companyID string, limit, offset int) ([]model.CreditBill, int64, error) {
	var bills []model.CreditBill
	var total int64
	q := r.db.WithContext(ctx).Model(&model.CreditBill{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bills).Error
	return bills, total, err
}

func (r *creditBillRepo) ListAll(ctx context.Context, companyID string) ([]model.CreditBill, error) {
	var bills []model.CreditBill
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&bills).Error
	return bills, err
}

func (r *creditBillRepo) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&model.CreditBill{}).Error
}

func (r *creditBillRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.CreditBill{}).
		Where("id = ?", id).
		Update("pdf_path", path).Error
}

func (r *creditBillRepo) MarkPaid(ctx context.Context, companyID string, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.CreditBill{}).
		Where("company_id = ? AND id = ? AND paid = false", companyID, id).
		Updates(map[string]interface{}{"paid": true, "paid_at": at}).Error
}

func (r *creditBillRepo) NextInvoiceNo(tx *gorm.DB, companyID string) (int64, error) {
	return nextInvoiceNo(tx, companyID, "credit")
}

func (r *creditBillRepo) DB() *gorm.DB { return r.db }
