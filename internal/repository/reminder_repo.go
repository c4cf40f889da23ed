package repository

import (
	"context"
	"time"

	"billtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderRepository interface {
	Create(ctx context.Context, rm *model.Reminder) error
	List(ctx context.Context, companyID string, includeSent bool) ([]model.Reminder, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error

	// ListDue returns unsent reminders whose RemindAt is at or before now.
	// Used by the reminder cron; not company-scoped.
	ListDue(ctx context.Context, now time.Time) ([]model.Reminder, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
}

type reminderRepo struct{ db *gorm.DB }

func NewReminderRepository(db *gorm.DB) ReminderRepository { return &reminderRepo{db: db} }

func (r *reminderRepo) Create(ctx context.Context, rm *model.Reminder) error {
	return r.db.WithContext(ctx).Create(rm).Error
}

func (r *reminderRepo) List(ctx context.Context, companyID string, includeSent bool) ([]model.Reminder, error) {
	var reminders []model.Reminder
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if !includeSent {
		q = q.Where("sent = false")
	}
	err := q.Order("remind_at ASC").Find(&reminders).Error
	return reminders, err
}

func (r *reminderRepo) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&model.Reminder{}).Error
}

func (r *reminderRepo) ListDue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.WithContext(ctx).
		Where("sent = false AND remind_at <= ?", now).
		Order("remind_at ASC").
		Limit(100). // cap per tick; the rest go out next minute
		Find(&reminders).Error
	return reminders, err
}

func (r *reminderRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("id = ?", id).
		Update("sent", true).Error
}
