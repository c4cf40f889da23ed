package service

import (
	"context"

	"billtrack/internal/dto"
	"billtrack/internal/model"
	"billtrack/internal/repository"

	"github.com/google/uuid"
)

type ReminderService interface {
	Create(ctx context.Context, companyID string, req dto.CreateReminderRequest) (*dto.ReminderResponse, error)
	List(ctx context.Context, companyID string, includeSent bool) ([]dto.ReminderResponse, error)
	Delete(ctx context.Context, companyID string, id uuid.UUID) error
}

type reminderService struct {
	reminders repository.ReminderRepository
}

func NewReminderService(reminders repository.ReminderRepository) ReminderService {
	return &reminderService{reminders: reminders}
}

func (s *reminderService) Create(ctx context.Context, companyID string, req dto.CreateReminderRequest) (*dto.ReminderResponse, error) {
	rm := &model.Reminder{
		CompanyID:      companyID,
		Title:          req.Title,
		Notes:          req.Notes,
		RemindAt:       req.RemindAt,
		RecipientEmail: req.RecipientEmail,
	}
	if err := s.reminders.Create(ctx, rm); err != nil {
		return nil, err
	}
	resp := toReminderResponse(rm)
	return &resp, nil
}

func (s *reminderService) List(ctx context.Context, companyID string, includeSent bool) ([]dto.ReminderResponse, error) {
	reminders, err := s.reminders.List(ctx, companyID, includeSent)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReminderResponse, 0, len(reminders))
	for i := range reminders {
		out = append(out, toReminderResponse(&reminders[i]))
	}
	return out, nil
}

func (s *reminderService) Delete(ctx context.Context, companyID string, id uuid.UUID) error {
	return s.reminders.Delete(ctx, companyID, id)
}

func toReminderResponse(rm *model.Reminder) dto.ReminderResponse {
	return dto.ReminderResponse{
		ID:             rm.ID.String(),
		Title:          rm.Title,
		Notes:          rm.Notes,
		RemindAt:       rm.RemindAt,
		RecipientEmail: rm.RecipientEmail,
		Sent:           rm.Sent,
	}
}
