package dto

import "time"

type CreateReminderRequest struct {
	Title          string    `json:"title" binding:"required,max=128"`
	Notes          string    `json:"notes" binding:"max=1024"`
	RemindAt       time.Time `json:"remindAt" binding:"required"`
	RecipientEmail string    `json:"recipientEmail" binding:"required,email"`
}

type ReminderResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Notes          string    `json:"notes,omitempty"`
	RemindAt       time.Time `json:"remindAt"`
	RecipientEmail string    `json:"recipientEmail"`
	Sent           bool      `json:"sent"`
}
