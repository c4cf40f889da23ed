package handler

import (
	"billtrack/internal/dto"
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
)

type RemindersHandler struct {
	reminders service.ReminderService
}

func NewRemindersHandler(reminders service.ReminderService) *RemindersHandler {
	return &RemindersHandler{reminders: reminders}
}

func (h *RemindersHandler) Create(c *gin.Context) {
	var req dto.CreateReminderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reminders.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *RemindersHandler) List(c *gin.Context) {
	includeSent := c.Query("includeSent") == "true"
	resp, err := h.reminders.List(c.Request.Context(), companyID(c), includeSent)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *RemindersHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.reminders.Delete(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
