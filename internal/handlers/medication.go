package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/requestdata"
	"github.com/yungbote/elderbridge-backend/internal/services"
)

type MedicationHandler struct {
	reminderService services.ReminderService
}

func NewMedicationHandler(reminderService services.ReminderService) *MedicationHandler {
	return &MedicationHandler{reminderService: reminderService}
}

func (mh *MedicationHandler) Schedule(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req services.ScheduleReminderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	reminder, err := mh.reminderService.Schedule(c.Request.Context(), rd.UserID, req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondServiceError(c, err)
			return
		}
		RespondError(c, http.StatusBadRequest, "schedule_failed", err)
		return
	}
	RespondOK(c, reminder)
}

func (mh *MedicationHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var elderID *uuid.UUID
	if raw := c.Query("elder_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_elder_id", errors.New("invalid elder_id"))
			return
		}
		elderID = &parsed
	}
	reminders, err := mh.reminderService.List(c.Request.Context(), rd.UserID, elderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"reminders": reminders})
}

func (mh *MedicationHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid reminder id"))
		return
	}
	if err := mh.reminderService.Delete(c.Request.Context(), rd.UserID, reminderID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
