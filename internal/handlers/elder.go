package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/requestdata"
	"github.com/yungbote/elderbridge-backend/internal/services"
)

type ElderHandler struct {
	elderService services.ElderService
}

func NewElderHandler(elderService services.ElderService) *ElderHandler {
	return &ElderHandler{elderService: elderService}
}

func (eh *ElderHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	elder, err := eh.elderService.Create(c.Request.Context(), rd.UserID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, elder)
}

func (eh *ElderHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elders, err := eh.elderService.List(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, elders)
}

func (eh *ElderHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid elder id"))
		return
	}
	elder, err := eh.elderService.Get(c.Request.Context(), rd.UserID, elderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, elder)
}

func (eh *ElderHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid elder id"))
		return
	}
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	elder, err := eh.elderService.Update(c.Request.Context(), rd.UserID, elderID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, elder)
}

func (eh *ElderHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid elder id"))
		return
	}
	if err := eh.elderService.Delete(c.Request.Context(), rd.UserID, elderID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
