package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/requestdata"
	"github.com/yungbote/elderbridge-backend/internal/services"
)

type YoungerHandler struct {
	youngerService services.YoungerService
}

func NewYoungerHandler(youngerService services.YoungerService) *YoungerHandler {
	return &YoungerHandler{youngerService: youngerService}
}

func (yh *YoungerHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	younger, err := yh.youngerService.Create(c.Request.Context(), rd.UserID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, younger)
}

func (yh *YoungerHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	youngers, err := yh.youngerService.List(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, youngers)
}

func (yh *YoungerHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	youngerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid younger id"))
		return
	}
	younger, err := yh.youngerService.Get(c.Request.Context(), rd.UserID, youngerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, younger)
}

func (yh *YoungerHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	youngerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid younger id"))
		return
	}
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	younger, err := yh.youngerService.Update(c.Request.Context(), rd.UserID, youngerID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, younger)
}

func (yh *YoungerHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	youngerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid younger id"))
		return
	}
	if err := yh.youngerService.Delete(c.Request.Context(), rd.UserID, youngerID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
