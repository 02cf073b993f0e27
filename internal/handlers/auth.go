package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/elderbridge-backend/internal/requestdata"
	"github.com/yungbote/elderbridge-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Signup(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	result, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			RespondError(c, http.StatusConflict, "email_taken", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "signup_failed", err)
		return
	}
	RespondOK(c, result)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	result, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
			return
		}
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AuthHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	user, err := ah.authService.GetUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, user)
}

func (ah *AuthHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req services.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	user, err := ah.authService.UpdateUser(c.Request.Context(), rd.UserID, req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			RespondError(c, http.StatusConflict, "email_taken", err)
			return
		}
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, user)
}
