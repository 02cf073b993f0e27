package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/elderbridge-backend/internal/db"
)

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type DBHandler struct {
	pg *db.PostgresService
}

func NewDBHandler(pg *db.PostgresService) *DBHandler {
	return &DBHandler{pg: pg}
}

func (dh *DBHandler) CheckDB(c *gin.Context) {
	if err := dh.pg.Ping(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "db_unavailable", err)
		return
	}
	RespondOK(c, gin.H{"status": "connected"})
}
