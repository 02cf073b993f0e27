package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/elderbridge-backend/internal/requestdata"
	"github.com/yungbote/elderbridge-backend/internal/services"
)

type StudyHandler struct {
	studyService services.StudyService
}

func NewStudyHandler(studyService services.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

func (sh *StudyHandler) Upload(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", errors.New("file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errors.New("file exceeds upload limit"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	message, err := sh.studyService.Upload(
		c.Request.Context(),
		rd.UserID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": message})
}

func (sh *StudyHandler) Ask(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Question string `json:"question"`
		Filename string `json:"filename"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("question is required"))
		return
	}
	answer, err := sh.studyService.Ask(c.Request.Context(), rd.UserID, req.Question, req.Filename)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"answer": answer})
}

func (sh *StudyHandler) Quiz(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	filename := c.Query("filename")
	if filename == "" {
		RespondError(c, http.StatusBadRequest, "missing_filename", errors.New("filename is required"))
		return
	}
	num := clampedIntQuery(c, "num", 10, 1, 20)
	questions, err := sh.studyService.Quiz(c.Request.Context(), rd.UserID, filename, num)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

func (sh *StudyHandler) Links(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	filename := c.Query("filename")
	if filename == "" {
		RespondError(c, http.StatusBadRequest, "missing_filename", errors.New("filename is required"))
		return
	}
	num := clampedIntQuery(c, "num", 5, 1, 10)
	links, err := sh.studyService.Links(c.Request.Context(), rd.UserID, filename, num)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"links": links})
}
