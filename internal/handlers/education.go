package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/requestdata"
	"github.com/yungbote/elderbridge-backend/internal/services"
)

const maxUploadBytes = 25 << 20

type EducationHandler struct {
	educationService services.EducationService
}

func NewEducationHandler(educationService services.EducationService) *EducationHandler {
	return &EducationHandler{educationService: educationService}
}

func elderIDParam(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("elder_id")
	if raw == "" {
		raw = c.PostForm("elder_id")
	}
	elderID, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_elder_id", errors.New("elder_id is required"))
		return uuid.Nil, false
	}
	return elderID, true
}

func clampedIntQuery(c *gin.Context, key string, def, min, max int) int {
	n, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func (eh *EducationHandler) Upload(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	category := c.Param("category")

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

	message, err := eh.educationService.Upload(
		c.Request.Context(),
		rd.UserID, elderID,
		category,
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

func (eh *EducationHandler) Ask(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	question := c.Query("question")
	if question == "" {
		RespondError(c, http.StatusBadRequest, "missing_question", errors.New("question is required"))
		return
	}
	result, err := eh.educationService.Ask(c.Request.Context(), rd.UserID, elderID, question, c.Query("filename"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (eh *EducationHandler) Quiz(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	filename := c.Query("filename")
	if filename == "" {
		RespondError(c, http.StatusBadRequest, "missing_filename", errors.New("filename is required"))
		return
	}
	num := clampedIntQuery(c, "num", 10, 1, 20)
	questions, err := eh.educationService.Quiz(c.Request.Context(), rd.UserID, elderID, filename, num)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

func (eh *EducationHandler) Files(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	files, err := eh.educationService.Files(c.Request.Context(), rd.UserID, elderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"files": files})
}

func (eh *EducationHandler) DeleteFile(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	filename := c.Query("filename")
	category := c.Query("category")
	if filename == "" {
		RespondError(c, http.StatusBadRequest, "missing_filename", errors.New("filename is required"))
		return
	}
	if err := eh.educationService.DeleteFile(c.Request.Context(), rd.UserID, elderID, filename, category); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (eh *EducationHandler) Messages(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	limit := clampedIntQuery(c, "limit", 50, 1, 200)
	messages, err := eh.educationService.Messages(c.Request.Context(), rd.UserID, elderID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}

func (eh *EducationHandler) FetchStory(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	filename := c.Query("filename")
	story, err := eh.educationService.FetchStory(c.Request.Context(), rd.UserID, elderID, filename)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"filename": filename, "story": story})
}

func (eh *EducationHandler) FetchMedia(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	filename := c.Query("filename")
	path, err := eh.educationService.FetchMediaPath(c.Request.Context(), rd.UserID, elderID, filename)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.File(path)
}

func (eh *EducationHandler) Lyrics(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	elderID, ok := elderIDParam(c)
	if !ok {
		return
	}
	filename := c.Query("filename")
	lyrics, err := eh.educationService.Lyrics(c.Request.Context(), rd.UserID, elderID, filename)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"filename": filename, "lyrics": lyrics})
}
