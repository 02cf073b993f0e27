package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/elderbridge-backend/internal/handlers"
	"github.com/yungbote/elderbridge-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName       string
	AllowedOrigins    []string
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	DBHandler         *handlers.DBHandler
	ElderHandler      *handlers.ElderHandler
	YoungerHandler    *handlers.YoungerHandler
	ChatHandler       *handlers.ChatHandler
	EducationHandler  *handlers.EducationHandler
	StudyHandler      *handlers.StudyHandler
	MedicationHandler *handlers.MedicationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/check-db", cfg.DBHandler.CheckDB)
	auth := router.Group("/auth")
	{
		auth.POST("/signup", cfg.AuthHandler.Signup)
		auth.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// User
	protected.GET("/auth/me", cfg.AuthHandler.Me)
	protected.PATCH("/auth/update", cfg.AuthHandler.Update)

	// Profiles
	elders := protected.Group("/elders")
	{
		elders.POST("", cfg.ElderHandler.Create)
		elders.GET("", cfg.ElderHandler.List)
		elders.GET("/:id", cfg.ElderHandler.Get)
		elders.PUT("/:id", cfg.ElderHandler.Update)
		elders.DELETE("/:id", cfg.ElderHandler.Delete)
	}
	youngers := protected.Group("/youngers")
	{
		youngers.POST("", cfg.YoungerHandler.Create)
		youngers.GET("", cfg.YoungerHandler.List)
		youngers.GET("/:id", cfg.YoungerHandler.Get)
		youngers.PUT("/:id", cfg.YoungerHandler.Update)
		youngers.DELETE("/:id", cfg.YoungerHandler.Delete)
	}

	// Companion chat
	protected.POST("/chat", cfg.ChatHandler.Chat)

	// Elder-scoped documents and Q&A
	education := protected.Group("/education")
	{
		education.POST("/upload/:category", cfg.EducationHandler.Upload)
		education.GET("/ask", cfg.EducationHandler.Ask)
		education.GET("/quiz", cfg.EducationHandler.Quiz)
		education.GET("/files", cfg.EducationHandler.Files)
		education.DELETE("/file", cfg.EducationHandler.DeleteFile)
		education.GET("/messages", cfg.EducationHandler.Messages)
		education.GET("/fetch/story", cfg.EducationHandler.FetchStory)
		education.GET("/fetch/media", cfg.EducationHandler.FetchMedia)
		education.GET("/media/lyrics", cfg.EducationHandler.Lyrics)
	}

	// Caregiver self-study
	study := protected.Group("/study")
	{
		study.POST("/upload", cfg.StudyHandler.Upload)
		study.POST("/ask", cfg.StudyHandler.Ask)
		study.GET("/quiz", cfg.StudyHandler.Quiz)
		study.GET("/links", cfg.StudyHandler.Links)
	}

	// Medication reminders
	medications := protected.Group("/medications")
	{
		medications.POST("/schedule-reminder", cfg.MedicationHandler.Schedule)
		medications.GET("/reminders", cfg.MedicationHandler.List)
		medications.DELETE("/reminders/:id", cfg.MedicationHandler.Delete)
	}

	return router
}
