package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"rentwear/internal/infra/config"
	"rentwear/internal/infra/obs"
)

type CalendarHTTP interface {
	Month(c *gin.Context)
	Toggle(c *gin.Context)
	GenerateRange(c *gin.Context)
	Exclude(c *gin.Context)
}

type GarmentHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
}

type Handlers struct {
	Calendar CalendarHTTP
	Garment  GarmentHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Garment != nil {
		api.POST("/garments", h.Garment.Create)
		api.GET("/garments/:id", h.Garment.Get)
		api.PUT("/garments/:id", h.Garment.Update)
	}
	if h.Calendar != nil {
		api.GET("/garments/:id/calendar", h.Calendar.Month)
		api.POST("/garments/:id/calendar/toggle", h.Calendar.Toggle)
		api.POST("/garments/:id/calendar/range", h.Calendar.GenerateRange)
		api.POST("/garments/:id/calendar/exclude", h.Calendar.Exclude)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
