package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/cinebook/backend/internal/http/handlers"
	httpMW "github.com/cinebook/backend/internal/http/middleware"
	"github.com/cinebook/backend/internal/pkg/logger"
)

type RouterConfig struct {
	BookingHandler *httpH.BookingHandler
	HealthHandler  *httpH.HealthHandler
	Log            *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.BookingHandler != nil {
			api.GET("/bookings", cfg.BookingHandler.ListAll)
			api.POST("/bookings", cfg.BookingHandler.Create)
			api.GET("/users/:userid/bookings", cfg.BookingHandler.ByUser)
			api.GET("/users/:userid/bookings/detailed", cfg.BookingHandler.DetailedByUser)
			api.DELETE("/users/:userid/bookings", cfg.BookingHandler.DeleteAll)
			api.DELETE("/users/:userid/bookings/:date/:movieid", cfg.BookingHandler.Delete)
		}
	}

	return r
}
