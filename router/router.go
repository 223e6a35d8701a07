package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"comment-insights-service/handler"
	"comment-insights-service/middleware"
	"comment-insights-service/web"
)

func Setup(h *handler.CommentHandler) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(middleware.PrometheusMiddleware("comment-insights-service"))

	// Single-page UI
	r.GET("/", web.Index)

	// Health and metrics endpoints
	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/comments/fetch", h.FetchComments)
		api.GET("/comments", h.GetComments)
		api.GET("/comments/export", h.ExportCSV)
		api.GET("/video", h.GetVideo)
		api.POST("/analysis/ask", h.Ask)
		api.GET("/analysis/history", h.GetHistory)
		api.DELETE("/analysis/history", h.ClearHistory)
		api.GET("/analysis/suggestions", h.GetSuggestions)
	}

	return r
}
