package api

import (
	"net/http"

	"carbon-intensity/internal/api/handlers"
	"carbon-intensity/internal/api/middleware"
	"carbon-intensity/internal/config"
	"carbon-intensity/internal/metrics"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the dashboard page, its JSON API, chart images and
// operational endpoints.
func NewRouter(cfg config.DashboardConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.SetHTMLTemplate(handlers.IndexTemplate())

	dashboardHandler := handlers.NewDashboardHandler(cfg.SearchDirs)
	snapshotHandler := handlers.NewSnapshotHandler(cfg.SearchDirs)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/", dashboardHandler.Index)
	router.GET("/charts/daily.svg", dashboardHandler.DailyChart)
	router.GET("/charts/hourly.svg", dashboardHandler.HourlyChart)

	api := router.Group("/api/v1")
	{
		api.GET("/summary", dashboardHandler.GetSummary)
		api.GET("/daily", dashboardHandler.GetDaily)
		api.GET("/hourly", dashboardHandler.GetHourly)
		api.GET("/snapshots", snapshotHandler.ListSnapshots)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
