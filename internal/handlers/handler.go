package handlers

import (
	"manufacturing_analytics/internal/logger"
	"manufacturing_analytics/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// AnomalyDefaults are the thresholds used when a request doesn't supply
// its own (mirrors the dashboard's slider defaults).
type AnomalyDefaults struct {
	Temperature float64
	Vibration   float64
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	anomaly  AnomalyDefaults
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, anomaly AnomalyDefaults) *Handler {
	return &Handler{services: services, log: log, anomaly: anomaly}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Live overview channel (HTTP upgrade), same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerDashboardRoutes(api)
		h.registerExportRoutes(api)
		h.registerPresetRoutes(api)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dataset", h.getDataset)
	api.GET("/records", h.getRecords)
	api.GET("/overview", h.getOverview)
	api.GET("/aggregate", h.getAggregate)
	api.GET("/anomalies", h.getAnomalies)
	api.GET("/correlation", h.getCorrelation)
	api.GET("/failures", h.getFailures)
	api.GET("/maintenance", h.getMaintenance)

	machines := api.Group("/machines")
	{
		machines.GET("/:id", h.getMachineDetail)
		machines.GET("/:id/timeseries", h.getTimeSeries)
		machines.GET("/:id/daily", h.getDailyPattern)
	}
}

func (h *Handler) registerExportRoutes(api *gin.RouterGroup) {
	exports := api.Group("/exports")
	{
		exports.POST("", h.postExport)
		exports.GET("", h.getExports)
	}
}

func (h *Handler) registerPresetRoutes(api *gin.RouterGroup) {
	presets := api.Group("/presets")
	{
		presets.POST("", h.postPreset)
		presets.GET("", h.getPresets)
		presets.GET("/:id", h.getPreset)
		presets.DELETE("/:id", h.deletePreset)
	}
}
