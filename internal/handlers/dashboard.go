package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"manufacturing_analytics/internal/engine"
	"manufacturing_analytics/internal/models"
	"manufacturing_analytics/internal/service"
)

const (
	statusOK = "ok"

	errInvalidFilters = "invalid filters: "
)

// logAndJSONError logs the error and writes a JSON error body.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dataset info
// @Description  Row count, facet values and date span of the loaded dataset.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.DatasetInfo
// @Router       /api/v1/dataset [get]
func (h *Handler) getDataset(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.DatasetInfo(c.Request.Context()))
}

// @Summary      Filtered records
// @Tags         dashboard
// @Produce      json
// @Param        machines     query  string  false  "Comma-separated machine ids"
// @Param        from         query  string  false  "Start date (YYYY-MM-DD, inclusive)"
// @Param        to           query  string  false  "End date (YYYY-MM-DD, inclusive)"
// @Param        statuses     query  string  false  "Comma-separated machine statuses"
// @Param        failures     query  string  false  "Comma-separated failure types"
// @Param        maintenance  query  string  false  "yes | no | any"
// @Success      200  {object}  map[string]interface{}  "count, records"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/records [get]
func (h *Handler) getRecords(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	records := h.services.Records(c.Request.Context(), crit)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"records": records,
	})
}

// @Summary      Overview metrics
// @Description  Machine count, record count, failures, failure rate and status distribution for the filtered view.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.OverviewMetrics
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/overview [get]
func (h *Handler) getOverview(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.services.Overview(c.Request.Context(), crit))
}

// @Summary      Grouped aggregation
// @Tags         dashboard
// @Produce      json
// @Param        group   query  string  true   "Group key"    Enums(machine,machine_status,failure_type,day_part,hour,date)
// @Param        metric  query  string  false  "Metric (required for mean/sum)"
// @Param        op      query  string  false  "Aggregation"  Enums(mean,count,sum)  default(mean)
// @Success      200  {object}  models.Summary
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/aggregate [get]
func (h *Handler) getAggregate(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	op := c.DefaultQuery("op", models.OpMean)
	summary, err := h.services.Aggregate(c.Request.Context(), crit, c.Query("group"), c.Query("metric"), op)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Threshold anomalies
// @Description  Records whose temperature or vibration strictly exceeds its threshold.
// @Tags         failures
// @Produce      json
// @Param        temp       query  number  false  "Temperature threshold"
// @Param        vibration  query  number  false  "Vibration threshold"
// @Success      200  {object}  map[string]interface{}  "count, thresholds, records"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/anomalies [get]
func (h *Handler) getAnomalies(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	tempT, err := queryFloat(c, "temp", h.anomaly.Temperature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vibT, err := queryFloat(c, "vibration", h.anomaly.Vibration)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := h.services.Anomalies(c.Request.Context(), crit, tempT, vibT)
	c.JSON(http.StatusOK, gin.H{
		"count": len(records),
		"thresholds": gin.H{
			"temperature": tempT,
			"vibration":   vibT,
		},
		"records": records,
	})
}

// @Summary      Sensor correlation matrix
// @Tags         dashboard
// @Produce      json
// @Param        metrics  query  string  true  "Comma-separated metrics (at least two)"
// @Success      200  {object}  models.Matrix
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/correlation [get]
func (h *Handler) getCorrelation(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	metrics := querySelection(c, "metrics")
	matrix, err := h.services.Correlation(c.Request.Context(), crit, metrics)
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "select at least two metrics for correlation"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, matrix)
}

// @Summary      Failure type distribution
// @Description  Record counts per failure type, excluding Normal.
// @Tags         failures
// @Produce      json
// @Success      200  {object}  models.Summary
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/failures [get]
func (h *Handler) getFailures(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	summary, err := h.services.FailureDistribution(c.Request.Context(), crit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to compute failure distribution", "failures_failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Maintenance counts per machine
// @Tags         failures
// @Produce      json
// @Success      200  {object}  models.Summary
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/maintenance [get]
func (h *Handler) getMaintenance(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	summary, err := h.services.MaintenanceByMachine(c.Request.Context(), crit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to compute maintenance summary", "maintenance_failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Machine detail
// @Description  Latest status and readings for one machine within the filtered view.
// @Tags         machines
// @Produce      json
// @Param        id  path  string  true  "Machine id"
// @Success      200  {object}  models.MachineDetail
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/machines/{id} [get]
func (h *Handler) getMachineDetail(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	detail, err := h.services.MachineDetail(c.Request.Context(), crit, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load machine detail", "machine_detail_failed", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary      Machine time series
// @Tags         machines
// @Produce      json
// @Param        id       path   string  true   "Machine id"
// @Param        metrics  query  string  false  "Comma-separated metrics"  default(temperature,vibration)
// @Success      200  {object}  models.TimeSeries
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/machines/{id}/timeseries [get]
func (h *Handler) getTimeSeries(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	metrics := querySelection(c, "metrics")
	if metrics == nil {
		metrics = []string{"temperature", "vibration"}
	}
	series, err := h.services.TimeSeries(c.Request.Context(), crit, c.Param("id"), metrics)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, series)
}

// @Summary      Daily pattern
// @Description  Mean of a metric per hour of day for one machine.
// @Tags         machines
// @Produce      json
// @Param        id      path   string  true   "Machine id"
// @Param        metric  query  string  false  "Metric"  default(temperature)
// @Success      200  {object}  models.Summary
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/machines/{id}/daily [get]
func (h *Handler) getDailyPattern(c *gin.Context) {
	crit, err := bindCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidFilters + err.Error()})
		return
	}
	metric := c.DefaultQuery("metric", "temperature")
	summary, err := h.services.DailyPattern(c.Request.Context(), crit, c.Param("id"), metric)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func queryFloat(c *gin.Context, name string, fallback float64) (float64, error) {
	qs := c.Query(name)
	if qs == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(qs), 64)
	if err != nil {
		return 0, errors.New("invalid '" + name + "' value, expected a number")
	}
	return v, nil
}
