package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/inventory"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) parseSelection(c *gin.Context) domain.Selection {
	return domain.Selection{
		Location: strings.TrimSpace(c.DefaultQuery("location", domain.AllSentinel)),
		Item:     strings.TrimSpace(c.DefaultQuery("item", domain.AllSentinel)),
	}
}

func (h *InventoryHandler) GetFilters(c *gin.Context) {
	opts, err := h.service.GetFilterOptions(c.Request.Context())
	if err != nil {
		serverError(c, "failed to fetch filter options", err)
		return
	}

	c.JSON(http.StatusOK, opts)
}

func (h *InventoryHandler) GetDashboard(c *gin.Context) {
	topN := h.service.TopN()
	if raw := strings.TrimSpace(c.Query("top_n")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top_n", "details": err.Error()})
			return
		}
		topN = n
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), h.parseSelection(c), topN)
	if errors.Is(err, inventory.ErrNegativeLimit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top_n", "details": err.Error()})
		return
	}
	if err != nil {
		serverError(c, "failed to build dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *InventoryHandler) GetForecast(c *gin.Context) {
	forecast, err := h.service.GetForecast(c.Request.Context(), h.parseSelection(c))
	if err != nil {
		serverError(c, "failed to fetch forecast", err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

func (h *InventoryHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.service.GetAlerts(c.Request.Context(), h.parseSelection(c))
	if err != nil {
		serverError(c, "failed to fetch alerts", err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *InventoryHandler) GetChart(c *gin.Context) {
	chartType := domain.ChartType(strings.ToLower(strings.TrimSpace(c.DefaultQuery("type", string(domain.ChartHeatmap)))))

	data, err := h.service.GetChart(c.Request.Context(), h.parseSelection(c), chartType)
	if errors.Is(err, service.ErrUnknownChart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chart type", "details": err.Error()})
		return
	}
	if err != nil {
		serverError(c, "failed to fetch chart data", err)
		return
	}

	c.JSON(http.StatusOK, data)
}

type summaryRequest struct {
	Location string `json:"location"`
	Item     string `json:"item"`
}

// CreateSummary generates the narrative report. An empty body summarizes
// the whole inventory.
func (h *InventoryHandler) CreateSummary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.Summarize(c.Request.Context(), domain.Selection{Location: req.Location, Item: req.Item})
	if err != nil {
		serverError(c, "failed to load inventory data", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func serverError(c *gin.Context, message string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
}
