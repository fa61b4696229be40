package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prasetyowira/stockcast/backend-go/internal/forecast"
	"github.com/prasetyowira/stockcast/backend-go/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) parseSettings(c *gin.Context) (forecast.Settings, error) {
	settings := forecast.DefaultSettings()

	algorithm, err := forecast.ParseAlgorithm(strings.TrimSpace(c.Query("algorithm")))
	if err != nil {
		return settings, err
	}
	settings.Algorithm = algorithm

	if periods, err := strconv.Atoi(c.DefaultQuery("periods", "30")); err == nil && periods > 0 {
		settings.Periods = periods
	}

	if conf, err := strconv.ParseFloat(c.Query("confidence_level"), 64); err == nil && conf > 0 && conf < 1 {
		settings.ConfidenceLevel = conf
	}

	if window, err := strconv.Atoi(c.Query("window")); err == nil && window > 0 {
		settings.SMAWindow = window
	}

	return settings, nil
}

func (h *ForecastHandler) GetForecast(c *gin.Context) {
	settings, err := h.parseSettings(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID := c.Param("productId")
	warehouseID := strings.TrimSpace(c.Query("warehouse_id"))

	result, err := h.service.GetForecast(c.Request.Context(), productID, warehouseID, settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute forecast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result.Forecast)
}

func (h *ForecastHandler) CompareAlgorithms(c *gin.Context) {
	settings, err := h.parseSettings(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID := c.Param("productId")
	warehouseID := strings.TrimSpace(c.Query("warehouse_id"))

	comparisons, err := h.service.CompareAlgorithms(c.Request.Context(), productID, warehouseID, settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compare algorithms", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparisons": comparisons})
}

func (h *ForecastHandler) GetChart(c *gin.Context) {
	settings, err := h.parseSettings(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID := c.Param("productId")
	warehouseID := strings.TrimSpace(c.Query("warehouse_id"))

	points, err := h.service.GetChart(c.Request.Context(), productID, warehouseID, settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (h *ForecastHandler) BatchForecast(c *gin.Context) {
	settings, err := h.parseSettings(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		ProductIDs  []string `json:"product_ids" binding:"required"`
		WarehouseID string   `json:"warehouse_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	forecasts, err := h.service.BatchForecast(c.Request.Context(), req.ProductIDs, req.WarehouseID, settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute forecasts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
}
