package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/prasetyowira/stockcast/backend-go/internal/reorder"
	"github.com/prasetyowira/stockcast/backend-go/internal/repository/postgres"
	"github.com/prasetyowira/stockcast/backend-go/internal/service"
)

type ReorderHandler struct {
	service *service.ReorderService
}

func NewReorderHandler(service *service.ReorderService) *ReorderHandler {
	return &ReorderHandler{service: service}
}

func (h *ReorderHandler) GetSuggestions(c *gin.Context) {
	warehouseID := strings.TrimSpace(c.Query("warehouse_id"))

	suggestions, err := h.service.GetSuggestions(c.Request.Context(), warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

func (h *ReorderHandler) Consolidate(c *gin.Context) {
	var req struct {
		WarehouseID string `json:"warehouse_id"`
		Policy      string `json:"shortfall_policy"`
		Persist     bool   `json:"persist"`
		Export      bool   `json:"export"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy := reorder.DropBelowMinimum
	switch strings.ToLower(strings.TrimSpace(req.Policy)) {
	case "", "drop":
	case "top_up":
		policy = reorder.TopUpToMinimum
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "shortfall_policy must be 'drop' or 'top_up'"})
		return
	}

	drafts, err := h.service.Consolidate(c.Request.Context(), req.WarehouseID, policy, req.Persist)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to consolidate suggestions", "details": err.Error()})
		return
	}

	response := gin.H{
		"drafts": drafts,
		"total":  len(drafts),
	}

	if req.Export && len(drafts) > 0 {
		key, err := h.service.ExportDrafts(c.Request.Context(), drafts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export drafts", "details": err.Error()})
			return
		}
		response["export_key"] = key
	}

	c.JSON(http.StatusOK, response)
}

func (h *ReorderHandler) ListDrafts(c *gin.Context) {
	warehouseID := strings.TrimSpace(c.Query("warehouse_id"))

	drafts, err := h.service.ListDrafts(c.Request.Context(), warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list drafts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drafts": drafts, "total": len(drafts)})
}

func (h *ReorderHandler) SuggestRule(c *gin.Context) {
	productID := c.Param("productId")
	warehouseID := strings.TrimSpace(c.Query("warehouse_id"))

	rule, err := h.service.SuggestRule(c.Request.Context(), productID, warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suggest rule", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *ReorderHandler) ListRules(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("product_id"))
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	rules, err := h.service.ListRules(c.Request.Context(), productID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rules", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules, "total": len(rules)})
}

func (h *ReorderHandler) GetRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	rule, err := h.service.GetRule(c.Request.Context(), id)
	if errors.Is(err, postgres.ErrRuleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rule", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *ReorderHandler) CreateRule(c *gin.Context) {
	var rule domain.ReorderRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CreateRule(c.Request.Context(), &rule); err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (h *ReorderHandler) UpdateRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	var rule domain.ReorderRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rule.ID = id

	if err := h.service.UpdateRule(c.Request.Context(), &rule); err != nil {
		if errors.Is(err, postgres.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}

func (h *ReorderHandler) DeleteRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), id); err != nil {
		if errors.Is(err, postgres.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rule", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
