package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	promoRepo "maidly/database/repository/promo"
	"maidly/models"
	"maidly/services/promo"
	"maidly/utils"
)

// PromoHandler exposes promo validation and admin management.
type PromoHandler struct {
	Validator *promo.Validator
	Repo      promoRepo.PromoRepository
}

func NewPromoHandler(validator *promo.Validator, repo promoRepo.PromoRepository) *PromoHandler {
	return &PromoHandler{Validator: validator, Repo: repo}
}

// Validate handles POST /api/promo/validate. Validation only: never writes
// usage, so the "preview discount" UI can call it freely.
func (h *PromoHandler) Validate(c *gin.Context) {
	var input struct {
		Code       string  `json:"code"`
		CustomerID string  `json:"customer_id" binding:"required"`
		Subtotal   float64 `json:"subtotal"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Validator.Validate(c.Request.Context(), input.Code, input.CustomerID, input.Subtotal)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "promo validation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create handles POST /api/admin/promos.
func (h *PromoHandler) Create(c *gin.Context) {
	var input models.PromoCode
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &input); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create promo code", err.Error())
		return
	}
	c.JSON(http.StatusCreated, input)
}

// Deactivate handles POST /api/admin/promos/:id/deactivate.
func (h *PromoHandler) Deactivate(c *gin.Context) {
	if err := h.Repo.SetActive(c.Request.Context(), c.Param("id"), false); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to deactivate promo code", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// Usage handles GET /api/admin/promos/:id/usage.
func (h *PromoHandler) Usage(c *gin.Context) {
	usages, err := h.Repo.ListUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list promo usage", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usages, "count": len(usages)})
}
