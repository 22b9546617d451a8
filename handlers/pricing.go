package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maidly/models"
	"maidly/services/booking"
	"maidly/utils"
)

// PricingHandler exposes quote computation.
type PricingHandler struct {
	Engine booking.Engine
}

func NewPricingHandler(engine booking.Engine) *PricingHandler {
	return &PricingHandler{Engine: engine}
}

// Quote handles POST /api/pricing/quote. Pure computation, no side effects:
// supplying a promo code previews the discount without touching the ledger.
func (h *PricingHandler) Quote(c *gin.Context) {
	var input models.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	quote, err := h.Engine.Quote(c.Request.Context(), input)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
