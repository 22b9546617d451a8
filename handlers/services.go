package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	serviceRepo "maidly/database/repository/service"
	"maidly/models"
	"maidly/utils"
)

// ServiceHandler exposes the service catalog.
type ServiceHandler struct {
	Repo serviceRepo.ServiceRepository
}

func NewServiceHandler(repo serviceRepo.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{Repo: repo}
}

// List handles GET /api/services.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.Repo.ListActive(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListALaCarte handles GET /api/services/a-la-carte.
func (h *ServiceHandler) ListALaCarte(c *gin.Context) {
	services, err := h.Repo.ListALaCarte(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list a-la-carte services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// Upsert handles PUT /api/admin/services.
func (h *ServiceHandler) Upsert(c *gin.Context) {
	var input models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Repo.Upsert(c.Request.Context(), &input); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to upsert service", err.Error())
		return
	}
	c.JSON(http.StatusOK, input)
}
