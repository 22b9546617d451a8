package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cleanerRepo "maidly/database/repository/cleaner"
	"maidly/models"
	"maidly/utils"
)

// CleanerHandler exposes cleaner admin CRUD.
type CleanerHandler struct {
	Repo cleanerRepo.CleanerRepository
}

func NewCleanerHandler(repo cleanerRepo.CleanerRepository) *CleanerHandler {
	return &CleanerHandler{Repo: repo}
}

// Create handles POST /api/admin/cleaners.
func (h *CleanerHandler) Create(c *gin.Context) {
	var input models.Cleaner
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &input); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create cleaner", err.Error())
		return
	}
	c.JSON(http.StatusCreated, input)
}

// Get handles GET /api/admin/cleaners/:id.
func (h *CleanerHandler) Get(c *gin.Context) {
	cleaner, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch cleaner", err.Error())
		return
	}
	if cleaner == nil {
		utils.JSONError(c, http.StatusNotFound, "cleaner not found", "")
		return
	}
	c.JSON(http.StatusOK, cleaner)
}

// Update handles PUT /api/admin/cleaners/:id.
func (h *CleanerHandler) Update(c *gin.Context) {
	var input models.Cleaner
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.ID = c.Param("id")

	if err := h.Repo.Update(c.Request.Context(), &input); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update cleaner", err.Error())
		return
	}
	c.JSON(http.StatusOK, input)
}

// List handles GET /api/admin/cleaners.
func (h *CleanerHandler) List(c *gin.Context) {
	cleaners, err := h.Repo.ListActive(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list cleaners", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleaners": cleaners})
}
