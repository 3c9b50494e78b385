package groups

import (
	"net/http"
	"time"

	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateFormat = "2006-01-02"

// Handler handles chit group requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateGroupRequest represents the request to create a chit group
type CreateGroupRequest struct {
	Name                        string   `json:"name" binding:"required"`
	Value                       float64  `json:"value" binding:"required"`
	NumberOfSubscribers         int      `json:"number_of_subscribers" binding:"required"`
	Duration                    int      `json:"duration" binding:"required"`
	StartDate                   string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	ForemanCommissionPercentage *float64 `json:"foreman_commission_percentage"`
}

// GroupResponse represents a chit group in API responses
type GroupResponse struct {
	ID                          string   `json:"id"`
	Name                        string   `json:"name"`
	Value                       float64  `json:"value"`
	NumberOfSubscribers         int      `json:"number_of_subscribers"`
	Duration                    int      `json:"duration"`
	StartDate                   string   `json:"start_date"`
	ForemanCommissionPercentage *float64 `json:"foreman_commission_percentage,omitempty"`
	IsActive                    bool     `json:"is_active"`
}

func toResponse(g models.ChitGroup) GroupResponse {
	return GroupResponse{
		ID:                          g.ID.String(),
		Name:                        g.Name,
		Value:                       g.Value,
		NumberOfSubscribers:         g.NumberOfSubscribers,
		Duration:                    g.Duration,
		StartDate:                   g.StartDate.Format(dateFormat),
		ForemanCommissionPercentage: g.ForemanCommissionPercentage,
		IsActive:                    g.IsActive,
	}
}

// Create creates a new chit group
// @Summary Create a chit group
// @Description Create a new chit group with a value, subscriber count, duration and start date
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Value <= 0 || req.NumberOfSubscribers <= 0 || req.Duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value, number of subscribers and duration must be positive"})
		return
	}

	startDate, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}

	group := models.ChitGroup{
		Name:                        req.Name,
		Value:                       req.Value,
		NumberOfSubscribers:         req.NumberOfSubscribers,
		Duration:                    req.Duration,
		StartDate:                   startDate,
		ForemanCommissionPercentage: req.ForemanCommissionPercentage,
		IsActive:                    true,
	}

	if err := h.db.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(group))
}

// List returns all active chit groups
// @Summary List chit groups
// @Description Get all active chit groups, newest start date first
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *Handler) List(c *gin.Context) {
	var groups []models.ChitGroup
	if err := h.db.Where("is_active = ?", true).Order("start_date DESC, name ASC").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = toResponse(g)
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns a single chit group by ID
// @Summary Get a chit group
// @Description Get a chit group by its ID, whether active or not
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} GroupResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.ChitGroup
	if err := h.db.Where("id = ?", id).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	c.JSON(http.StatusOK, toResponse(group))
}

// Deactivate soft-deactivates a chit group. Groups are never hard-deleted so
// their enrollments, installments and payments stay queryable.
// @Summary Deactivate a chit group
// @Description Mark a chit group inactive; its records are kept
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} map[string]string "Group deactivated"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.ChitGroup
	if err := h.db.Where("id = ?", id).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if err := h.db.Model(&group).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deactivated"})
}

// RegisterRoutes registers group routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/groups", h.Create)
	rg.GET("/groups", h.List)
	rg.GET("/groups/:id", h.Get)
	rg.DELETE("/groups/:id", h.Deactivate)
}
