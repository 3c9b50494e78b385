package subscribers

import (
	"net/http"

	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler handles subscriber requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new subscribers handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateSubscriberRequest represents the request to register a subscriber
type CreateSubscriberRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address"`
}

// SubscriberResponse represents a subscriber in API responses
type SubscriberResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address,omitempty"`
	CreatedAt   string `json:"created_at"`
	IsActive    bool   `json:"is_active"`
}

func toResponse(s models.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		IsActive:    s.IsActive,
	}
}

// Create registers a new subscriber
// @Summary Register a subscriber
// @Description Register a new subscriber; phone numbers must be unique among active subscribers
// @Tags subscribers
// @Accept json
// @Produce json
// @Param request body CreateSubscriberRequest true "Subscriber details"
// @Success 201 {object} SubscriberResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Phone number already registered"
// @Security BearerAuth
// @Router /subscribers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Phone uniqueness applies to active subscribers only; a deactivated
	// subscriber's number may be reused.
	var existing models.Subscriber
	if err := h.db.Where("phone_number = ? AND is_active = ?", req.PhoneNumber, true).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone number '" + req.PhoneNumber + "' already belongs to an active subscriber"})
		return
	}

	subscriber := models.Subscriber{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		IsActive:    true,
	}

	if err := h.db.Create(&subscriber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscriber"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(subscriber))
}

// List returns all active subscribers ordered by name
// @Summary List subscribers
// @Description Get all active subscribers ordered by name
// @Tags subscribers
// @Produce json
// @Success 200 {array} SubscriberResponse
// @Security BearerAuth
// @Router /subscribers [get]
func (h *Handler) List(c *gin.Context) {
	var subs []models.Subscriber
	if err := h.db.Where("is_active = ?", true).Order("name ASC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscribers"})
		return
	}

	responses := make([]SubscriberResponse, len(subs))
	for i, s := range subs {
		responses[i] = toResponse(s)
	}

	c.JSON(http.StatusOK, responses)
}

// Deactivate soft-deactivates a subscriber, freeing their phone number for reuse
// @Summary Deactivate a subscriber
// @Description Mark a subscriber inactive; enrollment and payment history is kept
// @Tags subscribers
// @Produce json
// @Param id path string true "Subscriber ID"
// @Success 200 {object} map[string]string "Subscriber deactivated"
// @Failure 404 {object} map[string]string "Subscriber not found"
// @Security BearerAuth
// @Router /subscribers/{id} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscriber ID"})
		return
	}

	var subscriber models.Subscriber
	if err := h.db.Where("id = ?", id).First(&subscriber).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	if err := h.db.Model(&subscriber).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate subscriber"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriber deactivated"})
}

// RegisterRoutes registers subscriber routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscribers", h.Create)
	rg.GET("/subscribers", h.List)
	rg.DELETE("/subscribers/:id", h.Deactivate)
}
