package enrollments

import (
	"net/http"
	"time"

	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateFormat = "2006-01-02"

// Handler handles enrollment requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new enrollments handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateEnrollmentRequest represents the request to enroll a subscriber in a group
type CreateEnrollmentRequest struct {
	SubscriberID       string `json:"subscriber_id" binding:"required"`
	AssignedChitNumber int    `json:"assigned_chit_number" binding:"required"`
	JoinDate           string `json:"join_date" binding:"required"` // YYYY-MM-DD
}

// EnrollmentResponse represents an enrollment in API responses, joined with
// the subscriber's name and phone for display
type EnrollmentResponse struct {
	ID                 string `json:"id"`
	SubscriberID       string `json:"subscriber_id"`
	SubscriberName     string `json:"subscriber_name"`
	SubscriberPhone    string `json:"subscriber_phone"`
	GroupID            string `json:"group_id"`
	AssignedChitNumber int    `json:"assigned_chit_number"`
	JoinDate           string `json:"join_date"`
}

func toResponse(e models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:                 e.ID.String(),
		SubscriberID:       e.SubscriberID.String(),
		SubscriberName:     e.Subscriber.Name,
		SubscriberPhone:    e.Subscriber.PhoneNumber,
		GroupID:            e.GroupID.String(),
		AssignedChitNumber: e.AssignedChitNumber,
		JoinDate:           e.JoinDate.Format(dateFormat),
	}
}

// Create enrolls a subscriber in a chit group with an assigned chit number.
// The two uniqueness rules (one enrollment per subscriber per group, one
// subscriber per chit number) are checked separately so each failure gets its
// own message; the unique indexes on enrollments still catch a racing insert.
// @Summary Enroll a subscriber
// @Description Enroll an active subscriber in an active group with an assigned chit number
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body CreateEnrollmentRequest true "Enrollment details"
// @Success 201 {object} EnrollmentResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Group or subscriber not found"
// @Failure 409 {object} map[string]string "Already enrolled or chit number taken"
// @Security BearerAuth
// @Router /groups/{id}/enrollments [post]
func (h *Handler) Create(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscriberID, err := uuid.Parse(req.SubscriberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscriber ID"})
		return
	}

	joinDate, err := time.Parse(dateFormat, req.JoinDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid join date, expected YYYY-MM-DD"})
		return
	}

	var group models.ChitGroup
	if err := h.db.Where("id = ?", groupID).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if !group.IsActive {
		c.JSON(http.StatusConflict, gin.H{"error": "Group is no longer active"})
		return
	}

	if req.AssignedChitNumber < 1 || req.AssignedChitNumber > group.NumberOfSubscribers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chit number must be between 1 and the group's subscriber count"})
		return
	}

	var subscriber models.Subscriber
	if err := h.db.Where("id = ?", subscriberID).First(&subscriber).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}
	if !subscriber.IsActive {
		c.JSON(http.StatusConflict, gin.H{"error": "Subscriber is no longer active"})
		return
	}

	var existing models.Enrollment
	if err := h.db.Where("subscriber_id = ? AND group_id = ?", subscriberID, groupID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Subscriber is already enrolled in this group"})
		return
	}
	if err := h.db.Where("group_id = ? AND assigned_chit_number = ?", groupID, req.AssignedChitNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Chit number is already taken in this group"})
		return
	}

	enrollment := models.Enrollment{
		SubscriberID:       subscriberID,
		GroupID:            groupID,
		AssignedChitNumber: req.AssignedChitNumber,
		JoinDate:           joinDate,
	}

	if err := h.db.Create(&enrollment).Error; err != nil {
		// Lost a race with a concurrent enrollment; the unique index fired.
		c.JSON(http.StatusConflict, gin.H{"error": "Subscriber is already enrolled or the chit number is taken"})
		return
	}

	enrollment.Subscriber = subscriber
	c.JSON(http.StatusCreated, toResponse(enrollment))
}

// ListByGroup returns all enrollments for a group ordered by chit number
// @Summary List enrollments for a group
// @Description Get all enrollments for a group with subscriber details, ordered by chit number
// @Tags enrollments
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} EnrollmentResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/enrollments [get]
func (h *Handler) ListByGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.ChitGroup
	if err := h.db.Where("id = ?", groupID).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var enrollments []models.Enrollment
	if err := h.db.Preload("Subscriber").
		Where("group_id = ?", groupID).
		Order("assigned_chit_number ASC").
		Find(&enrollments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch enrollments"})
		return
	}

	responses := make([]EnrollmentResponse, len(enrollments))
	for i, e := range enrollments {
		responses[i] = toResponse(e)
	}

	c.JSON(http.StatusOK, responses)
}

// RegisterRoutes registers enrollment routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/groups/:id/enrollments", h.Create)
	rg.GET("/groups/:id/enrollments", h.ListByGroup)
}
