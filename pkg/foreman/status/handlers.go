package status

import (
	"net/http"
	"strconv"

	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler handles dues and status requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new status handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// StatusRow represents one enrolled subscriber's payment state for an installment
type StatusRow struct {
	SubscriberID       string  `json:"subscriber_id"`
	SubscriberName     string  `json:"subscriber_name"`
	AssignedChitNumber int     `json:"assigned_chit_number"`
	Status             string  `json:"status"` // "Paid" or "Due"
	AmountPaid         float64 `json:"amount_paid"`
}

// GetForInstallment returns the dues board for one month of a group: one row
// per enrollment ordered by chit number. A subscriber counts as Paid when at
// least one payment row exists for them against the installment; the amount
// shown is the sum of all their payments for it, so partial payments still
// read Paid. If the month has no installment the board is empty, not an error.
// @Summary Payment status for an installment
// @Description Get Paid/Due status for every enrolled subscriber for a given month of a group
// @Tags status
// @Produce json
// @Param id path string true "Group ID"
// @Param month query int true "Month number (1-based)"
// @Success 200 {array} StatusRow
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/status [get]
func (h *Handler) GetForInstallment(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month number"})
		return
	}

	var group models.ChitGroup
	if err := h.db.Where("id = ?", groupID).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var installment models.Installment
	if err := h.db.Where("group_id = ? AND month_number = ?", groupID, month).First(&installment).Error; err != nil {
		// No installment for this month yet; an empty board, not an error.
		c.JSON(http.StatusOK, []StatusRow{})
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

	rows := make([]StatusRow, len(enrollments))
	for i, e := range enrollments {
		var paymentCount int64
		h.db.Model(&models.InstallmentPayment{}).
			Where("installment_id = ? AND subscriber_id = ?", installment.ID, e.SubscriberID).
			Count(&paymentCount)

		row := StatusRow{
			SubscriberID:       e.SubscriberID.String(),
			SubscriberName:     e.Subscriber.Name,
			AssignedChitNumber: e.AssignedChitNumber,
			Status:             "Due",
		}

		if paymentCount > 0 {
			var total float64
			h.db.Model(&models.InstallmentPayment{}).
				Where("installment_id = ? AND subscriber_id = ?", installment.ID, e.SubscriberID).
				Select("COALESCE(SUM(amount_paid), 0)").
				Scan(&total)
			row.Status = "Paid"
			row.AmountPaid = total
		}

		rows[i] = row
	}

	c.JSON(http.StatusOK, rows)
}

// RegisterRoutes registers status routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups/:id/status", h.GetForInstallment)
}
