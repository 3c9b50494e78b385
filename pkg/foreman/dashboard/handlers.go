package dashboard

import (
	"net/http"

	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles dashboard requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new dashboard handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// StatsResponse represents the dashboard quick stats
type StatsResponse struct {
	ActiveGroups      int64 `json:"active_groups"`
	ActiveSubscribers int64 `json:"active_subscribers"`
	TotalEnrollments  int64 `json:"total_enrollments"`
	TotalPayments     int64 `json:"total_payments"`
}

// GetStats returns counts of active groups, active subscribers, enrollments and payments
// @Summary Dashboard stats
// @Description Get quick counts for the dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} StatsResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	var stats StatsResponse

	if err := h.db.Model(&models.ChitGroup{}).Where("is_active = ?", true).Count(&stats.ActiveGroups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := h.db.Model(&models.Subscriber{}).Where("is_active = ?", true).Count(&stats.ActiveSubscribers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := h.db.Model(&models.Enrollment{}).Count(&stats.TotalEnrollments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := h.db.Model(&models.InstallmentPayment{}).Count(&stats.TotalPayments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers dashboard routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.GetStats)
}
