package installments

import (
	"net/http"

	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateFormat = "2006-01-02"

// Handler handles installment requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new installments handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID                 string   `json:"id"`
	GroupID            string   `json:"group_id"`
	MonthNumber        int      `json:"month_number"`
	DueDate            string   `json:"due_date"`
	IsAuctionConducted bool     `json:"is_auction_conducted"`
	AuctionPrizeAmount *float64 `json:"auction_prize_amount,omitempty"`
	AuctionWinnerID    *string  `json:"auction_winner_id,omitempty"`
	IsCompleted        bool     `json:"is_completed"`
}

// GenerateResponse represents the result of schedule generation
type GenerateResponse struct {
	Generated    int                   `json:"generated"`
	Installments []InstallmentResponse `json:"installments"`
}

// RecordAuctionRequest represents the request to record an auction outcome
type RecordAuctionRequest struct {
	PrizeAmount *float64 `json:"prize_amount"`
	WinnerID    string   `json:"winner_id" binding:"required"`
	Completed   bool     `json:"completed"`
}

func toResponse(i models.Installment) InstallmentResponse {
	resp := InstallmentResponse{
		ID:                 i.ID.String(),
		GroupID:            i.GroupID.String(),
		MonthNumber:        i.MonthNumber,
		DueDate:            i.DueDate.Format(dateFormat),
		IsAuctionConducted: i.IsAuctionConducted,
		AuctionPrizeAmount: i.AuctionPrizeAmount,
		IsCompleted:        i.IsCompleted,
	}
	if i.AuctionWinnerID != nil {
		winner := i.AuctionWinnerID.String()
		resp.AuctionWinnerID = &winner
	}
	return resp
}

// Generate creates the full installment schedule for a group in one shot.
// Generation is guarded, not idempotent: if any installment already exists
// for the group the call is rejected and nothing changes. All rows are
// inserted in a single transaction so a failure leaves the guard consistent
// with "no installments exist".
// @Summary Generate installments for a group
// @Description Create one installment per month of the group's duration, due dates stepping a calendar month at a time from the start date
// @Tags installments
// @Produce json
// @Param id path string true "Group ID"
// @Success 201 {object} GenerateResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 409 {object} map[string]string "Installments already generated"
// @Security BearerAuth
// @Router /groups/{id}/installments/generate [post]
func (h *Handler) Generate(c *gin.Context) {
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

	var count int64
	if err := h.db.Model(&models.Installment{}).Where("group_id = ?", groupID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing installments"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Installments already exist for this group. Cannot regenerate."})
		return
	}

	schedule := buildSchedule(group.StartDate, group.Duration)
	installments := make([]models.Installment, group.Duration)
	for idx, dueDate := range schedule {
		installments[idx] = models.Installment{
			GroupID:     groupID,
			MonthNumber: idx + 1,
			DueDate:     dueDate,
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		for idx := range installments {
			if err := tx.Create(&installments[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate installments"})
		return
	}

	responses := make([]InstallmentResponse, len(installments))
	for i, inst := range installments {
		responses[i] = toResponse(inst)
	}

	c.JSON(http.StatusCreated, GenerateResponse{
		Generated:    len(installments),
		Installments: responses,
	})
}

// ListByGroup returns all installments for a group ordered by month number
// @Summary List installments for a group
// @Description Get all installments for a group ordered by month number
// @Tags installments
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} InstallmentResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/installments [get]
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

	var installments []models.Installment
	if err := h.db.Where("group_id = ?", groupID).Order("month_number ASC").Find(&installments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch installments"})
		return
	}

	responses := make([]InstallmentResponse, len(installments))
	for i, inst := range installments {
		responses[i] = toResponse(inst)
	}

	c.JSON(http.StatusOK, responses)
}

// RecordAuction records the auction outcome for an installment. The winner
// must be enrolled in the installment's group.
// @Summary Record an auction outcome
// @Description Mark an installment's auction as conducted with its prize amount and winner
// @Tags installments
// @Accept json
// @Produce json
// @Param id path string true "Installment ID"
// @Param request body RecordAuctionRequest true "Auction outcome"
// @Success 200 {object} InstallmentResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 409 {object} map[string]string "Winner not enrolled or auction already recorded"
// @Security BearerAuth
// @Router /installments/{id}/auction [put]
func (h *Handler) RecordAuction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid installment ID"})
		return
	}

	var req RecordAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PrizeAmount != nil && *req.PrizeAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prize amount must be positive"})
		return
	}

	winnerID, err := uuid.Parse(req.WinnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid winner ID"})
		return
	}

	var installment models.Installment
	if err := h.db.Where("id = ?", id).First(&installment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		return
	}

	if installment.IsAuctionConducted {
		c.JSON(http.StatusConflict, gin.H{"error": "Auction already recorded for this installment"})
		return
	}

	var enrollment models.Enrollment
	if err := h.db.Where("subscriber_id = ? AND group_id = ?", winnerID, installment.GroupID).First(&enrollment).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Winner is not enrolled in this group"})
		return
	}

	updates := map[string]interface{}{
		"is_auction_conducted": true,
		"auction_winner_id":    winnerID,
		"is_completed":         req.Completed,
	}
	if req.PrizeAmount != nil {
		updates["auction_prize_amount"] = *req.PrizeAmount
	}

	if err := h.db.Model(&installment).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record auction"})
		return
	}

	installment.IsAuctionConducted = true
	installment.AuctionWinnerID = &winnerID
	installment.AuctionPrizeAmount = req.PrizeAmount
	installment.IsCompleted = req.Completed

	c.JSON(http.StatusOK, toResponse(installment))
}

// RegisterRoutes registers installment routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/groups/:id/installments/generate", h.Generate)
	rg.GET("/groups/:id/installments", h.ListByGroup)
	rg.PUT("/installments/:id/auction", h.RecordAuction)
}
