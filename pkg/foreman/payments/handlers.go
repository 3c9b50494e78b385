package payments

import (
	"net/http"
	"time"

	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler handles installment payment requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new payments handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreatePaymentRequest represents the request to record a payment
type CreatePaymentRequest struct {
	SubscriberID string  `json:"subscriber_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	Notes        string  `json:"notes"`
}

// PaymentResponse represents a payment in API responses, joined with the
// subscriber's name for display
type PaymentResponse struct {
	ID             string  `json:"id"`
	InstallmentID  string  `json:"installment_id"`
	SubscriberID   string  `json:"subscriber_id"`
	SubscriberName string  `json:"subscriber_name"`
	PaymentDate    string  `json:"payment_date"`
	AmountPaid     float64 `json:"amount_paid"`
	Notes          string  `json:"notes,omitempty"`
}

func toResponse(p models.InstallmentPayment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID.String(),
		InstallmentID:  p.InstallmentID.String(),
		SubscriberID:   p.SubscriberID.String(),
		SubscriberName: p.Subscriber.Name,
		PaymentDate:    p.PaymentDate.Format("2006-01-02T15:04:05Z"),
		AmountPaid:     p.AmountPaid,
		Notes:          p.Notes,
	}
}

// Create records a payment against an installment. Any positive amount is
// accepted and appended: there is no check that the subscriber is enrolled in
// the installment's group, and no comparison against an expected share, so a
// subscriber may pay in several partial amounts.
// TODO: mark the installment completed once every enrolled subscriber has paid
// @Summary Record a payment
// @Description Record a payment from a subscriber against an installment
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Installment ID"
// @Param request body CreatePaymentRequest true "Payment details"
// @Success 201 {object} PaymentResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Installment or subscriber not found"
// @Security BearerAuth
// @Router /installments/{id}/payments [post]
func (h *Handler) Create(c *gin.Context) {
	installmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid installment ID"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	subscriberID, err := uuid.Parse(req.SubscriberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscriber ID"})
		return
	}

	var installment models.Installment
	if err := h.db.Where("id = ?", installmentID).First(&installment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		return
	}

	var subscriber models.Subscriber
	if err := h.db.Where("id = ?", subscriberID).First(&subscriber).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	payment := models.InstallmentPayment{
		InstallmentID: installmentID,
		SubscriberID:  subscriberID,
		PaymentDate:   time.Now(),
		AmountPaid:    req.Amount,
		Notes:         req.Notes,
	}

	if err := h.db.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	payment.Subscriber = subscriber
	c.JSON(http.StatusCreated, toResponse(payment))
}

// ListByInstallment returns all payments for an installment in payment order
// @Summary List payments for an installment
// @Description Get all payments recorded against an installment, earliest first
// @Tags payments
// @Produce json
// @Param id path string true "Installment ID"
// @Success 200 {array} PaymentResponse
// @Failure 404 {object} map[string]string "Installment not found"
// @Security BearerAuth
// @Router /installments/{id}/payments [get]
func (h *Handler) ListByInstallment(c *gin.Context) {
	installmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid installment ID"})
		return
	}

	var installment models.Installment
	if err := h.db.Where("id = ?", installmentID).First(&installment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		return
	}

	var payments []models.InstallmentPayment
	if err := h.db.Preload("Subscriber").
		Where("installment_id = ?", installmentID).
		Order("payment_date ASC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = toResponse(p)
	}

	c.JSON(http.StatusOK, responses)
}

// RegisterRoutes registers payment routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/installments/:id/payments", h.Create)
	rg.GET("/installments/:id/payments", h.ListByInstallment)
}
