package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

// PayoutHandler handles HTTP requests for payouts.
type PayoutHandler struct {
	payoutService  *service.PayoutService
	receiptService *service.ReceiptService
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(payoutService *service.PayoutService, receiptService *service.ReceiptService) *PayoutHandler {
	return &PayoutHandler{
		payoutService:  payoutService,
		receiptService: receiptService,
	}
}

// PayoutResponse is the payout representation returned to clients.
type PayoutResponse struct {
	ID              string `json:"id"`
	BookingID       string `json:"booking_id"`
	BookingPrice    int64  `json:"booking_price"`
	AdminCommission int64  `json:"admin_commission"`
	DealerAmount    int64  `json:"dealer_amount"`
	DriverAmount    int64  `json:"driver_amount"`
	DealerID        string `json:"dealer_id,omitempty"`
	DriverID        string `json:"driver_id"`
	ProcessedBy     string `json:"processed_by,omitempty"`
	Status          string `json:"status"`
	ProcessedAt     string `json:"processed_at,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// GetPayout handles GET /v1/payouts/:id
func (h *PayoutHandler) GetPayout(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	payout, err := h.payoutService.GetPayout(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPayoutResponse(payout))
}

// ListPayouts handles GET /v1/payouts
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	payouts, err := h.payoutService.ListPayouts(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PayoutResponse, 0, len(payouts))
	for _, p := range payouts {
		response = append(response, toPayoutResponse(p))
	}
	respondJSON(c, http.StatusOK, response)
}

// ProcessPayout handles POST /v1/payouts/:id/process
func (h *PayoutHandler) ProcessPayout(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	payout, err := h.payoutService.ProcessPayout(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPayoutResponse(payout))
}

// GetStatement handles GET /v1/payouts/:id/statement
func (h *PayoutHandler) GetStatement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	pdf, filename, err := h.receiptService.PayoutStatement(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func toPayoutResponse(p *domain.Payout) PayoutResponse {
	response := PayoutResponse{
		ID:              p.ID,
		BookingID:       p.BookingID,
		BookingPrice:    p.BookingPrice,
		AdminCommission: p.AdminCommission,
		DealerAmount:    p.DealerAmount,
		DriverAmount:    p.DriverAmount,
		DealerID:        p.DealerID,
		DriverID:        p.DriverID,
		ProcessedBy:     p.ProcessedBy,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
	if !p.ProcessedAt.IsZero() {
		response.ProcessedAt = p.ProcessedAt.Format(time.RFC3339)
	}
	return response
}
