package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/server/middleware"
	"resume-ai-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the payments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches payment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create-order", h.createOrder)
	rg.POST("/verify-payment", h.verifyPayment)
}

type createOrderRequest struct {
	ResumeID string `json:"resumeId"`
	Amount   int64  `json:"amount"`
}

func (h *Handler) createOrder(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Resume ID and amount are required", nil)
		return
	}
	if req.ResumeID == "" || req.Amount <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Resume ID and amount are required", nil)
		return
	}
	c.Set("resumeId", req.ResumeID)

	order, err := h.Svc.IssueOrder(c.Request.Context(), userID, req.ResumeID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Resume ID and amount are required", nil)
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Resume not found or you do not have permission to access it.", nil)
		case errors.Is(err, ErrAlreadyPurchased):
			respond.Error(c, http.StatusBadRequest, "already_purchased", "Analysis for this resume has already been purchased.", nil)
		case errors.Is(err, ErrGateway):
			respond.Error(c, http.StatusInternalServerError, "gateway_error", "Something went wrong", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.", nil)
		}
		return
	}

	c.Set("orderId", order.ID)
	respond.OK(c, order)
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	ResumeID  string `json:"resumeId"`
}

func (h *Handler) verifyPayment(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required payment details", nil)
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" || req.ResumeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required payment details", nil)
		return
	}
	c.Set("resumeId", req.ResumeID)
	c.Set("orderId", req.OrderID)

	receipt, err := h.Svc.VerifyPayment(c.Request.Context(), userID, Proof{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		ResumeID:  req.ResumeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required payment details", nil)
		case errors.Is(err, ErrSignatureMismatch):
			respond.Error(c, http.StatusBadRequest, "signature_mismatch", "Payment verification failed. Invalid signature.", nil)
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Resume not found or you do not have permission to access it.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.", nil)
		}
		return
	}

	respond.OK(c, receipt)
}
