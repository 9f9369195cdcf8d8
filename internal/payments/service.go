package payments

import (
	"context"
	"fmt"
	"strings"

	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/metrics"
	"resume-ai-backend/internal/shared/telemetry"
)

// Proof is the caller-supplied payment proof from the gateway callback.
// It exists only for the duration of a single verification.
type Proof struct {
	OrderID   string
	PaymentID string
	Signature string
	ResumeID  string
}

// Receipt confirms a verified payment. Not persisted.
type Receipt struct {
	Message   string `json:"message"`
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
}

const receiptMessage = "Payment successful! Resume analysis has been unlocked."

// Service implements order issuance and payment verification for the paid
// resume-analysis feature. Secret is the HMAC key shared with the gateway;
// it is injected at construction and never read from ambient process state.
type Service struct {
	Resumes  resumes.Repo
	Gateway  Gateway
	Secret   []byte
	Currency string
}

// IssueOrder mints a payable order for an owned, not-yet-purchased resume.
// Nothing is persisted locally; the gateway order is passed through to the
// caller.
func (s *Service) IssueOrder(ctx context.Context, userID, resumeID string, amount int64) (Order, error) {
	if strings.TrimSpace(resumeID) == "" || amount <= 0 {
		return Order{}, ErrInvalidInput
	}

	resume, err := s.Resumes.GetByOwner(ctx, resumeID, userID)
	if err != nil {
		return Order{}, err
	}
	if resume.AnalysisPurchased {
		return Order{}, ErrAlreadyPurchased
	}

	if s.Gateway == nil {
		return Order{}, fmt.Errorf("%w: no gateway configured", ErrGateway)
	}

	currency := s.Currency
	if currency == "" {
		currency = "INR"
	}
	order, err := s.Gateway.CreateOrder(ctx, OrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  "receipt_resume_" + resumeID,
		Notes: map[string]string{
			"resumeId": resumeID,
			"userId":   userID,
		},
	})
	if err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if order.ID == "" {
		return Order{}, fmt.Errorf("%w: gateway returned no order", ErrGateway)
	}

	metrics.IncOrderIssued()
	telemetry.Info("payment.order_issued", map[string]any{
		"order_id":  order.ID,
		"resume_id": resumeID,
		"amount":    amount,
		"currency":  currency,
	})
	return order, nil
}

// VerifyPayment recomputes the callback signature and, on an exact match,
// unlocks the paid analysis for the resume. Verifying the same proof twice
// succeeds both times; the entitlement flag never transitions back.
//
// The supplied orderId is not checked against the order minted for this
// resume; the only binding is payload correlation. See DESIGN.md.
func (s *Service) VerifyPayment(ctx context.Context, userID string, proof Proof) (Receipt, error) {
	if strings.TrimSpace(proof.OrderID) == "" ||
		strings.TrimSpace(proof.PaymentID) == "" ||
		strings.TrimSpace(proof.Signature) == "" ||
		strings.TrimSpace(proof.ResumeID) == "" {
		return Receipt{}, ErrInvalidInput
	}

	if !VerifySignature(proof.OrderID, proof.PaymentID, proof.Signature, s.Secret) {
		metrics.IncPaymentRejected()
		// Never log or return the expected digest.
		telemetry.Warn("payment.signature_rejected", map[string]any{
			"order_id":  proof.OrderID,
			"resume_id": proof.ResumeID,
		})
		return Receipt{}, ErrSignatureMismatch
	}

	if _, err := s.Resumes.GetByOwner(ctx, proof.ResumeID, userID); err != nil {
		return Receipt{}, err
	}
	if err := s.Resumes.MarkAnalysisPurchased(ctx, proof.ResumeID, userID); err != nil {
		return Receipt{}, err
	}

	metrics.IncPaymentVerified()
	telemetry.Info("payment.verified", map[string]any{
		"order_id":   proof.OrderID,
		"payment_id": proof.PaymentID,
		"resume_id":  proof.ResumeID,
	})
	return Receipt{
		Message:   receiptMessage,
		OrderID:   proof.OrderID,
		PaymentID: proof.PaymentID,
	}, nil
}
