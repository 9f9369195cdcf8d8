package payments_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/payments"
	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/config"
	"resume-ai-backend/internal/shared/server"
)

type stubGateway struct {
	nextOrderID string
}

func (g *stubGateway) CreateOrder(ctx context.Context, req payments.OrderRequest) (payments.Order, error) {
	return payments.Order{
		ID:       g.nextOrderID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
		Notes:    req.Notes,
	}, nil
}

const testSecret = "test_secret"

func newPaymentsRouter(t *testing.T) (*gin.Engine, *resumes.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := resumes.NewMemoryRepo()
	svc := &payments.Service{
		Resumes: repo,
		Gateway: &stubGateway{nextOrderID: "order_O1"},
		Secret:  []byte(testSecret),
	}
	router := server.NewRouter(server.RouterDeps{
		Config:          config.Config{Env: "dev"},
		PaymentsHandler: payments.NewHandler(svc),
	})
	return router, repo
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPurchaseFlowEndToEnd(t *testing.T) {
	router, repo := newPaymentsRouter(t)
	owner := "guest:u1"

	if err := repo.Create(context.Background(), resumes.Resume{ID: "R1", UserID: owner}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	// Mint an order for the unpurchased resume.
	resp := postJSON(t, router, "/api/ai/create-order", gin.H{"resumeId": "R1", "amount": 50000})
	if resp.Code != http.StatusOK {
		t.Fatalf("create-order: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var order struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.ID != "order_O1" {
		t.Fatalf("expected order_O1, got %s", order.ID)
	}
	if order.Receipt != "receipt_resume_R1" {
		t.Fatalf("unexpected receipt %q", order.Receipt)
	}

	// Gateway reports payment P1 signed with the shared secret.
	sig := payments.Signature(order.ID, "pay_P1", []byte(testSecret))
	resp = postJSON(t, router, "/api/ai/verify-payment", gin.H{
		"razorpay_order_id":   order.ID,
		"razorpay_payment_id": "pay_P1",
		"razorpay_signature":  sig,
		"resumeId":            "R1",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("verify-payment: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var receipt struct {
		Message   string `json:"message"`
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if receipt.OrderID != order.ID || receipt.PaymentID != "pay_P1" {
		t.Fatalf("receipt does not echo proof: %+v", receipt)
	}

	resume, err := repo.GetByOwner(context.Background(), "R1", owner)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if !resume.AnalysisPurchased {
		t.Fatalf("expected analysis to be unlocked")
	}

	// Re-issuing an order for a purchased resume is a conflict.
	resp = postJSON(t, router, "/api/ai/create-order", gin.H{"resumeId": "R1", "amount": 50000})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for repurchase, got %d", resp.Code)
	}
}

func TestVerifyPaymentTamperedSignature(t *testing.T) {
	router, repo := newPaymentsRouter(t)
	owner := "guest:u1"

	if err := repo.Create(context.Background(), resumes.Resume{ID: "R2", UserID: owner}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	sig := payments.Signature("order_O2", "pay_P2", []byte(testSecret))
	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	resp := postJSON(t, router, "/api/ai/verify-payment", gin.H{
		"razorpay_order_id":   "order_O2",
		"razorpay_payment_id": "pay_P2",
		"razorpay_signature":  string(tampered),
		"resumeId":            "R2",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for tampered signature, got %d", resp.Code)
	}
	// The generic message must not leak the expected digest.
	if bytes.Contains(resp.Body.Bytes(), []byte(sig)) {
		t.Fatalf("response leaked the expected signature")
	}

	resume, err := repo.GetByOwner(context.Background(), "R2", owner)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if resume.AnalysisPurchased {
		t.Fatalf("tampered payment must not unlock the resume")
	}
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	router, _ := newPaymentsRouter(t)

	resp := postJSON(t, router, "/api/ai/verify-payment", gin.H{
		"razorpay_order_id": "order_O3",
		"resumeId":          "R3",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", resp.Code)
	}
}

func TestCreateOrderRequiresIdentity(t *testing.T) {
	router, _ := newPaymentsRouter(t)

	body, _ := json.Marshal(gin.H{"resumeId": "R1", "amount": 50000})
	req := httptest.NewRequest(http.MethodPost, "/api/ai/create-order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}
