package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-ai-backend/internal/payments"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("rzp_test_key", "rzp_test_secret")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.apiURL = server.URL
	return client
}

func TestCreateOrder(t *testing.T) {
	var captured orderRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "rzp_test_secret" {
			t.Errorf("unexpected basic auth %s:%s", user, pass)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":         "order_NXhP1",
			"amount":     50000,
			"currency":   "INR",
			"receipt":    captured.Receipt,
			"status":     "created",
			"notes":      captured.Notes,
			"created_at": 1724800000,
		})
	})

	order, err := client.CreateOrder(context.Background(), payments.OrderRequest{
		Amount:   50000,
		Currency: "INR",
		Receipt:  "receipt_resume_r1",
		Notes:    map[string]string{"resumeId": "r1", "userId": "u1"},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.ID != "order_NXhP1" || order.Status != "created" {
		t.Fatalf("unexpected order %+v", order)
	}
	if captured.Amount != 50000 || captured.Currency != "INR" {
		t.Fatalf("request not forwarded: %+v", captured)
	}
	if captured.Receipt != "receipt_resume_r1" {
		t.Fatalf("unexpected receipt %q", captured.Receipt)
	}
	if captured.Notes["resumeId"] != "r1" {
		t.Fatalf("notes not forwarded: %v", captured.Notes)
	}
}

func TestCreateOrderAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"code":        "BAD_REQUEST_ERROR",
				"description": "The amount must be atleast INR 1.00",
			},
		})
	})

	_, err := client.CreateOrder(context.Background(), payments.OrderRequest{Amount: 1, Currency: "INR"})
	if err == nil || !strings.Contains(err.Error(), "BAD_REQUEST_ERROR") {
		t.Fatalf("expected gateway error to surface, got %v", err)
	}
}

func TestCreateOrderMissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "created"})
	})

	_, err := client.CreateOrder(context.Background(), payments.OrderRequest{Amount: 50000, Currency: "INR"})
	if err == nil || !strings.Contains(err.Error(), "missing order id") {
		t.Fatalf("expected missing order id error, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "secret"); err == nil {
		t.Fatalf("expected error for missing key id")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatalf("expected error for missing key secret")
	}
}
