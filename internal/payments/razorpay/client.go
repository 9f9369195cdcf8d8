package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"resume-ai-backend/internal/payments"
)

const defaultAPIURL = "https://api.razorpay.com/v1/orders"

// Client implements payments.Gateway against the Razorpay Orders API.
type Client struct {
	keyID      string
	keySecret  string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a Razorpay orders client.
func NewClient(keyID, keySecret string) (*Client, error) {
	if strings.TrimSpace(keyID) == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID is required")
	}
	if strings.TrimSpace(keySecret) == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_SECRET is required")
	}
	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("RAZORPAY_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		apiURL:    defaultAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID        string            `json:"id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status"`
	Notes     map[string]string `json:"notes"`
	CreatedAt int64             `json:"created_at"`
	Error     *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// CreateOrder mints an order with Razorpay.
func (c *Client) CreateOrder(ctx context.Context, req payments.OrderRequest) (payments.Order, error) {
	payload, err := json.Marshal(orderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return payments.Order{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return payments.Order{}, err
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return payments.Order{}, fmt.Errorf("razorpay request timeout: %w", err)
		}
		return payments.Order{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return payments.Order{}, err
	}

	var parsed orderResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return payments.Order{}, fmt.Errorf("razorpay response parse: %w", err)
	}
	if parsed.Error != nil {
		return payments.Order{}, fmt.Errorf("razorpay error: %s (%s)", parsed.Error.Description, parsed.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return payments.Order{}, fmt.Errorf("razorpay status %d", resp.StatusCode)
	}
	if parsed.ID == "" {
		return payments.Order{}, fmt.Errorf("razorpay response missing order id")
	}

	return payments.Order{
		ID:        parsed.ID,
		Amount:    parsed.Amount,
		Currency:  parsed.Currency,
		Receipt:   parsed.Receipt,
		Status:    parsed.Status,
		Notes:     parsed.Notes,
		CreatedAt: parsed.CreatedAt,
	}, nil
}

var _ payments.Gateway = (*Client)(nil)
