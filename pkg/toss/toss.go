// Package toss is a client for the Toss Payments confirmation API. The only
// operation the storefront needs is Confirm: a synchronous call that settles
// a previously authorized payment. Once Confirm succeeds, money has moved;
// the caller owns making the local store agree.
package toss

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the production Toss Payments endpoint.
const DefaultBaseURL = "https://api.tosspayments.com"

// DefaultTimeout bounds the confirm call so a hung provider cannot block the
// request forever.
const DefaultTimeout = 10 * time.Second

// Config holds the provider credentials and connection settings.
type Config struct {
	SecretKey string
	BaseURL   string // defaults to DefaultBaseURL
	Timeout   time.Duration
}

// Client calls the Toss Payments API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
}

// NewClient creates a new Toss Payments client. The secret key is sent as
// HTTP basic auth with an empty password, per the provider's scheme.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.SecretKey+":")),
	}
}

// Receipt is the provider's record of a confirmed payment.
type Receipt struct {
	PaymentKey  string
	OrderID     string
	Method      string
	TotalAmount int64
	ApprovedAt  time.Time
}

// RejectedError is a provider-side refusal: the request reached Toss and Toss
// declined it. Message is the provider's own diagnostic text. Retrying the
// same request will not help.
type RejectedError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("payment rejected by provider (%s): %s", e.Code, e.Message)
}

// UnavailableError means the provider could not be reached, timed out, or
// failed internally. The outcome of the payment is unknown; the caller may
// retry.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("payment gateway unavailable: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

type confirmResponse struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	Method      string `json:"method"`
	TotalAmount int64  `json:"totalAmount"`
	ApprovedAt  string `json:"approvedAt"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Confirm settles a payment previously authorized under paymentKey. orderID
// is the merchant-side order reference; amount must match what the customer
// authorized. A 4xx response becomes a RejectedError carrying the provider
// message; transport failures, timeouts, and 5xx responses become
// UnavailableError. Confirm never retries.
func (c *Client) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*Receipt, error) {
	body, err := json.Marshal(confirmRequest{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build confirm request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &UnavailableError{Cause: fmt.Errorf("provider returned status %d", resp.StatusCode)}
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil || errResp.Message == "" {
			errResp.Code = "UNKNOWN"
			errResp.Message = fmt.Sprintf("provider returned status %d", resp.StatusCode)
		}
		return nil, &RejectedError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Code,
			Message:    errResp.Message,
		}
	}

	var confirm confirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&confirm); err != nil {
		return nil, fmt.Errorf("failed to decode confirm response: %w", err)
	}

	approvedAt, err := time.Parse(time.RFC3339, confirm.ApprovedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse approvedAt %q: %w", confirm.ApprovedAt, err)
	}

	return &Receipt{
		PaymentKey:  confirm.PaymentKey,
		OrderID:     confirm.OrderID,
		Method:      confirm.Method,
		TotalAmount: confirm.TotalAmount,
		ApprovedAt:  approvedAt,
	}, nil
}
