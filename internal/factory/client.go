package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "pizzeria/internal/errors"
)

// DinerInfo identifies the ordering diner to the factory.
type DinerInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderInfo is the validated order payload with server-resolved prices.
type OrderInfo struct {
	ID          uint   `json:"id"`
	FranchiseID uint   `json:"franchiseId"`
	StoreID     uint   `json:"storeId"`
	Items       []Item `json:"items"`
}

// Item is one resolved order line.
type Item struct {
	MenuID      uint            `json:"menuId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// FulfillmentRequest is the outbound order document.
type FulfillmentRequest struct {
	Diner DinerInfo `json:"diner"`
	Order OrderInfo `json:"order"`
}

// FulfillmentResponse carries the factory's confirmation token.
type FulfillmentResponse struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// RejectionError is a terminal 4xx answer from the factory. It carries the
// factory's own reason and is never retried.
type RejectionError struct {
	StatusCode int
	Reason     string
	ReportURL  string
}

func (e *RejectionError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("factory rejected order (status %d)", e.StatusCode)
}

// Client talks to the external order factory. Transport errors and 5xx
// answers are retried with exponential backoff up to a fixed attempt count;
// 4xx answers and malformed bodies are terminal.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxAttempts int
	backoffBase time.Duration
	log         *zap.Logger
}

// ClientConfig configures the factory client.
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
	Logger      *zap.Logger
}

// NewClient creates a factory client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 4
	}
	backoffBase := cfg.BackoffBase
	if backoffBase == 0 {
		backoffBase = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		log:         logger,
	}
}

// SubmitOrder submits an order and returns the factory's confirmation. The
// backoff sleep between attempts holds no locks and honors ctx cancellation.
func (c *Client) SubmitOrder(ctx context.Context, req *FulfillmentRequest) (*FulfillmentResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal fulfillment request: %w", err)
	}

	backoff := c.backoffBase
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := c.post(ctx, payload)
		if err != nil {
			lastErr = err
			c.log.Warn("factory request failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("factory status %d", resp.StatusCode)
			c.log.Warn("factory returned server error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode))
			continue

		case resp.StatusCode >= 400:
			rejection := &RejectionError{StatusCode: resp.StatusCode}
			var details struct {
				Message   string `json:"message"`
				ReportURL string `json:"reportUrl"`
			}
			if readErr == nil && json.Unmarshal(body, &details) == nil {
				rejection.Reason = details.Message
				rejection.ReportURL = details.ReportURL
			}
			return nil, rejection

		default:
			if readErr != nil {
				return nil, fmt.Errorf("%w: read response: %v", apperrors.ErrUpstreamFailure, readErr)
			}
			var confirmation FulfillmentResponse
			if err := json.Unmarshal(body, &confirmation); err != nil || confirmation.JWT == "" {
				return nil, fmt.Errorf("%w: malformed factory response", apperrors.ErrUpstreamFailure)
			}
			return &confirmation, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, lastErr)
}

func (c *Client) post(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return c.httpClient.Do(req)
}
