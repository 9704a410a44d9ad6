// Package payment integrates the PayPal Orders v2 REST API for invoice
// checkout.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"
)

// PayPalClient talks to the Orders v2 API with a cached OAuth token.
type PayPalClient struct {
	clientID string
	secret   string
	baseURL  string
	http     *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Order is the subset of the PayPal order resource the back office uses.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// NewPayPalClient builds a client for the given mode ("sandbox" or "live").
func NewPayPalClient(clientID, secret, mode string) *PayPalClient {
	baseURL := sandboxBaseURL
	if mode == "live" {
		baseURL = liveBaseURL
	}
	return &PayPalClient{
		clientID: clientID,
		secret:   secret,
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether credentials were supplied.
func (c *PayPalClient) Configured() bool {
	return c.clientID != "" && c.secret != ""
}

// CreateOrder opens a capture-intent order for amount in the given currency
// and returns its id for client-side approval.
func (c *PayPalClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (Order, error) {
	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"amount": map[string]string{
					"currency_code": currency,
					"value":         amount.StringFixed(2),
				},
			},
		},
	}
	return c.orderRequest(ctx, http.MethodPost, "/v2/checkout/orders", body)
}

// CaptureOrder settles an approved order.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (Order, error) {
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	return c.orderRequest(ctx, http.MethodPost, path, nil)
}

func (c *PayPalClient) orderRequest(ctx context.Context, method, path string, body any) (Order, error) {
	token, err := c.token(ctx)
	if err != nil {
		return Order{}, err
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Order{}, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("paypal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Order{}, fmt.Errorf("paypal returned %d: %s", resp.StatusCode, detail)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, fmt.Errorf("failed to decode paypal response: %w", err)
	}
	return order, nil
}

// token returns a cached client-credentials token, refreshing it shortly
// before expiry.
func (c *PayPalClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("paypal token endpoint returned %d: %s", resp.StatusCode, detail)
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode paypal token response: %w", err)
	}

	c.accessToken = tr.AccessToken
	// Refresh a minute early so in-flight calls never carry a stale token.
	c.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}
