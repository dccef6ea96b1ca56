package paygateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// ErrNotConfigured signals a missing wallet id or bearer token for the
// requested method. It is a server-side configuration fault, not a gateway
// failure.
var ErrNotConfigured = errors.New("payment method not configured")

// GatewayError carries a non-2xx provider response so the HTTP layer can
// forward the provider's own status code and diagnostics.
type GatewayError struct {
	StatusCode int
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Body)
}

// Details decodes the provider response body, falling back to the raw text
// when it is not JSON.
func (e *GatewayError) Details() interface{} {
	var details interface{}
	if err := json.Unmarshal(e.Body, &details); err != nil {
		return string(e.Body)
	}
	return details
}

// Wallet pairs a provider wallet id with the bearer token authorized to
// charge on its behalf.
type Wallet struct {
	ID    string
	Token string
}

// Client performs C2B charge requests against the mpesa/emola provider
type Client struct {
	baseURL    string
	clientID   string
	wallets    map[string]Wallet
	httpClient *http.Client
}

// NewClient creates a new payment gateway client. The wallets map is keyed by
// payment method (mpesa, emola).
func NewClient(baseURL, clientID string, wallets map[string]Wallet) *Client {
	return &Client{
		baseURL:    baseURL,
		clientID:   clientID,
		wallets:    wallets,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Charge performs a single charge attempt against the provider. There is no
// retry: a failure here aborts the whole flow before anything is persisted.
func (c *Client) Charge(ctx context.Context, method string, amount int, phone, reference string) (map[string]interface{}, error) {
	wallet, ok := c.wallets[method]
	if !ok || wallet.ID == "" || wallet.Token == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, method)
	}

	url := fmt.Sprintf("%s/v1/c2b/%s-payment/%s", c.baseURL, method, wallet.ID)

	// The provider expects the amount as a string
	requestBody := map[string]string{
		"client_id": c.clientID,
		"amount":    strconv.Itoa(amount),
		"phone":     phone,
		"reference": reference,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+wallet.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send charge request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: body}
	}

	var data map[string]interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("failed to parse gateway response: %w", err)
		}
	}

	return data, nil
}
