package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultAPIBase is the Stripe REST API endpoint.
const DefaultAPIBase = "https://api.stripe.com"

// CheckoutSession is the subset of Stripe's Checkout Session object the
// backend cares about: the id the client redirects with, and the status
// fields it can later observe.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client creates and inspects Stripe Checkout Sessions.
type Client struct {
	secretKey  string
	apiBase    string
	httpClient *http.Client
}

func NewClient(secretKey, apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		secretKey: secretKey,
		apiBase:   strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateCheckoutSession opens a subscription checkout for the given price
// and returns the session. The user id travels as client_reference_id so
// the outcome can be attributed later.
func (c *Client) CreateCheckoutSession(ctx context.Context, priceID, userID, successURL, cancelURL string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("client_reference_id", userID)
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()))
}

// GetCheckoutSession fetches a session so callers can observe its
// success/failure outcome.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	return c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "stripe request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		var se stripeError
		if err := json.Unmarshal(respBody, &se); err == nil && se.Error.Message != "" {
			return nil, errors.Errorf("stripe API error: %s", se.Error.Message)
		}
		return nil, errors.Errorf("stripe API error: status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal checkout session")
	}
	return &session, nil
}
