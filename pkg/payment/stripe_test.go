package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "price_basic", r.PostForm.Get("line_items[0][price]"))
		assert.Equal(t, "user-1", r.PostForm.Get("client_reference_id"))
		assert.Equal(t, "subscription", r.PostForm.Get("mode"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_abc","url":"https://checkout.stripe.com/c/cs_test_abc","status":"open","payment_status":"unpaid"}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_123", server.URL)
	session, err := client.CreateCheckoutSession(context.Background(), "price_basic", "user-1",
		"https://app.example.com/billing?status=success", "https://app.example.com/billing?status=cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", session.ID)
	assert.Equal(t, "open", session.Status)
}

func TestCreateCheckoutSessionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such price: price_bogus"}}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_123", server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), "price_bogus", "user-1", "s", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such price")
}
