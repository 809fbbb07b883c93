package domain

import "context"

// CheckoutSession is the backend's view of a payment checkout: an id the
// client redirects with, plus observable outcome fields.
type CheckoutSession struct {
	ID            string `json:"sessionId"`
	URL           string `json:"url,omitempty"`
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

type BillingUsecase interface {
	CreateCheckout(ctx context.Context, userID, priceID string) (*CheckoutSession, error)
	GetCheckout(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
