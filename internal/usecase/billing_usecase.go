package usecase

import (
	"context"
	"net/http"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/apperror"
	"go-mockinterview-backend/pkg/payment"
)

// CheckoutClient is the payment collaborator. Satisfied by payment.Client.
type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, priceID, userID, successURL, cancelURL string) (*payment.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*payment.CheckoutSession, error)
}

type billingUsecase struct {
	checkout   CheckoutClient
	successURL string
	cancelURL  string
}

func NewBillingUsecase(checkout CheckoutClient, successURL, cancelURL string) domain.BillingUsecase {
	return &billingUsecase{
		checkout:   checkout,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (u *billingUsecase) CreateCheckout(ctx context.Context, userID, priceID string) (*domain.CheckoutSession, error) {
	if priceID == "" {
		return nil, apperror.BadRequest("priceId is required")
	}

	session, err := u.checkout.CreateCheckoutSession(ctx, priceID, userID, u.successURL, u.cancelURL)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Failed to create checkout session", err)
	}
	return toDomainCheckout(session), nil
}

func (u *billingUsecase) GetCheckout(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, apperror.BadRequest("sessionId is required")
	}

	session, err := u.checkout.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Failed to fetch checkout session", err)
	}
	return toDomainCheckout(session), nil
}

func toDomainCheckout(session *payment.CheckoutSession) *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
	}
}
