package service

import (
	"context"
)

// PaymentIntentRequest describes the escrow charge to open with the
// external payment provider.
type PaymentIntentRequest struct {
	TaskID   string
	Amount   float64 // reward amount in HKD
	Currency string
}

// PaymentIntentResponse carries the provider's handle for the intent.
type PaymentIntentResponse struct {
	IntentID     string
	ClientSecret string
	Status       string
}

// PaymentService wraps the external payment-intent provider. A nil
// implementation is allowed; escrow then runs without a provider handle.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error)
}
