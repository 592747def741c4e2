package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"webond/pkg/logger"
)

// StripePaymentService opens payment intents against the Stripe HTTP API.
type StripePaymentService struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripePaymentService(secretKey string) *StripePaymentService {
	return &StripePaymentService{
		secretKey: secretKey,
		baseURL:   "https://api.stripe.com/v1",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

func (s *StripePaymentService) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "hkd"
	}

	// Stripe expects the amount in the currency's smallest unit.
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(math.Round(req.Amount*100)), 10))
	form.Set("currency", currency)
	form.Set("metadata[task_id]", req.TaskID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("Stripe API error: %s", string(body))
		return nil, fmt.Errorf("stripe API error: %s", string(body))
	}

	var intent stripeIntentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}

	logger.Info("Stripe payment intent created for task %s: %s", req.TaskID, intent.ID)

	return &PaymentIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
	}, nil
}
