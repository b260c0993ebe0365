package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/logger"
)

var (
	// ErrPaymentDeclined means the provider refused the charge.
	ErrPaymentDeclined = errors.New("payment declined")
	// ErrServiceUnavailable means the provider could not be reached.
	ErrServiceUnavailable = errors.New("payment service unavailable")
)

// Client talks to the external payment provider. It satisfies
// service.PaymentGateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type createPaymentRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	RentalID       int64  `json:"rental_id"`
	CustomerID     int64  `json:"customer_id"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
}

type createPaymentResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// CreatePayment charges the rental's frozen total and returns the
// provider's payment reference. Each call carries a fresh idempotency
// key, so provider-side retries never double-charge.
func (c *Client) CreatePayment(ctx context.Context, rental *domain.Rental) (string, error) {
	if c.baseURL == "" {
		// No provider configured (local development): issue a local
		// reference so the confirmation flow still completes.
		ref := "local-" + uuid.NewString()
		logger.Debug("payment provider not configured, issuing local reference",
			"rental_id", rental.ID, "reference", ref)
		return ref, nil
	}

	payload := createPaymentRequest{
		IdempotencyKey: uuid.NewString(),
		RentalID:       rental.ID,
		CustomerID:     rental.CustomerID,
		AmountCents:    rental.TotalPriceCents,
		Currency:       "PHP",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payment request: %w", err)
	}

	url := c.baseURL + "/v1/payments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("payments", "create", "rental_id", rental.ID, "amount_cents", payload.AmountCents)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("payments", "create", err, "rental_id", rental.ID)
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		logger.ExternalServiceResult("payments", "create", ErrPaymentDeclined, "rental_id", rental.ID)
		return "", ErrPaymentDeclined
	default:
		raw, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("%w: unexpected status %d: %s", ErrServiceUnavailable, resp.StatusCode, string(raw))
		logger.ExternalServiceResult("payments", "create", err, "rental_id", rental.ID)
		return "", err
	}

	var out createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode payment response: %w", err)
	}
	logger.ExternalServiceResult("payments", "create", nil, "rental_id", rental.ID, "reference", out.Reference)
	return out.Reference, nil
}
