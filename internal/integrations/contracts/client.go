package contracts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/logger"
)

// Client talks to the contract-document service. It satisfies
// service.ContractService.
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

// VoidContract invalidates any contract document attached to the
// rental. Voiding a rental that never had a contract is a no-op on the
// provider side.
func (c *Client) VoidContract(ctx context.Context, rental *domain.Rental) error {
	if c.baseURL == "" {
		logger.Debug("contract service not configured, skipping void", "rental_id", rental.ID)
		return nil
	}

	url := fmt.Sprintf("%s/v1/contracts/rental/%d/void", c.baseURL, rental.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("create void request: %w", err)
	}

	logger.ExternalServiceCall("contracts", "void", "rental_id", rental.ID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("contracts", "void", err, "rental_id", rental.ID)
		return fmt.Errorf("void contract: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		logger.ExternalServiceResult("contracts", "void", nil, "rental_id", rental.ID)
		return nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("void contract: unexpected status %d: %s", resp.StatusCode, string(raw))
		logger.ExternalServiceResult("contracts", "void", err, "rental_id", rental.ID)
		return err
	}
}
