package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"karkhana/internal/config"
	apperrors "karkhana/internal/errors"
)

type ChargeRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
}

type ChargeResult struct {
	Authorized bool
	Reference  string
	Reason     string
}

type chargeResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

// Client talks to the external payment gateway. Charges are idempotent on
// the reference: retrying a failed checkout with the same reference cannot
// produce a second charge.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewInternalError("encoding charge request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("building charge request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Idempotency-Key", req.Reference)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Covers connection errors, the client timeout, and context
		// cancellation; all are genuine failure triggers for checkout.
		return nil, apperrors.NewGatewayError("charge request failed", "NETWORK", err)
	}
	defer resp.Body.Close()

	// Declines come back as 402 with a reason body; anything else non-2xx
	// is a gateway fault.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPaymentRequired {
		return nil, apperrors.NewGatewayError(
			fmt.Sprintf("gateway returned status %d", resp.StatusCode),
			fmt.Sprintf("HTTP_%d", resp.StatusCode),
			nil,
		)
	}

	var decoded chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.NewGatewayError("decoding charge response", "BAD_RESPONSE", err)
	}

	return &ChargeResult{
		Authorized: decoded.Status == "authorized",
		Reference:  decoded.Reference,
		Reason:     decoded.Reason,
	}, nil
}
