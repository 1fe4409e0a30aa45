package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"karkhana/internal/config"
	apperrors "karkhana/internal/errors"

	"github.com/stretchr/testify/assert"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.PaymentConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestCharge_Authorized(t *testing.T) {
	var gotReq ChargeRequest
	var gotAuth, gotIdempotency string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/charges", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("Idempotency-Key")
		json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "authorized",
			"reference": "ch_12345",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.Charge(context.Background(), ChargeRequest{
		Amount:    1300,
		Currency:  "INR",
		Reference: "pay-key-1",
	})

	assert.NoError(t, err)
	assert.True(t, result.Authorized)
	assert.Equal(t, "ch_12345", result.Reference)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "pay-key-1", gotIdempotency)
	assert.Equal(t, 1300.0, gotReq.Amount)
	assert.Equal(t, "INR", gotReq.Currency)
}

func TestCharge_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "declined",
			"reason": "insufficient funds",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.Charge(context.Background(), ChargeRequest{Amount: 645, Currency: "INR", Reference: "pay-key-2"})

	assert.NoError(t, err)
	assert.False(t, result.Authorized)
	assert.Equal(t, "insufficient funds", result.Reason)
}

func TestCharge_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge(context.Background(), ChargeRequest{Amount: 645, Currency: "INR", Reference: "pay-key-3"})

	gatewayErr, ok := apperrors.IsGatewayError(err)
	assert.True(t, ok)
	assert.Equal(t, "HTTP_500", gatewayErr.Code)
}

func TestCharge_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge(context.Background(), ChargeRequest{Amount: 645, Currency: "INR", Reference: "pay-key-4"})

	gatewayErr, ok := apperrors.IsGatewayError(err)
	assert.True(t, ok)
	assert.Equal(t, "NETWORK", gatewayErr.Code)
}

func TestCharge_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge(context.Background(), ChargeRequest{Amount: 645, Currency: "INR", Reference: "pay-key-5"})

	gatewayErr, ok := apperrors.IsGatewayError(err)
	assert.True(t, ok)
	assert.Equal(t, "BAD_RESPONSE", gatewayErr.Code)
}
