package paygateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWallets() map[string]Wallet {
	return map[string]Wallet{
		"mpesa": {ID: "wallet-mpesa", Token: "token-mpesa"},
		"emola": {ID: "wallet-emola", Token: "token-emola"},
	}
}

func TestChargeSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"output_ResponseCode":"INS-0","output_TransactionID":"abc123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "client-1", testWallets())

	data, err := client.Charge(context.Background(), "mpesa", 99, "841234567", "TXN-1-abcdefghi")
	require.NoError(t, err)

	assert.Equal(t, "/v1/c2b/mpesa-payment/wallet-mpesa", gotPath)
	assert.Equal(t, "Bearer token-mpesa", gotAuth)
	assert.Equal(t, map[string]string{
		"client_id": "client-1",
		"amount":    "99",
		"phone":     "841234567",
		"reference": "TXN-1-abcdefghi",
	}, gotBody)
	assert.Equal(t, "abc123", data["output_TransactionID"])
}

func TestChargeEmolaWallet(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "client-1", testWallets())

	_, err := client.Charge(context.Background(), "emola", 349, "861234567", "UPSELL1-TXN-1-abcdefghi-2")
	require.NoError(t, err)
	assert.Equal(t, "/v1/c2b/emola-payment/wallet-emola", gotPath)
}

func TestChargeGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"output_ResponseCode":"INS-6","output_ResponseDesc":"Transaction Failed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "client-1", testWallets())

	data, err := client.Charge(context.Background(), "mpesa", 99, "841234567", "TXN-1-abcdefghi")
	assert.Nil(t, data)

	var gatewayErr *GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, http.StatusUnprocessableEntity, gatewayErr.StatusCode)
	assert.Contains(t, string(gatewayErr.Body), "INS-6")

	details, ok := gatewayErr.Details().(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Transaction Failed", details["output_ResponseDesc"])
}

func TestChargeMethodNotConfigured(t *testing.T) {
	client := NewClient("http://localhost:0", "client-1", map[string]Wallet{
		"mpesa": {ID: "wallet-mpesa", Token: ""},
	})

	_, err := client.Charge(context.Background(), "mpesa", 99, "841234567", "TXN-1-abcdefghi")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.Charge(context.Background(), "emola", 99, "841234567", "TXN-1-abcdefghi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChargeContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "client-1", testWallets())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Charge(ctx, "mpesa", 99, "841234567", "TXN-1-abcdefghi")
	assert.Error(t, err)
}
