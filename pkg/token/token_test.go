package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomerData() CustomerData {
	return CustomerData{
		Phone:     "841234567",
		Method:    "mpesa",
		Email:     "a@b.com",
		Nome:      "Ana",
		Whatsapp:  "841234567",
		Reference: "TXN-1700000000000-abc123def",
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret")

	tokenString, err := svc.Issue(testCustomerData())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.Verify(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "841234567", claims.MSISDN)
	assert.Equal(t, "mpesa", claims.Method)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "Ana", claims.Nome)
	assert.Equal(t, "841234567", claims.Whatsapp)
	assert.Equal(t, "TXN-1700000000000-abc123def", claims.ParentTxn)
	assert.WithinDuration(t, time.Now().Add(TTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService("test-secret")

	// Issue in the past, verify with the real clock
	issuedAt := time.Now().Add(-TTL - time.Minute)
	svc.now = func() time.Time { return issuedAt }
	tokenString, err := svc.Issue(testCustomerData())
	require.NoError(t, err)

	svc.now = time.Now
	claims, err := svc.Verify(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	svc := NewService("test-secret")

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }
	tokenString, err := svc.Issue(testCustomerData())
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(TTL - time.Second) }
	claims, err := svc.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "TXN-1700000000000-abc123def", claims.ParentTxn)
}

func TestVerifyWrongSecret(t *testing.T) {
	tokenString, err := NewService("secret-a").Issue(testCustomerData())
	require.NoError(t, err)

	claims, err := NewService("secret-b").Verify(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService("test-secret")

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		claims, err := svc.Verify(tokenString)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
