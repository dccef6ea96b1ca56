package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the absolute lifetime of an upsell continuation token. Expiry is the
// only invalidation; tokens are never stored or revoked server-side.
const TTL = 30 * time.Minute

// ErrInvalidToken is returned when a token fails signature, expiry or shape checks.
var ErrInvalidToken = errors.New("token invalido ou expirado")

// CustomerData carries the identity baked into a continuation token.
// Reference is the parent purchase transaction, held constant across the chain.
type CustomerData struct {
	Phone     string
	Method    string
	Email     string
	Nome      string
	Whatsapp  string
	Reference string
}

// Claims is the upsell token claim set.
type Claims struct {
	MSISDN    string `json:"msisdn"`
	Method    string `json:"method"`
	Email     string `json:"email"`
	Nome      string `json:"nome,omitempty"`
	Whatsapp  string `json:"whatsapp,omitempty"`
	ParentTxn string `json:"parentTxn"`
	jwt.RegisteredClaims
}

// Service signs and verifies upsell continuation tokens
type Service struct {
	secret []byte
	now    func() time.Time
}

// NewService creates a new token Service signing with the given secret
func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue builds the claim set for the customer and signs it with a 30 minute expiry
func (s *Service) Issue(data CustomerData) (string, error) {
	now := s.now()
	claims := &Claims{
		MSISDN:    data.Phone,
		Method:    data.Method,
		Email:     data.Email,
		Nome:      data.Nome,
		Whatsapp:  data.Whatsapp,
		ParentTxn: data.Reference,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign upsell token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Any failure is reported as ErrInvalidToken; callers must not proceed.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
