package services

import (
	"context"

	"github.com/GGlistano/backbolt/pkg/token"
)

// PurchaseRequest is the inbound body of the initial purchase
type PurchaseRequest struct {
	Phone    string `json:"phone"`
	Metodo   string `json:"metodo"`
	Email    string `json:"email"`
	Nome     string `json:"nome"`
	Whatsapp string `json:"whatsapp"`
}

// PurchaseResult carries the gateway response plus the first continuation
// token and the client-facing redirect for upsell 1.
type PurchaseResult struct {
	Data        map[string]interface{}
	UpsellToken string
	RedirectURL string
}

// UpsellResult carries the gateway response for one upsell step. NextToken
// and NextURL are set for levels 1 and 2 only; level 3 sets FinalUpsell.
type UpsellResult struct {
	Data        map[string]interface{}
	NextToken   string
	NextURL     string
	FinalUpsell bool
}

// TokenStatus is the outcome of a successful debug token validation
type TokenStatus struct {
	Claims      *token.Claims
	ParentValid bool
}

// FunnelService defines the interface for funnel purchase and upsell operations
type FunnelService interface {
	// SubmitPurchase runs the initial purchase flow: validate, charge,
	// persist, email receipt, mint the first upsell token.
	SubmitPurchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResult, error)

	// SubmitUpsell runs one upsell step: verify token, check parent and
	// duplicate state, charge, persist, mint the successor token if any.
	SubmitUpsell(ctx context.Context, level int, tokenString string) (*UpsellResult, error)

	// ValidateToken verifies a token and probes the parent purchase without
	// side effects.
	ValidateToken(ctx context.Context, tokenString string) (*TokenStatus, error)
}
