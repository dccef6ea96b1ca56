package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GGlistano/backbolt/internal/models"
	"github.com/GGlistano/backbolt/internal/repositories"
	"github.com/GGlistano/backbolt/internal/utils"
	"github.com/GGlistano/backbolt/pkg/token"
	"github.com/sirupsen/logrus"
)

// Supported payment methods
const (
	MethodMpesa = "mpesa"
	MethodEmola = "emola"
)

// Funnel amounts are fixed by the product, not configuration
const (
	purchaseAmount = 99
	maxUpsellLevel = 3
)

var upsellAmounts = map[int]int{
	1: 349,
	2: 250,
	3: 149,
}

// PaymentGateway is the outbound charge dependency
type PaymentGateway interface {
	Charge(ctx context.Context, method string, amount int, phone, reference string) (map[string]interface{}, error)
}

// TokenCodec mints and verifies upsell continuation tokens
type TokenCodec interface {
	Issue(data token.CustomerData) (string, error)
	Verify(tokenString string) (*token.Claims, error)
}

// ReceiptSender delivers purchase receipts, best-effort
type ReceiptSender interface {
	SendReceipt(to, nome, reference string, amount int, metodo string) error
}

// Compile-time check to ensure funnelService implements FunnelService
var _ FunnelService = (*funnelService)(nil)

// funnelService ties the gateway, ledger, token codec and mailer together
// into the purchase → upsell1 → upsell2 → upsell3 state machine. Funnel state
// is never stored explicitly; it is reconstructed per request from the
// ledger's existence checks plus possession of a valid token.
type funnelService struct {
	purchaseRepo  repositories.PurchaseRepository
	upsellRepo    repositories.UpsellRepository
	gateway       PaymentGateway
	tokens        TokenCodec
	mailer        ReceiptSender
	funnelBaseURL string
}

// NewFunnelService creates a new FunnelService
func NewFunnelService(
	purchaseRepo repositories.PurchaseRepository,
	upsellRepo repositories.UpsellRepository,
	gateway PaymentGateway,
	tokens TokenCodec,
	mailer ReceiptSender,
	funnelBaseURL string,
) FunnelService {
	return &funnelService{
		purchaseRepo:  purchaseRepo,
		upsellRepo:    upsellRepo,
		gateway:       gateway,
		tokens:        tokens,
		mailer:        mailer,
		funnelBaseURL: funnelBaseURL,
	}
}

// SubmitPurchase runs the initial purchase flow
func (s *funnelService) SubmitPurchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResult, error) {
	if req.Phone == "" || req.Metodo == "" || req.Email == "" {
		return nil, &ValidationError{Message: "Campos obrigatórios: phone, metodo, email"}
	}
	if req.Metodo != MethodMpesa && req.Metodo != MethodEmola {
		return nil, &ValidationError{Message: "Método deve ser mpesa ou emola"}
	}

	reference := utils.GeneratePurchaseReference()

	// Single attempt; a failed charge aborts the flow with nothing written
	data, err := s.gateway.Charge(ctx, req.Metodo, purchaseAmount, req.Phone, reference)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		Nome:      req.Nome,
		Email:     req.Email,
		Phone:     utils.FormatPhoneNumber(req.Phone),
		Whatsapp:  req.Whatsapp,
		Metodo:    req.Metodo,
		Amount:    purchaseAmount,
		Reference: reference,
		CreatedAt: time.Now(),
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		// The customer has been charged at this point; there is no
		// transactional boundary across the two calls.
		logrus.WithError(err).WithField("reference", reference).
			Error("compra cobrada mas não registada")
		return nil, err
	}

	// Receipt delivery is fire-and-forget; the purchase stands regardless
	if err := s.mailer.SendReceipt(req.Email, req.Nome, reference, purchaseAmount, req.Metodo); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"reference": reference,
			"email":     req.Email,
		}).Warn("falha ao enviar email de confirmação")
	}

	upsellToken, err := s.tokens.Issue(token.CustomerData{
		Phone:     req.Phone,
		Method:    req.Metodo,
		Email:     req.Email,
		Nome:      req.Nome,
		Whatsapp:  req.Whatsapp,
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"reference": reference,
		"metodo":    req.Metodo,
		"amount":    purchaseAmount,
	}).Info("compra processada")

	return &PurchaseResult{
		Data:        data,
		UpsellToken: upsellToken,
		RedirectURL: fmt.Sprintf("%s/upsell1?token=%s", s.funnelBaseURL, upsellToken),
	}, nil
}

// SubmitUpsell runs one upsell step. All levels share the same shape; only
// the amount and whether a successor token is minted differ.
func (s *funnelService) SubmitUpsell(ctx context.Context, level int, tokenString string) (*UpsellResult, error) {
	amount, ok := upsellAmounts[level]
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("Nível de upsell inválido: %d", level)}
	}
	if tokenString == "" {
		return nil, &ValidationError{Message: "Token de upsell obrigatório"}
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	exists, err := s.purchaseRepo.ExistsByReference(ctx, claims.ParentTxn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	if !exists {
		return nil, ErrUnknownParentTransaction
	}

	processed, err := s.upsellRepo.ExistsByParentTxn(ctx, level, claims.ParentTxn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	if processed {
		return nil, &DuplicateUpsellError{Level: level}
	}

	reference := utils.GenerateUpsellReference(level, claims.ParentTxn)

	data, err := s.gateway.Charge(ctx, claims.Method, amount, claims.MSISDN, reference)
	if err != nil {
		return nil, err
	}

	record := &models.UpsellPurchase{
		Nome:      claims.Nome,
		Email:     claims.Email,
		Phone:     utils.FormatPhoneNumber(claims.MSISDN),
		Whatsapp:  claims.Whatsapp,
		Metodo:    claims.Method,
		Amount:    amount,
		Reference: reference,
		ParentTxn: claims.ParentTxn,
		CreatedAt: time.Now(),
	}

	if err := s.upsellRepo.Create(ctx, level, record); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"reference": reference,
			"level":     level,
		}).Error("upsell cobrado mas não registado")
		return nil, err
	}

	result := &UpsellResult{
		Data:        data,
		FinalUpsell: level == maxUpsellLevel,
	}

	if level < maxUpsellLevel {
		// The successor token keeps the ORIGINAL purchase reference as its
		// parentTxn, not this level's reference. That is what lets level 3
		// still validate against the original purchase.
		next, err := s.tokens.Issue(token.CustomerData{
			Phone:     claims.MSISDN,
			Method:    claims.Method,
			Email:     claims.Email,
			Nome:      claims.Nome,
			Whatsapp:  claims.Whatsapp,
			Reference: claims.ParentTxn,
		})
		if err != nil {
			return nil, err
		}
		result.NextToken = next
		result.NextURL = fmt.Sprintf("%s/upsell%d?token=%s", s.funnelBaseURL, level+1, next)
	}

	logrus.WithFields(logrus.Fields{
		"reference": reference,
		"parentTxn": claims.ParentTxn,
		"level":     level,
		"amount":    amount,
	}).Info("upsell processado")

	return result, nil
}

// ValidateToken verifies a token and probes its parent purchase. It performs
// no charge and writes nothing.
func (s *funnelService) ValidateToken(ctx context.Context, tokenString string) (*TokenStatus, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	exists, err := s.purchaseRepo.ExistsByReference(ctx, claims.ParentTxn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	return &TokenStatus{
		Claims:      claims,
		ParentValid: exists,
	}, nil
}
