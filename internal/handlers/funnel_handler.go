package handlers

import (
	"errors"
	"net/http"

	"github.com/GGlistano/backbolt/internal/services"
	"github.com/GGlistano/backbolt/pkg/paygateway"
	"github.com/GGlistano/backbolt/pkg/token"
	"github.com/gin-gonic/gin"
)

// FunnelHandler handles funnel-related HTTP requests
type FunnelHandler struct {
	funnelService services.FunnelService
}

// NewFunnelHandler creates a new FunnelHandler
func NewFunnelHandler(funnelService services.FunnelService) *FunnelHandler {
	return &FunnelHandler{
		funnelService: funnelService,
	}
}

type tokenRequest struct {
	Token string `json:"token"`
}

// SubmitPurchase handles POST /api/comprar
func (h *FunnelHandler) SubmitPurchase(c *gin.Context) {
	var req services.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Corpo da requisição inválido"})
		return
	}

	result, err := h.funnelService.SubmitPurchase(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"data":        result.Data,
		"upsellToken": result.UpsellToken,
		"redirectUrl": result.RedirectURL,
	})
}

// SubmitUpsell returns the handler for POST /api/upsell{level}
func (h *FunnelHandler) SubmitUpsell(level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Token de upsell obrigatório"})
			return
		}

		result, err := h.funnelService.SubmitUpsell(c.Request.Context(), level, req.Token)
		if err != nil {
			respondError(c, err)
			return
		}

		response := gin.H{
			"status": "ok",
			"data":   result.Data,
		}
		if result.NextToken != "" {
			response["proximoUpsellToken"] = result.NextToken
			response["proximoUpsellUrl"] = result.NextURL
		}
		if result.FinalUpsell {
			response["finalUpsell"] = true
		}

		c.JSON(http.StatusOK, response)
	}
}

// ValidateToken handles POST /api/validate-token. It is a debug probe the
// funnel pages poll: it always answers 200, surfacing failures inside the
// body instead of the status code.
func (h *FunnelHandler) ValidateToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusOK, gin.H{"status": "error", "valid": false, "message": "Token obrigatório"})
		return
	}

	status, err := h.funnelService.ValidateToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "valid": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"valid":           true,
		"dados":           status.Claims,
		"transacaoValida": status.ParentValid,
	})
}

// respondError maps the service error taxonomy onto HTTP responses
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var duplicateErr *services.DuplicateUpsellError
	var gatewayErr *paygateway.GatewayError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": validationErr.Message})
	case errors.Is(err, token.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Token inválido ou expirado"})
	case errors.Is(err, services.ErrUnknownParentTransaction):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Transação principal não encontrada"})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": duplicateErr.Error()})
	case errors.As(err, &gatewayErr):
		// Forward the provider's status and diagnostics verbatim
		c.JSON(gatewayErr.StatusCode, gin.H{
			"status":  "error",
			"message": "Erro no processamento do pagamento",
			"details": gatewayErr.Details(),
		})
	case errors.Is(err, paygateway.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Configuração do método de pagamento não encontrada"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Erro interno do servidor"})
	}
}
