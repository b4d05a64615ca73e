// internal/handlers/payment.go
package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/creativechain/creativechain-backend/internal/services"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

const maxWebhookBodyBytes = 65536

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// GET /purchases/config
//
// The web client reads the publishable key and fee rate from here instead of
// baking them into its build.
func (h *PaymentHandler) GetPaymentConfig(c *gin.Context) {
	utils.SuccessResponse(c, h.paymentService.PublicConfig())
}

// POST /purchases/session
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	buyerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	response, err := h.paymentService.CreateCheckoutSession(buyerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrOfferingNotFound) {
			utils.NotFoundResponse(c, "License offering")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, response)
}

// POST /purchases/webhook
//
// Stripe calls this endpoint directly, so it sits outside the auth middleware
// and responds with plain status codes rather than the API envelope.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read webhook body", nil)
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(payload, signature); err != nil {
		if errors.Is(err, services.ErrInvalidWebhook) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"received": true})
}

// GET /purchases/history
func (h *PaymentHandler) GetPurchaseHistory(c *gin.Context) {
	buyerID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	orders, total, err := h.paymentService.GetPurchaseHistory(buyerID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /purchases/refund
func (h *PaymentHandler) RefundOrder(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	// Refunds are an admin operation
	userType, exists := utils.GetUserTypeFromContext(c)
	if !exists || userType != "admin" {
		utils.ForbiddenResponse(c, "")
		return
	}

	var req services.RefundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.paymentService.RefundOrder(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Refund processed successfully",
	})
}
