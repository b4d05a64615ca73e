// internal/handlers/minting.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/creativechain/creativechain-backend/internal/services"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

type MintingHandler struct {
	mintingService *services.MintingService
}

func NewMintingHandler(mintingService *services.MintingService) *MintingHandler {
	return &MintingHandler{
		mintingService: mintingService,
	}
}

// GET /minting/network
func (h *MintingHandler) GetNetworkInfo(c *gin.Context) {
	utils.SuccessResponse(c, h.mintingService.GetNetworkInfo())
}

// GET /minting/supply
func (h *MintingHandler) GetTotalSupply(c *gin.Context) {
	total, err := h.mintingService.GetTotalSupply()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"total_supply": total,
	})
}

// GET /minting/supply/:offeringId
func (h *MintingHandler) GetLicenseTotalSupply(c *gin.Context) {
	offeringID, err := uuid.Parse(c.Param("offeringId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid offering ID", nil)
		return
	}

	total, err := h.mintingService.GetLicenseTotalSupply(offeringID)
	if err != nil {
		if errors.Is(err, services.ErrOfferingNotFound) {
			utils.NotFoundResponse(c, "License offering")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"offering_id":  offeringID,
		"total_supply": total,
	})
}

// GET /minting/verify/:orderId
func (h *MintingHandler) VerifyMint(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	verified, err := h.mintingService.VerifyMint(orderID)
	if err != nil {
		utils.NotFoundResponse(c, "Order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order_id": orderID,
		"verified": verified,
	})
}
