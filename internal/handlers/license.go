// internal/handlers/license.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/creativechain/creativechain-backend/internal/services"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
	royaltyService *services.RoyaltyService
}

func NewLicenseHandler(licenseService *services.LicenseService, royaltyService *services.RoyaltyService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
		royaltyService: royaltyService,
	}
}

// POST /license-offerings
func (h *LicenseHandler) UpsertOffering(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.UpsertOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	offering, err := h.licenseService.UpsertOffering(creatorID, &req)
	if err != nil {
		writeWorkError(c, err)
		return
	}

	utils.SuccessResponse(c, offering)
}

// GET /works/:id/offerings
func (h *LicenseHandler) GetWorkOfferings(c *gin.Context) {
	workID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid work ID", nil)
		return
	}

	offerings, err := h.licenseService.GetWorkOfferings(workID)
	if err != nil {
		writeWorkError(c, err)
		return
	}

	utils.SuccessResponse(c, offerings)
}

// DELETE /license-offerings/:id
func (h *LicenseHandler) DeactivateOffering(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	offeringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid offering ID", nil)
		return
	}

	if err := h.licenseService.DeactivateOffering(offeringID, creatorID); err != nil {
		writeWorkError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "License offering deactivated",
	})
}

// POST /royalty-splits/configure
func (h *LicenseHandler) ConfigureSplits(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.ConfigureSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	splits, err := h.royaltyService.ConfigureSplits(creatorID, &req)
	if err != nil {
		writeWorkError(c, err)
		return
	}

	utils.CreatedResponse(c, splits)
}

// GET /works/:id/royalty-splits
func (h *LicenseHandler) GetSplits(c *gin.Context) {
	workID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid work ID", nil)
		return
	}

	splits, err := h.royaltyService.GetSplits(workID)
	if err != nil {
		writeWorkError(c, err)
		return
	}

	utils.SuccessResponse(c, splits)
}

// writeWorkError maps the shared work and split sentinel errors onto HTTP
// statuses. Anything that is not a sentinel or a validation failure is a
// store error and surfaces as 500.
func writeWorkError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, services.ErrWorkNotFound):
		utils.NotFoundResponse(c, "Work")
	case errors.Is(err, services.ErrOfferingNotFound):
		utils.NotFoundResponse(c, "License offering")
	case errors.Is(err, services.ErrNotWorkOwner):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrSplitsNotHundred):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
