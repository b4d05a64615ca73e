// internal/handlers/work.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/services"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

type WorkHandler struct {
	workService    *services.WorkService
	storageService *services.StorageService
}

func NewWorkHandler(workService *services.WorkService, storageService *services.StorageService) *WorkHandler {
	return &WorkHandler{
		workService:    workService,
		storageService: storageService,
	}
}

// POST /works
func (h *WorkHandler) CreateWork(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	work, err := h.workService.CreateWork(creatorID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, work)
}

// GET /works
func (h *WorkHandler) SearchWorks(c *gin.Context) {
	params := services.WorkSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		creatorID, err := uuid.Parse(creatorIDStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid creator ID", nil)
			return
		}
		params.CreatorID = &creatorID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.WorkStatus(statusStr)
		params.Status = &status
	}

	if tags := c.Query("tags"); tags != "" {
		params.Tags = strings.Split(tags, ",")
	}

	works, total, err := h.workService.SearchWorks(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(works, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /works/:id
func (h *WorkHandler) GetWork(c *gin.Context) {
	workID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid work ID", nil)
		return
	}

	var viewerID *uuid.UUID
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if id, err := uuid.Parse(userIDStr); err == nil {
			viewerID = &id
		}
	}

	work, err := h.workService.GetWork(workID, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrWorkNotFound) {
			utils.NotFoundResponse(c, "Work")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, work)
}

// PUT /works/:id
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	workID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid work ID", nil)
		return
	}

	var req services.UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	work, err := h.workService.UpdateWork(workID, creatorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrWorkNotFound) {
			utils.NotFoundResponse(c, "Work")
			return
		}
		if errors.Is(err, services.ErrNotWorkOwner) {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, work)
}

// DELETE /works/:id
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	workID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid work ID", nil)
		return
	}

	if err := h.workService.DeleteWork(workID, creatorID); err != nil {
		if errors.Is(err, services.ErrWorkNotFound) {
			utils.NotFoundResponse(c, "Work")
			return
		}
		if errors.Is(err, services.ErrNotWorkOwner) {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.ConflictResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Work deleted successfully",
	})
}

// POST /works/upload
func (h *WorkHandler) UploadFile(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	category := c.DefaultPostForm("category", "works")
	options := h.storageService.GetDefaultUploadOptions(category)

	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, result)
}

// requireUserID pulls the authenticated user out of the gin context, writing
// the error response itself when the context has none.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}
