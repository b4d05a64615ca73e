// internal/services/work_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

type WorkService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateWorkRequest struct {
	Title       string                 `json:"title" validate:"required,max=255"`
	Description string                 `json:"description,omitempty"`
	Category    string                 `json:"category" validate:"required,max=100"`
	ContentType string                 `json:"content_type,omitempty"`
	FileURLs    []string               `json:"file_urls,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type UpdateWorkRequest struct {
	Title       *string                `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string                `json:"description,omitempty"`
	Category    *string                `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags        []string               `json:"tags,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type WorkSearchParams struct {
	utils.PaginationParams
	CreatorID *uuid.UUID
	Status    *models.WorkStatus
	Tags      []string
}

func NewWorkService(db *gorm.DB, storageService *StorageService) *WorkService {
	return &WorkService{
		db:             db,
		storageService: storageService,
	}
}

func (s *WorkService) CreateWork(creatorID uuid.UUID, req *CreateWorkRequest) (*models.CreativeWork, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify creator exists and is active
	var creator models.User
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		return nil, errors.New("creator not found")
	}

	if creator.Status != models.UserStatusActive {
		return nil, errors.New("creator account is not active")
	}

	if creator.UserType != models.UserTypeCreator {
		return nil, errors.New("only creators can upload works")
	}

	work := &models.CreativeWork{
		CreatorID:   creatorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ContentType: req.ContentType,
		FileURLs:    pq.StringArray(req.FileURLs),
		Tags:        pq.StringArray(req.Tags),
		Metadata:    models.JSONB(req.Metadata),
		Status:      models.WorkStatusPublished,
	}

	if err := s.db.Create(work).Error; err != nil {
		return nil, fmt.Errorf("failed to create work: %w", err)
	}

	return work, nil
}

func (s *WorkService) GetWork(id uuid.UUID, viewerID *uuid.UUID) (*models.CreativeWork, error) {
	var work models.CreativeWork
	if err := s.db.Preload("Creator").Preload("Offerings", "is_active = ?", true).
		First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Count a view for everyone but the owner
	if viewerID == nil || *viewerID != work.CreatorID {
		s.db.Model(&work).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	}

	return &work, nil
}

func (s *WorkService) SearchWorks(params WorkSearchParams) ([]models.CreativeWork, int64, error) {
	query := s.db.Model(&models.CreativeWork{}).Preload("Creator")

	if params.CreatorID != nil {
		query = query.Where("creator_id = ?", *params.CreatorID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		query = query.Where("status = ?", models.WorkStatusPublished)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchTerm, searchTerm)
	}
	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", pq.StringArray(params.Tags))
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count works: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "title", "view_count"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var works []models.CreativeWork
	if err := query.Find(&works).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch works: %w", err)
	}

	return works, total, nil
}

// UpdateWork edits a work's metadata. Only the owning creator may edit;
// published file content stays immutable.
func (s *WorkService) UpdateWork(id, creatorID uuid.UUID, req *UpdateWorkRequest) (*models.CreativeWork, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var work models.CreativeWork
	if err := s.db.First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if work.CreatorID != creatorID {
		return nil, ErrNotWorkOwner
	}

	if req.Title != nil {
		work.Title = *req.Title
	}
	if req.Description != nil {
		work.Description = *req.Description
	}
	if req.Category != nil {
		work.Category = *req.Category
	}
	if req.Tags != nil {
		work.Tags = pq.StringArray(req.Tags)
	}
	if req.Metadata != nil {
		work.Metadata = models.JSONB(req.Metadata)
	}

	if err := s.db.Save(&work).Error; err != nil {
		return nil, fmt.Errorf("failed to update work: %w", err)
	}

	return &work, nil
}

func (s *WorkService) DeleteWork(id, creatorID uuid.UUID) error {
	var work models.CreativeWork
	if err := s.db.First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if work.CreatorID != creatorID {
		return ErrNotWorkOwner
	}

	// Works with completed sales stay in place; the order ledger references them
	var orderCount int64
	if err := s.db.Model(&models.Order{}).
		Where("work_id = ? AND status = ?", id, models.OrderStatusCompleted).
		Count(&orderCount).Error; err != nil {
		return fmt.Errorf("failed to check orders: %w", err)
	}

	if orderCount > 0 {
		return errors.New("cannot delete a work with completed sales")
	}

	if err := s.db.Delete(&work).Error; err != nil {
		return fmt.Errorf("failed to delete work: %w", err)
	}

	return nil
}
