// internal/services/license_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

type LicenseService struct {
	db             *gorm.DB
	royaltyService *RoyaltyService
}

type UpsertOfferingRequest struct {
	WorkID       uuid.UUID    `json:"work_id" validate:"required"`
	LicenseType  string       `json:"license_type" validate:"required,license_type"`
	Price        float64      `json:"price" validate:"required,gt=0"`
	UsageLimit   int          `json:"usage_limit" validate:"gte=0"`
	DurationDays int          `json:"duration_days" validate:"gte=0"`
	Splits       []SplitInput `json:"splits,omitempty" validate:"omitempty,min=1,dive"`
}

func NewLicenseService(db *gorm.DB, royaltyService *RoyaltyService) *LicenseService {
	return &LicenseService{
		db:             db,
		royaltyService: royaltyService,
	}
}

// UpsertOffering creates or updates the offering for a (work, license_type)
// pair. When the request carries royalty splits they are configured in the
// same call.
func (s *LicenseService) UpsertOffering(creatorID uuid.UUID, req *UpsertOfferingRequest) (*models.LicenseOffering, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify work exists and is owned by the creator
	var work models.CreativeWork
	if err := s.db.First(&work, "id = ?", req.WorkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if work.CreatorID != creatorID {
		return nil, ErrNotWorkOwner
	}

	// Upsert on the (work, license_type) pair
	var offering models.LicenseOffering
	err := s.db.Where("work_id = ? AND license_type = ?", req.WorkID, req.LicenseType).
		First(&offering).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		offering = models.LicenseOffering{
			WorkID:       req.WorkID,
			LicenseType:  models.LicenseType(req.LicenseType),
			Price:        req.Price,
			UsageLimit:   req.UsageLimit,
			DurationDays: req.DurationDays,
			IsActive:     true,
		}
		if err := s.db.Create(&offering).Error; err != nil {
			return nil, fmt.Errorf("failed to create license offering: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	} else {
		offering.Price = req.Price
		offering.UsageLimit = req.UsageLimit
		offering.DurationDays = req.DurationDays
		offering.IsActive = true

		if err := s.db.Save(&offering).Error; err != nil {
			return nil, fmt.Errorf("failed to update license offering: %w", err)
		}
	}

	// Optional royalty splits ride along with the offering
	if len(req.Splits) > 0 {
		splitsReq := &ConfigureSplitsRequest{
			WorkID: req.WorkID,
			Splits: req.Splits,
		}
		if _, err := s.royaltyService.ConfigureSplits(creatorID, splitsReq); err != nil {
			return nil, err
		}
	}

	return &offering, nil
}

func (s *LicenseService) GetWorkOfferings(workID uuid.UUID) ([]models.LicenseOffering, error) {
	var work models.CreativeWork
	if err := s.db.First(&work, "id = ?", workID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var offerings []models.LicenseOffering
	if err := s.db.Where("work_id = ? AND is_active = ?", workID, true).
		Order("price ASC").Find(&offerings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch license offerings: %w", err)
	}

	return offerings, nil
}

func (s *LicenseService) DeactivateOffering(offeringID, creatorID uuid.UUID) error {
	var offering models.LicenseOffering
	if err := s.db.Preload("Work").First(&offering, "id = ?", offeringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfferingNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if offering.Work.CreatorID != creatorID {
		return ErrNotWorkOwner
	}

	offering.IsActive = false
	if err := s.db.Save(&offering).Error; err != nil {
		return fmt.Errorf("failed to deactivate license offering: %w", err)
	}

	return nil
}
