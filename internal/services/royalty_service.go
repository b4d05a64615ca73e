// internal/services/royalty_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/database"
	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

var (
	ErrSplitsNotHundred = errors.New("split percentages must sum to exactly 100")
	ErrWorkNotFound     = errors.New("work not found")
	ErrNotWorkOwner     = errors.New("caller does not own this work")
)

type RoyaltyService struct {
	db *gorm.DB
}

type SplitInput struct {
	RecipientAddress string  `json:"recipient_address" validate:"required,wallet_address"`
	SplitPercentage  float64 `json:"split_percentage" validate:"required,gt=0,lte=100"`
}

type ConfigureSplitsRequest struct {
	WorkID uuid.UUID    `json:"work_id" validate:"required"`
	Splits []SplitInput `json:"splits" validate:"required,min=1,dive"`
}

func NewRoyaltyService(db *gorm.DB) *RoyaltyService {
	return &RoyaltyService{db: db}
}

// ValidateSplits accepts a split set iff the percentages sum to exactly 100.
// The rounding applies to the sum, not to each element.
func ValidateSplits(splits []SplitInput) error {
	var sum float64
	for _, split := range splits {
		sum += split.SplitPercentage
	}

	if math.Round(sum) != 100 {
		return ErrSplitsNotHundred
	}
	return nil
}

// ConfigureSplits replaces the full split set for a work. The delete and
// insert run inside one transaction so a failure cannot leave the work with
// zero splits.
func (s *RoyaltyService) ConfigureSplits(creatorID uuid.UUID, req *ConfigureSplitsRequest) ([]models.RoyaltySplit, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := ValidateSplits(req.Splits); err != nil {
		return nil, err
	}

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

	splits := make([]models.RoyaltySplit, 0, len(req.Splits))
	for _, input := range req.Splits {
		splits = append(splits, models.RoyaltySplit{
			WorkID:           req.WorkID,
			RecipientAddress: input.RecipientAddress,
			SplitPercentage:  input.SplitPercentage,
		})
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("work_id = ?", req.WorkID).Delete(&models.RoyaltySplit{}).Error; err != nil {
			return fmt.Errorf("failed to clear existing splits: %w", err)
		}
		if err := tx.Create(&splits).Error; err != nil {
			return fmt.Errorf("failed to create splits: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return splits, nil
}

// GetSplits returns the current split set for a work.
func (s *RoyaltyService) GetSplits(workID uuid.UUID) ([]models.RoyaltySplit, error) {
	var work models.CreativeWork
	if err := s.db.First(&work, "id = ?", workID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var splits []models.RoyaltySplit
	if err := s.db.Where("work_id = ?", workID).Order("split_percentage DESC").Find(&splits).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch splits: %w", err)
	}

	return splits, nil
}
