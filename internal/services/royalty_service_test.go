// internal/services/royalty_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

func TestValidateSplits(t *testing.T) {
	cases := []struct {
		name        string
		percentages []float64
		valid       bool
	}{
		{"single recipient", []float64{100}, true},
		{"even split", []float64{50, 50}, true},
		{"uneven split", []float64{70, 30}, true},
		{"sum below hundred", []float64{60, 39}, false},
		{"sum above hundred", []float64{60, 41}, false},
		{"rounding tolerance", []float64{33.33, 33.33, 33.34}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			splits := make([]SplitInput, 0, len(tc.percentages))
			for _, p := range tc.percentages {
				splits = append(splits, SplitInput{
					RecipientAddress: utils.GenerateWalletAddress(),
					SplitPercentage:  p,
				})
			}

			err := ValidateSplits(splits)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrSplitsNotHundred)
			}
		})
	}
}

func TestConfigureSplitsRejectsBadSumWithoutWriting(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewRoyaltyService(db)

	_, err := svc.ConfigureSplits(creator.ID, &ConfigureSplitsRequest{
		WorkID: work.ID,
		Splits: []SplitInput{
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 60},
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 39},
		},
	})
	assert.ErrorIs(t, err, ErrSplitsNotHundred)

	var count int64
	require.NoError(t, db.Model(&models.RoyaltySplit{}).Where("work_id = ?", work.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestConfigureSplitsReplacesExistingSet(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewRoyaltyService(db)

	first := []SplitInput{
		{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 50},
		{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 50},
	}
	_, err := svc.ConfigureSplits(creator.ID, &ConfigureSplitsRequest{WorkID: work.ID, Splits: first})
	require.NoError(t, err)

	replacement := utils.GenerateWalletAddress()
	splits, err := svc.ConfigureSplits(creator.ID, &ConfigureSplitsRequest{
		WorkID: work.ID,
		Splits: []SplitInput{{RecipientAddress: replacement, SplitPercentage: 100}},
	})
	require.NoError(t, err)
	assert.Len(t, splits, 1)

	stored, err := svc.GetSplits(work.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, replacement, stored[0].RecipientAddress)
	assert.Equal(t, 100.0, stored[0].SplitPercentage)
}

func TestConfigureSplitsFailedReplaceKeepsOldSet(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewRoyaltyService(db)

	_, err := svc.ConfigureSplits(creator.ID, &ConfigureSplitsRequest{
		WorkID: work.ID,
		Splits: []SplitInput{{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 100}},
	})
	require.NoError(t, err)

	// A rejected submission must leave the previous set untouched
	_, err = svc.ConfigureSplits(creator.ID, &ConfigureSplitsRequest{
		WorkID: work.ID,
		Splits: []SplitInput{{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 55}},
	})
	assert.Error(t, err)

	stored, err := svc.GetSplits(work.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, 100.0, stored[0].SplitPercentage)
}

func TestConfigureSplitsOwnershipAndExistence(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	stranger := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewRoyaltyService(db)

	splits := []SplitInput{{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 100}}

	_, err := svc.ConfigureSplits(stranger.ID, &ConfigureSplitsRequest{WorkID: work.ID, Splits: splits})
	assert.ErrorIs(t, err, ErrNotWorkOwner)

	_, err = svc.ConfigureSplits(creator.ID, &ConfigureSplitsRequest{WorkID: uuid.New(), Splits: splits})
	assert.ErrorIs(t, err, ErrWorkNotFound)
}

func TestGetSplitsOrdersByPercentage(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewRoyaltyService(db)

	_, err := svc.ConfigureSplits(creator.ID, &ConfigureSplitsRequest{
		WorkID: work.ID,
		Splits: []SplitInput{
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 20},
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 70},
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 10},
		},
	})
	require.NoError(t, err)

	stored, err := svc.GetSplits(work.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, 70.0, stored[0].SplitPercentage)
	assert.Equal(t, 20.0, stored[1].SplitPercentage)
	assert.Equal(t, 10.0, stored[2].SplitPercentage)
}
