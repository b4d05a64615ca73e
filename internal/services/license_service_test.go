// internal/services/license_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

func TestUpsertOfferingCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewLicenseService(db, NewRoyaltyService(db))

	created, err := svc.UpsertOffering(creator.ID, &UpsertOfferingRequest{
		WorkID:      work.ID,
		LicenseType: "standard",
		Price:       50,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, 50.0, created.Price)

	// Same (work, license_type) pair updates in place
	updated, err := svc.UpsertOffering(creator.ID, &UpsertOfferingRequest{
		WorkID:       work.ID,
		LicenseType:  "standard",
		Price:        75,
		UsageLimit:   10,
		DurationDays: 365,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 75.0, updated.Price)
	assert.Equal(t, 10, updated.UsageLimit)

	var count int64
	require.NoError(t, db.Model(&models.LicenseOffering{}).Where("work_id = ?", work.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A different license type is a new offering
	_, err = svc.UpsertOffering(creator.ID, &UpsertOfferingRequest{
		WorkID:      work.ID,
		LicenseType: "commercial",
		Price:       120,
	})
	require.NoError(t, err)

	offerings, err := svc.GetWorkOfferings(work.ID)
	require.NoError(t, err)
	assert.Len(t, offerings, 2)
}

func TestUpsertOfferingConfiguresSplitsInSameCall(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	royaltyService := NewRoyaltyService(db)
	svc := NewLicenseService(db, royaltyService)

	_, err := svc.UpsertOffering(creator.ID, &UpsertOfferingRequest{
		WorkID:      work.ID,
		LicenseType: "standard",
		Price:       50,
		Splits: []SplitInput{
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 70},
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 30},
		},
	})
	require.NoError(t, err)

	splits, err := royaltyService.GetSplits(work.ID)
	require.NoError(t, err)
	assert.Len(t, splits, 2)
}

func TestUpsertOfferingRejectsBadSplits(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewLicenseService(db, NewRoyaltyService(db))

	_, err := svc.UpsertOffering(creator.ID, &UpsertOfferingRequest{
		WorkID:      work.ID,
		LicenseType: "standard",
		Price:       50,
		Splits: []SplitInput{
			{RecipientAddress: utils.GenerateWalletAddress(), SplitPercentage: 99},
		},
	})
	assert.ErrorIs(t, err, ErrSplitsNotHundred)
}

func TestUpsertOfferingOwnership(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	stranger := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewLicenseService(db, NewRoyaltyService(db))

	_, err := svc.UpsertOffering(stranger.ID, &UpsertOfferingRequest{
		WorkID:      work.ID,
		LicenseType: "standard",
		Price:       50,
	})
	assert.ErrorIs(t, err, ErrNotWorkOwner)
}

func TestDeactivateOfferingHidesItFromListing(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	svc := NewLicenseService(db, NewRoyaltyService(db))

	offering, err := svc.UpsertOffering(creator.ID, &UpsertOfferingRequest{
		WorkID:      work.ID,
		LicenseType: "standard",
		Price:       50,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateOffering(offering.ID, creator.ID))

	offerings, err := svc.GetWorkOfferings(work.ID)
	require.NoError(t, err)
	assert.Empty(t, offerings)
}
