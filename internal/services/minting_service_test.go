// internal/services/minting_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativechain/creativechain-backend/internal/config"
	"github.com/creativechain/creativechain-backend/internal/models"
)

func testMintingConfig() *config.Config {
	return &config.Config{
		Blockchain: config.BlockchainConfig{
			Network:         "polygon",
			ContractAddress: "0x0000000000000000000000000000000000000001",
		},
	}
}

func TestMintLicense(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	buyer := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	offering := createTestOffering(t, db, work.ID, models.LicenseTypeStandard, 50)
	svc := NewMintingService(db, testMintingConfig())

	now := time.Now()
	order := createCompletedOrder(t, db, offering, buyer.ID, 50, now)

	hash, err := svc.MintLicense(order)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "0x"))
	assert.Len(t, hash, 66)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, hash, stored.MintHash)
}

func TestMintLicenseRejectsIncompleteOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewMintingService(db, testMintingConfig())

	order := &models.Order{Status: models.OrderStatusPending}
	_, err := svc.MintLicense(order)
	assert.Error(t, err)
}

func TestSupplyCounters(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	buyer := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	standard := createTestOffering(t, db, work.ID, models.LicenseTypeStandard, 50)
	commercial := createTestOffering(t, db, work.ID, models.LicenseTypeCommercial, 120)
	svc := NewMintingService(db, testMintingConfig())

	now := time.Now()
	for i := 0; i < 3; i++ {
		order := createCompletedOrder(t, db, standard, buyer.ID, 50, now)
		_, err := svc.MintLicense(order)
		require.NoError(t, err)
	}
	order := createCompletedOrder(t, db, commercial, buyer.ID, 120, now)
	_, err := svc.MintLicense(order)
	require.NoError(t, err)

	// completed but unminted orders do not count toward supply
	createCompletedOrder(t, db, standard, buyer.ID, 50, now)

	total, err := svc.GetTotalSupply()
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	standardSupply, err := svc.GetLicenseTotalSupply(standard.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), standardSupply)

	commercialSupply, err := svc.GetLicenseTotalSupply(commercial.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), commercialSupply)
}

func TestVerifyMint(t *testing.T) {
	db := newTestDB(t)
	creator := createTestCreator(t, db)
	buyer := createTestCreator(t, db)
	work := createTestWork(t, db, creator.ID, "Skyline", "photography")
	offering := createTestOffering(t, db, work.ID, models.LicenseTypeStandard, 50)
	svc := NewMintingService(db, testMintingConfig())

	now := time.Now()
	minted := createCompletedOrder(t, db, offering, buyer.ID, 50, now)
	_, err := svc.MintLicense(minted)
	require.NoError(t, err)

	unminted := createCompletedOrder(t, db, offering, buyer.ID, 50, now)

	verified, err := svc.VerifyMint(minted.ID)
	require.NoError(t, err)
	assert.True(t, verified)

	verified, err = svc.VerifyMint(unminted.ID)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestGetNetworkInfo(t *testing.T) {
	db := newTestDB(t)
	cfg := testMintingConfig()
	cfg.Blockchain.RPCURL = "https://polygon-rpc.example.com"
	svc := NewMintingService(db, cfg)

	info := svc.GetNetworkInfo()

	assert.Equal(t, "polygon", info.Network)
	assert.Equal(t, "https://polygon-rpc.example.com", info.RPCURL)
	assert.Equal(t, cfg.Blockchain.ContractAddress, info.ContractAddress)
}
