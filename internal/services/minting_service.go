// internal/services/minting_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/config"
	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

// MintingService records license mints on-chain. The chain interaction is
// simulated: a deterministic record hash stands in for the transaction hash
// until the contract integration lands.
type MintingService struct {
	db     *gorm.DB
	config *config.Config
}

func NewMintingService(db *gorm.DB, config *config.Config) *MintingService {
	return &MintingService{
		db:     db,
		config: config,
	}
}

// NetworkInfo describes the chain the mint records target.
type NetworkInfo struct {
	Network         string `json:"network"`
	RPCURL          string `json:"rpc_url"`
	ContractAddress string `json:"contract_address"`
}

// GetNetworkInfo returns the configured chain endpoints so clients can read
// mint records themselves.
func (s *MintingService) GetNetworkInfo() NetworkInfo {
	return NetworkInfo{
		Network:         s.config.Blockchain.Network,
		RPCURL:          s.config.Blockchain.RPCURL,
		ContractAddress: s.config.Blockchain.ContractAddress,
	}
}

// MintLicense produces the mint hash for a completed order and stores it on
// the order row.
func (s *MintingService) MintLicense(order *models.Order) (string, error) {
	if order.Status != models.OrderStatusCompleted {
		return "", errors.New("can only mint completed orders")
	}

	recordData := fmt.Sprintf("license_mint:%s:%s:%s:%s:%d",
		order.ID.String(),
		order.OfferingID.String(),
		order.BuyerID.String(),
		s.config.Blockchain.ContractAddress,
		time.Now().Unix(),
	)

	// TODO: replace with an on-chain mint call once the contract is deployed
	hash := "0x" + utils.HashString(recordData)

	order.MintHash = hash
	if err := s.db.Model(order).Update("mint_hash", hash).Error; err != nil {
		return "", fmt.Errorf("failed to store mint hash: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"mint_hash": hash,
		"network":   s.config.Blockchain.Network,
	}).Info("License minted")

	return hash, nil
}

// GetTotalSupply counts every minted license across all works.
func (s *MintingService) GetTotalSupply() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Order{}).
		Where("mint_hash <> '' AND status = ?", models.OrderStatusCompleted).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count minted licenses: %w", err)
	}

	return total, nil
}

// GetLicenseTotalSupply counts minted licenses for a single offering.
func (s *MintingService) GetLicenseTotalSupply(offeringID uuid.UUID) (int64, error) {
	var offering models.LicenseOffering
	if err := s.db.First(&offering, "id = ?", offeringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrOfferingNotFound
		}
		return 0, fmt.Errorf("database error: %w", err)
	}

	var total int64
	if err := s.db.Model(&models.Order{}).
		Where("offering_id = ? AND mint_hash <> '' AND status = ?", offeringID, models.OrderStatusCompleted).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count minted licenses: %w", err)
	}

	return total, nil
}

// VerifyMint checks that an order carries a mint hash and is still completed.
func (s *MintingService) VerifyMint(orderID uuid.UUID) (bool, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.New("order not found")
		}
		return false, fmt.Errorf("database error: %w", err)
	}

	if order.MintHash == "" {
		return false, nil
	}

	return order.Status == models.OrderStatusCompleted, nil
}
