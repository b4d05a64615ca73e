// internal/services/wallet_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

// WalletService hands out custodial wallet addresses for users who register
// without bringing their own. Key material lives with the custody provider;
// this side only tracks the address.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// CreateWallet allocates a custodial address, retrying on the unlikely
// collision with an existing one.
func (s *WalletService) CreateWallet() (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		address := utils.GenerateWalletAddress()

		var count int64
		if err := s.db.Model(&models.User{}).Where("wallet_address = ?", address).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check wallet address: %w", err)
		}
		if count == 0 {
			return address, nil
		}

		logrus.WithField("address", address).Warn("Wallet address collision, regenerating")
	}

	return "", fmt.Errorf("failed to allocate unique wallet address")
}
