// cmd/seed/main.go
//
// Development seeder. Wipes the marketplace tables and repopulates them with
// a small set of creators, works, offerings, splits and completed orders so
// the analytics endpoints have something to chew on.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/creativechain/creativechain-backend/internal/config"
	"github.com/creativechain/creativechain-backend/internal/database"
	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	if cfg.Environment == "production" {
		logrus.Fatal("Refusing to seed a production database")
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	// Wipe in FK-safe order
	logrus.Info("Cleaning old data...")
	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM royalty_splits")
	db.Exec("DELETE FROM license_offerings")
	db.Exec("DELETE FROM creative_works")
	db.Exec("DELETE FROM users")

	// Users
	logrus.Info("Creating users...")
	admin := models.User{
		Username:      "admin",
		Email:         "admin@creativechain.app",
		UserType:      models.UserTypeAdmin,
		Status:        models.UserStatusActive,
		WalletAddress: utils.GenerateWalletAddress(),
	}
	admin.SetPassword("Admin123!")
	db.Create(&admin)

	creators := make([]models.User, 0, 3)
	for i := 1; i <= 3; i++ {
		creator := models.User{
			Username:      fmt.Sprintf("creator%d", i),
			Email:         fmt.Sprintf("creator%d@creativechain.app", i),
			UserType:      models.UserTypeCreator,
			Status:        models.UserStatusActive,
			WalletAddress: utils.GenerateWalletAddress(),
		}
		creator.SetPassword("Creator123!")
		db.Create(&creator)
		creators = append(creators, creator)
	}

	buyers := make([]models.User, 0, 5)
	for i := 1; i <= 5; i++ {
		buyer := models.User{
			Username:      fmt.Sprintf("buyer%d", i),
			Email:         fmt.Sprintf("buyer%d@creativechain.app", i),
			UserType:      models.UserTypeBuyer,
			Status:        models.UserStatusActive,
			WalletAddress: utils.GenerateWalletAddress(),
		}
		buyer.SetPassword("Buyer123!")
		db.Create(&buyer)
		buyers = append(buyers, buyer)
	}

	// Works with offerings and splits
	logrus.Info("Creating works and offerings...")
	categories := []string{"illustration", "photography", "music", "3d"}
	offerings := make([]models.LicenseOffering, 0)

	for i := 0; i < 8; i++ {
		creator := creators[i%len(creators)]
		work := models.CreativeWork{
			CreatorID:   creator.ID,
			Title:       fmt.Sprintf("Sample Work %d", i+1),
			Description: "Seeded creative work for local development",
			Category:    categories[i%len(categories)],
			ContentType: "image/png",
			FileURLs:    pq.StringArray{fmt.Sprintf("/uploads/works/sample%d.png", i+1)},
			Tags:        pq.StringArray{"sample", categories[i%len(categories)]},
			Status:      models.WorkStatusPublished,
			ViewCount:   int64(rand.Intn(500)),
		}
		db.Create(&work)

		for j, lt := range []models.LicenseType{models.LicenseTypeStandard, models.LicenseTypeCommercial} {
			offering := models.LicenseOffering{
				WorkID:      work.ID,
				LicenseType: lt,
				Price:       float64(25*(j+1) + 10*i),
				IsActive:    true,
			}
			db.Create(&offering)
			offerings = append(offerings, offering)
		}

		// 70/30 split between the creator and a collaborator wallet
		db.Create(&models.RoyaltySplit{
			WorkID:           work.ID,
			RecipientAddress: creator.WalletAddress,
			SplitPercentage:  70,
		})
		db.Create(&models.RoyaltySplit{
			WorkID:           work.ID,
			RecipientAddress: utils.GenerateWalletAddress(),
			SplitPercentage:  30,
		})
	}

	// Completed orders spread over the last 60 days
	logrus.Info("Creating orders...")
	for i := 0; i < 40; i++ {
		offering := offerings[rand.Intn(len(offerings))]
		buyer := buyers[rand.Intn(len(buyers))]
		purchasedAt := time.Now().AddDate(0, 0, -rand.Intn(60))

		order := models.Order{
			OfferingID:       offering.ID,
			WorkID:           offering.WorkID,
			BuyerID:          buyer.ID,
			Amount:           offering.Price,
			PaymentReference: fmt.Sprintf("cs_seed_%03d", i),
			Status:           models.OrderStatusCompleted,
			MintHash:         "0x" + utils.HashString(fmt.Sprintf("seed_mint_%03d", i)),
			PurchasedAt:      &purchasedAt,
		}
		db.Create(&order)
	}

	logrus.Info("Seed completed")
	logrus.Info("Admin: admin@creativechain.app / Admin123!")
	logrus.Info("Creators: creator1..creator3@creativechain.app / Creator123!")
	logrus.Info("Buyers: buyer1..buyer5@creativechain.app / Buyer123!")
}
