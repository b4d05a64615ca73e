// internal/services/payment_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	checkoutsession "github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/refund"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/config"
	"github.com/creativechain/creativechain-backend/internal/database"
	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

var (
	ErrOfferingNotFound   = errors.New("license offering not found")
	ErrOfferingInactive   = errors.New("license offering is not active")
	ErrInvalidWebhook     = errors.New("invalid webhook payload")
	ErrSelfPurchase       = errors.New("creators cannot purchase their own works")
	ErrOrderNotRefundable = errors.New("can only refund completed orders")
)

type PaymentService struct {
	db             *gorm.DB
	config         *config.Config
	mintingService *MintingService
}

type CreateSessionRequest struct {
	OfferingID uuid.UUID `json:"offering_id" validate:"required"`
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type RefundOrderRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Reason  string    `json:"reason" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config, mintingService *MintingService) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:             db,
		config:         config,
		mintingService: mintingService,
	}
}

// PaymentPublicConfig is the client-safe slice of the payment configuration.
type PaymentPublicConfig struct {
	PublishableKey     string  `json:"publishable_key"`
	PlatformFeePercent float64 `json:"platform_fee_percent"`
}

// PublicConfig returns the values the web client needs to start a checkout.
func (s *PaymentService) PublicConfig() PaymentPublicConfig {
	return PaymentPublicConfig{
		PublishableKey:     s.config.Payment.StripePublishableKey,
		PlatformFeePercent: s.config.Payment.PlatformFeePercent,
	}
}

// PlatformFeeCents computes the marketplace cut on an amount in cents,
// rounded to the nearest cent.
func PlatformFeeCents(amountInCents int64, percent float64) int64 {
	return int64(math.Round(float64(amountInCents) * percent / 100))
}

// CreateCheckoutSession starts a Stripe checkout for a license offering. The
// order itself is only created later, when the payment webhook confirms the
// charge.
func (s *PaymentService) CreateCheckoutSession(buyerID uuid.UUID, req *CreateSessionRequest) (*CheckoutSessionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var offering models.LicenseOffering
	if err := s.db.Preload("Work").First(&offering, "id = ?", req.OfferingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !offering.IsActive {
		return nil, ErrOfferingInactive
	}

	if offering.Work.CreatorID == buyerID {
		return nil, ErrSelfPurchase
	}

	// Stripe expects amounts in cents
	amountInCents := int64(offering.Price * 100)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(offering.Work.Title),
						Description: stripe.String(fmt.Sprintf("%s license", offering.LicenseType)),
					},
					UnitAmount: stripe.Int64(amountInCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.config.Frontend.BaseURL + "/purchases/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.config.Frontend.BaseURL + "/purchases/cancelled"),
	}
	params.AddMetadata("offering_id", offering.ID.String())
	params.AddMetadata("work_id", offering.WorkID.String())
	params.AddMetadata("buyer_id", buyerID.String())
	params.AddMetadata("platform_fee_cents", strconv.FormatInt(
		PlatformFeeCents(amountInCents, s.config.Payment.PlatformFeePercent), 10))

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSessionResponse{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// HandleWebhook verifies the Stripe signature and, on a completed checkout,
// records the corresponding order exactly once.
func (s *PaymentService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.config.Payment.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
		}
		return s.recordCompletedPurchase(&sess)

	default:
		logrus.WithField("event_type", event.Type).Debug("Ignoring webhook event")
		return nil
	}
}

func (s *PaymentService) recordCompletedPurchase(sess *stripe.CheckoutSession) error {
	offeringID, err := uuid.Parse(sess.Metadata["offering_id"])
	if err != nil {
		return fmt.Errorf("%w: bad offering_id metadata", ErrInvalidWebhook)
	}
	buyerID, err := uuid.Parse(sess.Metadata["buyer_id"])
	if err != nil {
		return fmt.Errorf("%w: bad buyer_id metadata", ErrInvalidWebhook)
	}

	// Idempotency: the session ID is the payment reference, and a replayed
	// webhook must not create a second order.
	var existing models.Order
	err = s.db.Where("payment_reference = ?", sess.ID).First(&existing).Error
	if err == nil {
		logrus.WithField("payment_reference", sess.ID).Info("Duplicate webhook, order already recorded")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("database error: %w", err)
	}

	var offering models.LicenseOffering
	if err := s.db.First(&offering, "id = ?", offeringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfferingNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	order := models.Order{
		OfferingID:       offering.ID,
		WorkID:           offering.WorkID,
		BuyerID:          buyerID,
		Amount:           float64(sess.AmountTotal) / 100,
		PaymentReference: sess.ID,
		Status:           models.OrderStatusCompleted,
		PurchasedAt:      &now,
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		// A concurrent webhook delivery may have won the unique index race.
		var dup models.Order
		if lookupErr := s.db.Where("payment_reference = ?", sess.ID).First(&dup).Error; lookupErr == nil {
			logrus.WithField("payment_reference", sess.ID).Info("Concurrent webhook, order already recorded")
			return nil
		}
		return fmt.Errorf("failed to record order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"offering_id": offering.ID,
		"buyer_id":    buyerID,
		"amount":      order.Amount,
	}).Info("Purchase recorded")

	// Mint failure must not fail the webhook, the order already exists.
	if _, err := s.mintingService.MintLicense(&order); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to mint license")
	}

	return nil
}

// GetPurchaseHistory lists a buyer's orders, newest first.
func (s *PaymentService) GetPurchaseHistory(buyerID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		Preload("Work").Preload("Offering")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status", "purchased_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// RefundOrder refunds a completed order through Stripe and marks the ledger
// row refunded.
func (s *PaymentService) RefundOrder(req *RefundOrderRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("order not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if order.Status != models.OrderStatusCompleted {
		return ErrOrderNotRefundable
	}

	if order.PaymentReference != "" {
		sess, err := checkoutsession.Get(order.PaymentReference, nil)
		if err != nil {
			return fmt.Errorf("failed to look up checkout session: %w", err)
		}
		if sess.PaymentIntent != nil {
			params := &stripe.RefundParams{
				PaymentIntent: stripe.String(sess.PaymentIntent.ID),
				Reason:        stripe.String("requested_by_customer"),
			}
			if _, err := refund.New(params); err != nil {
				return fmt.Errorf("failed to process refund: %w", err)
			}
		}
	}

	now := time.Now()
	order.Status = models.OrderStatusRefunded
	order.RefundedAt = &now
	order.RefundReason = req.Reason

	if err := s.db.Save(&order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}
