// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the append-only ledger of sold licenses. A row is created exactly
// once per completed payment webhook and never mutated afterwards, except for
// refund bookkeeping.
type Order struct {
	BaseModel
	OfferingID       uuid.UUID   `json:"offering_id" gorm:"type:uuid;not null;index"`
	WorkID           uuid.UUID   `json:"work_id" gorm:"type:uuid;not null;index"`
	BuyerID          uuid.UUID   `json:"buyer_id" gorm:"type:uuid;not null;index"`
	Amount           float64     `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentReference string      `json:"payment_reference" gorm:"size:255;uniqueIndex"`
	Status           OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	MintHash         string      `json:"mint_hash,omitempty" gorm:"size:66"`
	PurchasedAt      *time.Time  `json:"purchased_at"`
	RefundedAt       *time.Time  `json:"refunded_at"`
	RefundReason     string      `json:"refund_reason,omitempty" gorm:"type:text"`

	// Relationships
	Offering LicenseOffering `json:"offering,omitempty" gorm:"foreignKey:OfferingID"`
	Work     CreativeWork    `json:"work,omitempty" gorm:"foreignKey:WorkID"`
	Buyer    User            `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
}
