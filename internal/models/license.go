// internal/models/license.go
package models

import (
	"github.com/google/uuid"
)

// LicenseOffering is the purchasable terms a creator attaches to a work.
// The simple flow keeps one active offering per (work, license_type) pair.
type LicenseOffering struct {
	BaseModel
	WorkID       uuid.UUID   `json:"work_id" gorm:"type:uuid;not null;index"`
	LicenseType  LicenseType `json:"license_type" gorm:"type:varchar(20);not null;index"`
	Price        float64     `json:"price" gorm:"type:decimal(12,2);not null"`
	UsageLimit   int         `json:"usage_limit" gorm:"default:0"`   // 0 = unlimited
	DurationDays int         `json:"duration_days" gorm:"default:0"` // 0 = perpetual
	IsActive     bool        `json:"is_active" gorm:"default:true"`

	// Relationships
	Work   CreativeWork `json:"work,omitempty" gorm:"foreignKey:WorkID"`
	Orders []Order      `json:"orders,omitempty" gorm:"foreignKey:OfferingID"`
}

// RoyaltySplit assigns a percentage of a work's revenue to a wallet address.
// The split set for a work must sum to exactly 100; it is validated at write
// time and replaced as a whole inside one transaction.
type RoyaltySplit struct {
	BaseModel
	WorkID           uuid.UUID `json:"work_id" gorm:"type:uuid;not null;index"`
	RecipientAddress string    `json:"recipient_address" gorm:"size:42;not null"`
	SplitPercentage  float64   `json:"split_percentage" gorm:"type:decimal(5,2);not null"`

	// Relationships
	Work CreativeWork `json:"work,omitempty" gorm:"foreignKey:WorkID"`
}
