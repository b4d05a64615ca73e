// internal/models/work.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreativeWork struct {
	BaseModel
	CreatorID   uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"size:100;index"`
	ContentType string         `json:"content_type" gorm:"size:50"`
	FileURLs    pq.StringArray `json:"file_urls" gorm:"type:text[]"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Metadata    JSONB          `json:"metadata" gorm:"type:jsonb"`
	Status      WorkStatus     `json:"status" gorm:"type:varchar(20);default:'published';index"`
	ViewCount   int64          `json:"view_count" gorm:"default:0"`

	// Relationships
	Creator       User              `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Offerings     []LicenseOffering `json:"offerings,omitempty" gorm:"foreignKey:WorkID"`
	RoyaltySplits []RoyaltySplit    `json:"royalty_splits,omitempty" gorm:"foreignKey:WorkID"`
}
