package models

import (
	"dropzone/src/types"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID               uint                `gorm:"primarykey"`
	Title            string              `gorm:"size:200;not null;index:idx_products_ordering,priority:2"`
	Subtitle         string              `gorm:"size:200"`
	Slug             string              `gorm:"size:200;uniqueIndex;not null"`
	ShortDescription string              `gorm:"type:text"`
	Description      string              `gorm:"type:text"`
	ProductType      types.ProductType   `gorm:"size:20;not null"`
	Category         string              `gorm:"size:100;not null;index"`
	SortOrder        int                 `gorm:"not null;default:0;index:idx_products_ordering,priority:1"`
	IsActive         bool                `gorm:"not null"`
	IsFeatured       bool                `gorm:"not null"`
	BasePrice        decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Price            decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Attributes       datatypes.JSONMap   `gorm:"not null"`
	ImageURL         string              `gorm:"size:200"`
	VideoURL         string              `gorm:"size:200"`
	DurationHours    decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	MetaTitle        string              `gorm:"size:200"`
	MetaDescription  string              `gorm:"size:300"`
	Keywords         string              `gorm:"size:255"`
	ButtonText       string              `gorm:"size:100"`
	ButtonLink       string              `gorm:"size:200"`

	// Assigned explicitly by the write path, never by gorm hooks.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}
