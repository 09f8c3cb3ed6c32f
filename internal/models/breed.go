package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Breed struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	SizeCategory string `gorm:"size:50" json:"size_category"`

	// Base starting price for services that require a bath/groom.
	BasePrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"base_price"`

	// Weight-tier surcharge parameters. All three are set together or not at all.
	StartWeight       *decimal.Decimal `gorm:"type:decimal(6,2)" json:"start_weight"`
	WeightRangeAmount *decimal.Decimal `gorm:"type:decimal(6,2)" json:"weight_range_amount"`
	WeightPriceAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"weight_price_amount"`

	// Pricing inherited by reference from another breed.
	PricingClonedFromID *uint  `json:"pricing_cloned_from_id"`
	PricingClonedFrom   *Breed `gorm:"foreignKey:PricingClonedFromID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CloneNote           string `gorm:"size:255" json:"clone_note"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasOwnWeightPricing reports whether the breed defines its own complete
// weight-tier configuration, as opposed to inheriting it from a clone source.
func (b *Breed) HasOwnWeightPricing() bool {
	return b.StartWeight != nil && b.WeightRangeAmount != nil && b.WeightPriceAmount != nil &&
		!b.WeightRangeAmount.IsZero()
}
