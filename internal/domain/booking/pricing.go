package booking

import (
	"github.com/shopspring/decimal"

	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// PRICING
// ======================================================
//
// Pure functions. Price precedence, highest first:
//   1. breed-service mapping override (standalone services only)
//   2. breed's own base price
//   3. clone-source breed's derived price
//   4. service default price
// Weight surcharge applies on top unless the service is exempt.

// WeightTierConfig is a breed's effective surcharge configuration after
// clone-source resolution.
type WeightTierConfig struct {
	StartWeight decimal.Decimal
	RangeAmount decimal.Decimal
	PriceAmount decimal.Decimal
}

// EffectiveTierConfig resolves the surcharge parameters for a breed, reading
// from the clone source when the breed has no complete config of its own.
// Returns ok=false when neither defines one.
func EffectiveTierConfig(breed, cloneSource *models.Breed) (WeightTierConfig, bool) {
	for _, b := range []*models.Breed{breed, cloneSource} {
		if b != nil && b.HasOwnWeightPricing() {
			return WeightTierConfig{
				StartWeight: *b.StartWeight,
				RangeAmount: *b.WeightRangeAmount,
				PriceAmount: *b.WeightPriceAmount,
			}, true
		}
	}
	return WeightTierConfig{}, false
}

// WeightSurcharge computes the tiered surcharge for a dog's weight.
// Strict ">" semantics: a dog exactly at the threshold, or exactly on a tier
// boundary, does not incur that tier's charge.
func WeightSurcharge(cfg WeightTierConfig, dogWeight decimal.Decimal) decimal.Decimal {
	if cfg.RangeAmount.IsZero() || dogWeight.LessThanOrEqual(cfg.StartWeight) {
		return decimal.Zero
	}

	excess := dogWeight.Sub(cfg.StartWeight)
	increments := excess.Div(cfg.RangeAmount).Floor()

	// a weight landing exactly on a tier boundary stays in the tier below
	if excess.Mod(cfg.RangeAmount).IsZero() {
		increments = increments.Sub(decimal.NewFromInt(1))
	}

	return increments.Mul(cfg.PriceAmount)
}

// effectiveBasePrice resolves the pre-surcharge price for a standalone
// service.
func effectiveBasePrice(
	service *models.Service,
	breed *models.Breed,
	cloneSource *models.Breed,
	mapping *models.BreedServiceMapping,
) decimal.Decimal {

	if mapping != nil && mapping.IsAvailable {
		return mapping.BasePrice
	}
	if breed != nil && breed.BasePrice != nil {
		return *breed.BasePrice
	}
	if cloneSource != nil && cloneSource.BasePrice != nil {
		return *cloneSource.BasePrice
	}
	return service.Price
}

// breedBasePrice is the bath/groom base for base_required services.
func breedBasePrice(breed, cloneSource *models.Breed) decimal.Decimal {
	if breed != nil && breed.BasePrice != nil {
		return *breed.BasePrice
	}
	if cloneSource != nil && cloneSource.BasePrice != nil {
		return *cloneSource.BasePrice
	}
	return decimal.Zero
}

// PriceComponent is one labelled line of a quote breakdown.
type PriceComponent struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Quote is a computed price with its breakdown.
type Quote struct {
	FinalPrice decimal.Decimal  `json:"final_price"`
	Breakdown  []PriceComponent `json:"price_breakdown"`
}

// ComputeQuote calculates the final price and its breakdown.
// breed, cloneSource, mapping and dogWeight may be nil.
func ComputeQuote(
	service *models.Service,
	breed *models.Breed,
	cloneSource *models.Breed,
	mapping *models.BreedServiceMapping,
	dogWeight *decimal.Decimal,
) Quote {

	surcharge := decimal.Zero
	if dogWeight != nil && !service.ExemptFromSurcharge {
		if cfg, ok := EffectiveTierConfig(breed, cloneSource); ok {
			surcharge = WeightSurcharge(cfg, *dogWeight)
		}
	}

	var total decimal.Decimal
	var breakdown []PriceComponent

	if service.PricingType == models.PricingTypeBaseRequired {
		base := breedBasePrice(breed, cloneSource)
		total = base.Add(surcharge).Add(service.Price)
		breakdown = []PriceComponent{
			{Label: "Breed Base Price", Amount: base.Round(2)},
			{Label: "Weight Surcharge", Amount: surcharge.Round(2)},
			{Label: service.Name + " (Add-on)", Amount: service.Price.Round(2)},
		}
	} else {
		base := effectiveBasePrice(service, breed, cloneSource, mapping)
		total = base.Add(surcharge)
		breakdown = []PriceComponent{
			{Label: service.Name, Amount: base.Round(2)},
			{Label: "Weight Surcharge", Amount: surcharge.Round(2)},
		}
	}

	return Quote{
		FinalPrice: total.Round(2),
		Breakdown:  breakdown,
	}
}

// ComputePrice is ComputeQuote without the breakdown.
func ComputePrice(
	service *models.Service,
	breed *models.Breed,
	cloneSource *models.Breed,
	mapping *models.BreedServiceMapping,
	dogWeight *decimal.Decimal,
) decimal.Decimal {
	return ComputeQuote(service, breed, cloneSource, mapping, dogWeight).FinalPrice
}
