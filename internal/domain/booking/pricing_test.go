package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shampooches/salon-scheduler/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func poodle() *models.Breed {
	return &models.Breed{
		ID:                1,
		Name:              "Standard Poodle",
		BasePrice:         dp("40.00"),
		StartWeight:       dp("20.00"),
		WeightRangeAmount: dp("5.00"),
		WeightPriceAmount: dp("10.00"),
	}
}

func bathService() *models.Service {
	return &models.Service{
		ID:          1,
		Name:        "Full Groom",
		Price:       d("15.00"),
		PricingType: models.PricingTypeBaseRequired,
	}
}

func nailTrim() *models.Service {
	return &models.Service{
		ID:          2,
		Name:        "Nail Trim",
		Price:       d("12.00"),
		PricingType: models.PricingTypeStandalone,
	}
}

func TestWeightSurcharge(t *testing.T) {
	cfg := WeightTierConfig{
		StartWeight: d("20"),
		RangeAmount: d("5"),
		PriceAmount: d("10"),
	}

	cases := []struct {
		name   string
		weight string
		want   string
	}{
		{"below threshold", "12", "0"},
		{"exactly at threshold", "20", "0"},
		{"just over threshold", "20.1", "0"},
		{"one full tier", "25.5", "10"},
		{"exactly on tier boundary", "25", "0"},
		{"three and a half tiers", "37.5", "30"},
		{"exactly on third boundary", "35", "20"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeightSurcharge(cfg, d(tc.weight))
			assert.True(t, got.Equal(d(tc.want)),
				"weight %s: want %s, got %s", tc.weight, tc.want, got)
		})
	}
}

func TestWeightSurcharge_ZeroRangeYieldsZero(t *testing.T) {
	cfg := WeightTierConfig{
		StartWeight: d("20"),
		RangeAmount: d("0"),
		PriceAmount: d("10"),
	}
	assert.True(t, WeightSurcharge(cfg, d("100")).IsZero())
}

func TestComputeQuote_BaseRequired(t *testing.T) {
	// 37.5 lb poodle: base 40 + surcharge floor((37.5-20)/5)*10 = 30 + add-on 15
	weight := d("37.5")
	quote := ComputeQuote(bathService(), poodle(), nil, nil, &weight)

	assert.Equal(t, "85.00", quote.FinalPrice.StringFixed(2))

	require.Len(t, quote.Breakdown, 3)
	assert.Equal(t, "Breed Base Price", quote.Breakdown[0].Label)
	assert.Equal(t, "40.00", quote.Breakdown[0].Amount.StringFixed(2))
	assert.Equal(t, "Weight Surcharge", quote.Breakdown[1].Label)
	assert.Equal(t, "30.00", quote.Breakdown[1].Amount.StringFixed(2))
	assert.Equal(t, "15.00", quote.Breakdown[2].Amount.StringFixed(2))
}

func TestComputeQuote_Standalone(t *testing.T) {
	t.Run("mapping override wins over breed base", func(t *testing.T) {
		mapping := &models.BreedServiceMapping{IsAvailable: true, BasePrice: d("18.00")}

		weight := d("10")
		quote := ComputeQuote(nailTrim(), poodle(), nil, mapping, &weight)
		assert.Equal(t, "18.00", quote.FinalPrice.StringFixed(2))
	})

	t.Run("unavailable mapping is ignored", func(t *testing.T) {
		mapping := &models.BreedServiceMapping{IsAvailable: false, BasePrice: d("18.00")}

		weight := d("10")
		quote := ComputeQuote(nailTrim(), poodle(), nil, mapping, &weight)
		assert.Equal(t, "40.00", quote.FinalPrice.StringFixed(2))
	})

	t.Run("no breed falls back to service price", func(t *testing.T) {
		quote := ComputeQuote(nailTrim(), nil, nil, nil, nil)
		assert.Equal(t, "12.00", quote.FinalPrice.StringFixed(2))
	})

	t.Run("surcharge applies on top of resolved base", func(t *testing.T) {
		weight := d("26")
		quote := ComputeQuote(nailTrim(), poodle(), nil, nil, &weight)
		// base 40 + one tier 10
		assert.Equal(t, "50.00", quote.FinalPrice.StringFixed(2))
	})

	t.Run("heavy poodle", func(t *testing.T) {
		weight := d("37.5")
		quote := ComputeQuote(nailTrim(), poodle(), nil, nil, &weight)
		// base 40 + three tiers 30
		assert.Equal(t, "70.00", quote.FinalPrice.StringFixed(2))
	})
}

func TestComputeQuote_SurchargeExemption(t *testing.T) {
	svc := nailTrim()
	svc.ExemptFromSurcharge = true

	weight := d("60")
	quote := ComputeQuote(svc, poodle(), nil, nil, &weight)
	assert.Equal(t, "40.00", quote.FinalPrice.StringFixed(2))
}

func TestComputeQuote_ClonePrecedence(t *testing.T) {
	source := poodle()

	t.Run("clone source fills missing pricing", func(t *testing.T) {
		clone := &models.Breed{ID: 2, Name: "Goldendoodle", PricingClonedFromID: &source.ID}

		weight := d("26")
		quote := ComputeQuote(bathService(), clone, source, nil, &weight)
		// source base 40 + one tier 10 + add-on 15
		assert.Equal(t, "65.00", quote.FinalPrice.StringFixed(2))
	})

	t.Run("own values beat the clone source", func(t *testing.T) {
		clone := &models.Breed{
			ID:                  2,
			Name:                "Goldendoodle",
			BasePrice:           dp("55.00"),
			StartWeight:         dp("30.00"),
			WeightRangeAmount:   dp("10.00"),
			WeightPriceAmount:   dp("5.00"),
			PricingClonedFromID: &source.ID,
		}

		weight := d("41")
		quote := ComputeQuote(bathService(), clone, source, nil, &weight)
		// own base 55 + own tier floor((41-30)/10)*5 = 5 + add-on 15
		assert.Equal(t, "75.00", quote.FinalPrice.StringFixed(2))
	})
}

func TestComputeQuote_Idempotent(t *testing.T) {
	weight := d("37.5")

	first := ComputeQuote(bathService(), poodle(), nil, nil, &weight)
	second := ComputeQuote(bathService(), poodle(), nil, nil, &weight)

	assert.True(t, first.FinalPrice.Equal(second.FinalPrice))
	assert.Equal(t, first.Breakdown, second.Breakdown)
}

func TestEffectiveTierConfig(t *testing.T) {
	t.Run("partial own config falls through to source", func(t *testing.T) {
		source := poodle()
		clone := &models.Breed{
			ID:          2,
			StartWeight: dp("30.00"), // range and price missing
		}

		cfg, ok := EffectiveTierConfig(clone, source)
		require.True(t, ok)
		assert.True(t, cfg.StartWeight.Equal(d("20")))
	})

	t.Run("no config anywhere", func(t *testing.T) {
		_, ok := EffectiveTierConfig(&models.Breed{}, nil)
		assert.False(t, ok)
	})
}
