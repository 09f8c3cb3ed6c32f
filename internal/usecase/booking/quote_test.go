package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/models"
)

func quoteFixture(t *testing.T) (*fakeRepo, *QuotePrice) {
	t.Helper()

	repo := newFakeRepo()
	repo.services[1] = &models.Service{
		ID:          1,
		Name:        "Full Groom",
		Price:       dec("15.00"),
		PricingType: models.PricingTypeBaseRequired,
		IsActive:    true,
	}
	repo.breeds[1] = &models.Breed{
		ID:                1,
		Name:              "Standard Poodle",
		BasePrice:         decp("40.00"),
		StartWeight:       decp("20.00"),
		WeightRangeAmount: decp("5.00"),
		WeightPriceAmount: decp("10.00"),
		IsActive:          true,
	}

	return repo, NewQuotePrice(repo)
}

func TestQuotePrice_ByBreedAndWeight(t *testing.T) {
	_, uc := quoteFixture(t)

	weight := dec("37.5")
	quote, err := uc.Execute(context.Background(), QuoteInput{
		ServiceID: 1,
		BreedID:   ptr(uint(1)),
		Weight:    &weight,
	})
	require.NoError(t, err)
	assert.Equal(t, "85.00", quote.FinalPrice.StringFixed(2))
	assert.Len(t, quote.Breakdown, 3)
}

func TestQuotePrice_BySavedDog(t *testing.T) {
	repo, uc := quoteFixture(t)
	repo.dogs[3] = &models.Dog{
		ID:      3,
		OwnerID: 7,
		Name:    "Waffles",
		BreedID: ptr(uint(1)),
		Weight:  decp("26.00"),
	}

	quote, err := uc.Execute(context.Background(), QuoteInput{
		ServiceID: 1,
		DogID:     ptr(uint(3)),
		OwnerID:   ptr(uint(7)),
	})
	require.NoError(t, err)
	assert.Equal(t, "65.00", quote.FinalPrice.StringFixed(2))
}

func TestQuotePrice_DogWithoutOwnerRejected(t *testing.T) {
	_, uc := quoteFixture(t)

	_, err := uc.Execute(context.Background(), QuoteInput{
		ServiceID: 1,
		DogID:     ptr(uint(3)),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestQuotePrice_InactiveService(t *testing.T) {
	repo, uc := quoteFixture(t)
	repo.services[1].IsActive = false

	_, err := uc.Execute(context.Background(), QuoteInput{ServiceID: 1})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInactiveService))
}

func TestQuotePrice_ClonedBreedPricing(t *testing.T) {
	repo, uc := quoteFixture(t)
	repo.breeds[2] = &models.Breed{
		ID:                  2,
		Name:                "Goldendoodle",
		PricingClonedFromID: ptr(uint(1)),
		IsActive:            true,
	}

	weight := dec("26.00")
	quote, err := uc.Execute(context.Background(), QuoteInput{
		ServiceID: 1,
		BreedID:   ptr(uint(2)),
		Weight:    &weight,
	})
	require.NoError(t, err)
	// inherits base 40 and tier config from the poodle
	assert.Equal(t, "65.00", quote.FinalPrice.StringFixed(2))
}
