package booking

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// PRICE QUOTE
// ======================================================

type QuoteInput struct {
	ServiceID uint

	// Either a dog (breed and weight read from its profile) or an explicit
	// breed/weight pair. DogID wins when both are set.
	DogID   *uint
	OwnerID *uint // required with DogID

	BreedID *uint
	Weight  *decimal.Decimal
}

type QuotePrice struct {
	repo domain.Repository
}

func NewQuotePrice(repo domain.Repository) *QuotePrice {
	return &QuotePrice{repo: repo}
}

func (uc *QuotePrice) Execute(
	ctx context.Context,
	in QuoteInput,
) (*domain.Quote, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeInactiveService)
	}

	breedID := in.BreedID
	weight := in.Weight

	if in.DogID != nil {
		if in.OwnerID == nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
		dog, err := uc.repo.GetDogForOwner(ctx, *in.DogID, *in.OwnerID)
		if err != nil {
			return nil, err
		}
		breedID = dog.BreedID
		if dog.Weight != nil {
			weight = dog.Weight
		}
	}

	var breed, cloneSource *models.Breed
	var mapping *models.BreedServiceMapping

	if breedID != nil {
		breed, err = uc.repo.GetBreed(ctx, *breedID)
		if err != nil {
			return nil, err
		}

		cloneSource, err = uc.repo.ResolveClonePricingSource(ctx, breed)
		if err != nil {
			return nil, err
		}

		mapping, err = uc.repo.GetBreedServiceMapping(ctx, breed.ID, service.ID)
		if err != nil {
			return nil, err
		}
	}

	quote := domain.ComputeQuote(service, breed, cloneSource, mapping, weight)
	return &quote, nil
}
