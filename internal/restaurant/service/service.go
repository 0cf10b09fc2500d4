package service

import (
	"context"

	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/offerspot/offerspot-backend/internal/restaurant"
	"go.uber.org/zap"
)

type Catalog interface {
	Restaurants(ctx context.Context) ([]restaurant.Restaurant, error)
	OffersByRestaurantID(ctx context.Context, id int) ([]offer.Offer, error)
}

type service struct {
	catalog Catalog
	logger  *zap.Logger
}

func New(catalog Catalog, logger *zap.Logger) *service {
	return &service{
		catalog: catalog,
		logger:  logger,
	}
}

// All returns every venue, or an empty list when the catalog is
// unreachable.
func (s *service) All(ctx context.Context) []restaurant.Restaurant {
	restaurants, err := s.catalog.Restaurants(ctx)
	if err != nil {
		s.logger.Error("unexpected error when fetching restaurants", zap.Error(err))
		return []restaurant.Restaurant{}
	}

	return restaurants
}

func (s *service) Offers(ctx context.Context, id int) []offer.Offer {
	offers, err := s.catalog.OffersByRestaurantID(ctx, id)
	if err != nil {
		s.logger.Error("unexpected error when fetching restaurant offers", zap.Error(err))
		return []offer.Offer{}
	}

	return offers
}
