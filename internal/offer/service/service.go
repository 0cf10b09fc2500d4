package service

import (
	"context"
	"errors"
	"sync"

	"github.com/offerspot/offerspot-backend/internal/apperror"
	"github.com/offerspot/offerspot-backend/internal/catalog"
	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/offerspot/offerspot-backend/internal/restaurant"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Catalog interface {
	Offers(ctx context.Context) ([]offer.Offer, error)
	Restaurants(ctx context.Context) ([]restaurant.Restaurant, error)
	OfferByID(ctx context.Context, id int) (*offer.Offer, error)
	SearchOffersByCuisine(ctx context.Context, cuisine string) ([]offer.Offer, error)
}

type BrowseQuery struct {
	offer.Query
	Sort offer.SortOption
}

type service struct {
	catalog Catalog
	logger  *zap.Logger

	mu        sync.Mutex
	indexSeed *restaurant.Restaurant
	indexLen  int
	index     restaurant.NameIndex
}

func New(catalog Catalog, logger *zap.Logger) *service {
	return &service{
		catalog: catalog,
		logger:  logger,
	}
}

// Browse runs the home page pipeline: fetch offers and restaurants
// concurrently, filter by the query, then sort. Catalog failures are
// absorbed into an empty list here, so "backend unreachable" and
// "zero matches" look identical to the caller.
func (s *service) Browse(ctx context.Context, q BrowseQuery) []offer.Offer {
	var (
		offers      []offer.Offer
		restaurants []restaurant.Restaurant
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := s.catalog.Offers(ctx)
		if err != nil {
			s.logger.Error("unexpected error when fetching offers", zap.Error(err))
			return nil
		}

		offers = result

		return nil
	})

	g.Go(func() error {
		result, err := s.catalog.Restaurants(ctx)
		if err != nil {
			s.logger.Error("unexpected error when fetching restaurants", zap.Error(err))
			return nil
		}

		restaurants = result

		return nil
	})

	_ = g.Wait()

	index := s.nameIndex(restaurants)
	filtered := offer.Filter(offers, q.Query, index.Name)

	return offer.Sort(filtered, q.Sort)
}

func (s *service) OfferByID(ctx context.Context, id int) (*offer.Offer, error) {
	result, err := s.catalog.OfferByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrOfferNotFound) {
			return nil, apperror.ErrNotFound
		}

		s.logger.Error("unexpected error when fetching offer by id", zap.Error(err))

		return nil, err
	}

	return result, nil
}

func (s *service) SearchByCuisine(ctx context.Context, cuisine string) []offer.Offer {
	offers, err := s.catalog.SearchOffersByCuisine(ctx, cuisine)
	if err != nil {
		s.logger.Error("unexpected error when searching offers by cuisine", zap.Error(err))
		return []offer.Offer{}
	}

	return offers
}

// nameIndex memoizes the lookup index keyed on the restaurant list
// itself: the catalog cache hands back the same slice within a TTL
// window, so the index is rebuilt only when the list actually changes.
func (s *service) nameIndex(restaurants []restaurant.Restaurant) restaurant.NameIndex {
	if len(restaurants) == 0 {
		return restaurant.NameIndex{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexSeed == &restaurants[0] && s.indexLen == len(restaurants) {
		return s.index
	}

	s.index = restaurant.NewNameIndex(restaurants)
	s.indexSeed = &restaurants[0]
	s.indexLen = len(restaurants)

	return s.index
}
