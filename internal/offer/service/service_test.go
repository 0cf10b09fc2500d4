package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/offerspot/offerspot-backend/internal/apperror"
	"github.com/offerspot/offerspot-backend/internal/catalog"
	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/offerspot/offerspot-backend/internal/offer/service/mocks"
	"github.com/offerspot/offerspot-backend/internal/restaurant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	testOffers = []offer.Offer{
		{
			ID:              1,
			Title:           "Pizza Deal",
			RestaurantID:    1,
			Cuisine:         "Pizza",
			OriginalPrice:   100,
			DiscountedPrice: 80,
			OfferType:       "Discount",
			Location:        "Doha, West Bay",
			Country:         "Qatar",
			Category:        "All Offers",
		},
		{
			ID:              2,
			Title:           "Sushi Night",
			RestaurantID:    2,
			Cuisine:         "Japanese",
			OriginalPrice:   200,
			DiscountedPrice: 150,
			OfferType:       "Discount",
			Location:        "Doha, The Pearl",
			Country:         "Qatar",
			Category:        "Dining",
		},
	}

	testRestaurants = []restaurant.Restaurant{
		{ID: 1, Name: "Spice Garden"},
		{ID: 2, Name: "Tokyo Table"},
	}

	errUnexpected = errors.New("unexpected error")
)

func TestBrowse(t *testing.T) {
	tests := []struct {
		name        string
		query       BrowseQuery
		expectedIDs []int
	}{
		{
			name:        "no criteria, best value default",
			query:       BrowseQuery{},
			expectedIDs: []int{2, 1}, // 25% off ranks above 20% off
		},
		{
			name:        "search matches restaurant name",
			query:       BrowseQuery{Query: offer.Query{Search: "spice"}},
			expectedIDs: []int{1},
		},
		{
			name:        "search without match",
			query:       BrowseQuery{Query: offer.Query{Search: "sushi bar nowhere"}},
			expectedIDs: []int{},
		},
		{
			name: "cuisine filter with price sort",
			query: BrowseQuery{
				Query: offer.Query{Criteria: offer.Criteria{Cuisines: []string{"Pizza", "Japanese"}}},
				Sort:  offer.SortPriceDesc,
			},
			expectedIDs: []int{2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockCatalog := mocks.NewMockCatalog(ctrl)
			mockCatalog.EXPECT().Offers(gomock.Any()).Return(testOffers, nil)
			mockCatalog.EXPECT().Restaurants(gomock.Any()).Return(testRestaurants, nil)

			s := New(mockCatalog, zap.NewNop())

			result := s.Browse(context.Background(), tt.query)

			ids := make([]int, 0, len(result))
			for _, o := range result {
				ids = append(ids, o.ID.Int())
			}

			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestBrowse_BestValueOrder(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCatalog := mocks.NewMockCatalog(ctrl)
	mockCatalog.EXPECT().Offers(gomock.Any()).Return(testOffers, nil)
	mockCatalog.EXPECT().Restaurants(gomock.Any()).Return(testRestaurants, nil)

	s := New(mockCatalog, zap.NewNop())

	result := s.Browse(context.Background(), BrowseQuery{Sort: offer.SortBestValue})

	require.Len(t, result, 2)
	// 25% off sushi ranks above 20% off pizza
	assert.Equal(t, 2, result[0].ID.Int())
	assert.Equal(t, 1, result[1].ID.Int())
}

func TestBrowse_CatalogFailureYieldsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCatalog := mocks.NewMockCatalog(ctrl)
	mockCatalog.EXPECT().Offers(gomock.Any()).Return(nil, errUnexpected)
	mockCatalog.EXPECT().Restaurants(gomock.Any()).Return(nil, errUnexpected)

	s := New(mockCatalog, zap.NewNop())

	result := s.Browse(context.Background(), BrowseQuery{})

	assert.Empty(t, result)
}

func TestBrowse_NameIndexMemoized(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCatalog := mocks.NewMockCatalog(ctrl)
	mockCatalog.EXPECT().Offers(gomock.Any()).Return(testOffers, nil).Times(2)
	// the same slice back twice, as the catalog cache does within a TTL window
	mockCatalog.EXPECT().Restaurants(gomock.Any()).Return(testRestaurants, nil).Times(2)

	s := New(mockCatalog, zap.NewNop())

	s.Browse(context.Background(), BrowseQuery{Query: offer.Query{Search: "spice"}})
	first := s.index
	require.NotNil(t, first)

	s.Browse(context.Background(), BrowseQuery{Query: offer.Query{Search: "tokyo"}})

	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(s.index).Pointer())
}

func TestOfferByID(t *testing.T) {
	type mockBehavior func(m *mocks.MockCatalog)

	tests := []struct {
		name          string
		mockBehavior  mockBehavior
		expectedError error
		expectedTitle string
	}{
		{
			name: "success",
			mockBehavior: func(m *mocks.MockCatalog) {
				m.EXPECT().OfferByID(gomock.Any(), 1).Return(&testOffers[0], nil)
			},
			expectedTitle: "Pizza Deal",
		},
		{
			name: "not found maps to app error",
			mockBehavior: func(m *mocks.MockCatalog) {
				m.EXPECT().OfferByID(gomock.Any(), 1).Return(nil, catalog.ErrOfferNotFound)
			},
			expectedError: apperror.ErrNotFound,
		},
		{
			name: "unexpected error propagates",
			mockBehavior: func(m *mocks.MockCatalog) {
				m.EXPECT().OfferByID(gomock.Any(), 1).Return(nil, errUnexpected)
			},
			expectedError: errUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockCatalog := mocks.NewMockCatalog(ctrl)
			tt.mockBehavior(mockCatalog)

			s := New(mockCatalog, zap.NewNop())

			result, err := s.OfferByID(context.Background(), 1)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				require.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedTitle, result.Title)
			}
		})
	}
}

func TestSearchByCuisine_FailureYieldsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCatalog := mocks.NewMockCatalog(ctrl)
	mockCatalog.EXPECT().SearchOffersByCuisine(gomock.Any(), "Pizza").Return(nil, errUnexpected)

	s := New(mockCatalog, zap.NewNop())

	assert.Empty(t, s.SearchByCuisine(context.Background(), "Pizza"))
}
