package handler

import (
	"time"

	"github.com/offerspot/offerspot-backend/internal/favorites"
	"github.com/offerspot/offerspot-backend/internal/offer"
	"github.com/offerspot/offerspot-backend/pkg/types"
)

type ToggleRequest struct {
	ID              types.IntOrString `json:"id" validate:"required"`
	Title           string            `json:"title" validate:"required"`
	Description     string            `json:"description"`
	RestaurantID    types.IntOrString `json:"restaurantId"`
	Cuisine         string            `json:"cuisine"`
	OriginalPrice   float64           `json:"originalPrice" validate:"min=0"`
	DiscountedPrice float64           `json:"discountedPrice" validate:"min=0"`
	OfferType       string            `json:"offerType"`
	ValidFrom       string            `json:"validFrom"`
	ValidTo         string            `json:"validTo"`
	ImageURL        string            `json:"imageUrl"`
	Location        string            `json:"location"`
	Country         string            `json:"country"`
	Category        string            `json:"category"`
}

func (r ToggleRequest) ToDomain() offer.Offer {
	return offer.Offer{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		RestaurantID:    r.RestaurantID,
		Cuisine:         r.Cuisine,
		OriginalPrice:   r.OriginalPrice,
		DiscountedPrice: r.DiscountedPrice,
		OfferType:       r.OfferType,
		ValidFrom:       r.ValidFrom,
		ValidTo:         r.ValidTo,
		ImageURL:        r.ImageURL,
		Location:        r.Location,
		Country:         r.Country,
		Category:        r.Category,
	}
}

type ToggleResponse struct {
	Favorite bool `json:"favorite"`
}

type FavoritesResponse struct {
	Favorites     []favorites.Snapshot `json:"favorites"`
	LastRefreshed *time.Time           `json:"lastRefreshed,omitempty"`
}

type IsFavoriteResponse struct {
	Favorite bool `json:"favorite"`
}
