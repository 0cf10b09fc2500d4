package handler

import "github.com/offerspot/offerspot-backend/internal/offer"

type OffersResponse struct {
	Offers []offer.Offer `json:"offers"`
	Total  int           `json:"total"`
}

type OfferResponse struct {
	Offer offer.Offer `json:"offer"`
}
