package offer

import (
	"time"

	"github.com/offerspot/offerspot-backend/pkg/types"
)

const dateLayout = "2006-01-02"

type Offer struct {
	ID              types.IntOrString `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	RestaurantID    types.IntOrString `json:"restaurantId"`
	Cuisine         string            `json:"cuisine"`
	OriginalPrice   float64           `json:"originalPrice"`
	DiscountedPrice float64           `json:"discountedPrice"`
	OfferType       string            `json:"offerType"`
	ValidFrom       string            `json:"validFrom"`
	ValidTo         string            `json:"validTo"`
	ImageURL        string            `json:"imageUrl"`
	Location        string            `json:"location"`
	Country         string            `json:"country"`
	Category        string            `json:"category"`
}

// Expired reports whether the offer's validity window has passed.
// It is advisory only: nothing in the browse pipeline drops expired
// offers, the presentation layer decides how to render them.
func (o Offer) Expired(now time.Time) bool {
	if o.ValidTo == "" {
		return false
	}

	validTo, err := time.Parse(dateLayout, o.ValidTo)
	if err != nil {
		if validTo, err = time.Parse(time.RFC3339, o.ValidTo); err != nil {
			return false
		}
	}

	return validTo.Before(now)
}

// DiscountRatio is the fraction of the original price saved by the
// discounted price. An offer with a zero original price is treated as
// having no discount at all rather than dividing by zero.
func (o Offer) DiscountRatio() float64 {
	if o.OriginalPrice <= 0 {
		return 0
	}

	return (o.OriginalPrice - o.DiscountedPrice) / o.OriginalPrice
}
