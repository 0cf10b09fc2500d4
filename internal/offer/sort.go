package offer

import "sort"

type SortOption string

const (
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortBestValue SortOption = "best-value"
)

// Sort returns a new slice ordered by the given option. Unknown or
// empty options fall back to best-value, the highest discount ratio
// first. The sort is stable so equal offers keep their relative order
// across repeated calls.
func Sort(offers []Offer, option SortOption) []Offer {
	sorted := make([]Offer, len(offers))
	copy(sorted, offers)

	switch option {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DiscountedPrice < sorted[j].DiscountedPrice
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DiscountedPrice > sorted[j].DiscountedPrice
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DiscountRatio() > sorted[j].DiscountRatio()
		})
	}

	return sorted
}
