package restaurant

import "github.com/offerspot/offerspot-backend/pkg/types"

type Restaurant struct {
	ID      types.IntOrString `json:"id"`
	Name    string            `json:"name"`
	Address string            `json:"address"`
	Phone   string            `json:"phone"`
	Rating  float64           `json:"rating"`
	Cuisine []string          `json:"cuisine"`
	LogoURL string            `json:"logoUrl"`
	Country string            `json:"country"`
}
