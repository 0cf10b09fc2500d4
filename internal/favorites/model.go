package favorites

import (
	"time"

	"github.com/offerspot/offerspot-backend/internal/offer"
)

// Snapshot is a locally persisted copy of an offer's fields taken at
// the moment it was favorited. It is refreshable but never
// authoritative: the catalog remains the source of truth for the
// offer itself.
type Snapshot struct {
	offer.Offer
	SavedAt time.Time `json:"savedAt"`
}
