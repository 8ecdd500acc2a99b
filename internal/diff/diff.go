// Package diff computes which extracted offers have not been announced yet.
package diff

import (
	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/internal/state"
)

// NewOffers returns the offers whose id is absent from seen, preserving the
// extractor's output order. Pure function; neither argument is mutated.
func NewOffers(offers []extract.Offer, seen *state.SeenSet) []extract.Offer {
	var fresh []extract.Offer
	for _, offer := range offers {
		if !seen.Contains(offer.ID) {
			fresh = append(fresh, offer)
		}
	}
	return fresh
}
