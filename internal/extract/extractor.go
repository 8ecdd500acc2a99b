package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fbauer/flatwatcher/logger"
)

// Extractor converts raw markup into an ordered, deduplicated offer list by
// trying its strategies in order and keeping the first non-empty result.
// Markup with no recognizable listings yields an empty list, not an error.
type Extractor struct {
	strategies []Strategy
	log        *logger.Logger
}

// New creates an extractor over the given ordered strategies
func New(log *logger.Logger, strategies ...Strategy) *Extractor {
	return &Extractor{
		strategies: strategies,
		log:        log,
	}
}

// Extract parses the markup once and returns the first strategy's non-empty
// result. Unparseable markup yields an empty list.
func (e *Extractor) Extract(markup string, base *url.URL) []Offer {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.log.Warn().Err(err).Msg("Failed to parse markup")
		return nil
	}

	for _, strategy := range e.strategies {
		offers := strategy.Extract(doc, base)
		if len(offers) > 0 {
			e.log.Debug().
				Str("strategy", strategy.Name()).
				Int("offers", len(offers)).
				Msg("Extraction strategy matched")
			return offers
		}
	}

	return nil
}
