// Package rates resolves prices for work items from a versioned rate
// card with a static default table as fallback.
package rates

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"plancost/core/types"
	"plancost/internal/logging"
)

// Source identifies where a resolved rate came from
type Source string

const (
	// SourceCard means a versioned rate-card entry matched
	SourceCard Source = "card"

	// SourceDefault means the static default table was used
	SourceDefault Source = "default"

	// SourceFallback means no rate was configured anywhere
	SourceFallback Source = "fallback"
)

// Card holds versioned rate entries. Immutable after construction.
type Card struct {
	entries []types.RateEntry
}

// NewCard creates a rate card from entries
func NewCard(entries []types.RateEntry) *Card {
	copied := make([]types.RateEntry, len(entries))
	copy(copied, entries)
	return &Card{entries: copied}
}

// Lookup finds the applicable entry for a category and item as of a
// date: active, effective on or before asOf, latest effective date
// first. At equal recency a location-matching entry beats a
// location-free one.
func (c *Card) Lookup(category types.Category, itemName, location string, asOf time.Time) (types.RateEntry, bool) {
	var best types.RateEntry
	found := false

	for _, e := range c.entries {
		if e.Category != category || e.ItemName != itemName || !e.Active {
			continue
		}
		if e.EffectiveFrom.After(asOf) {
			continue
		}
		if e.Location != "" && e.Location != location {
			continue
		}
		if !found ||
			e.EffectiveFrom.After(best.EffectiveFrom) ||
			(e.EffectiveFrom.Equal(best.EffectiveFrom) && best.Location == "" && e.Location == location && location != "") {
			best = e
			found = true
		}
	}
	return best, found
}

// Resolver resolves rates with the card-then-defaults-then-zero chain
type Resolver struct {
	card     *Card
	defaults DefaultTable
	location string
	log      *zap.Logger
}

// NewResolver creates a resolver. A nil card resolves from defaults
// only.
func NewResolver(card *Card, defaults DefaultTable, location string) *Resolver {
	if card == nil {
		card = NewCard(nil)
	}
	return &Resolver{
		card:     card,
		defaults: defaults,
		location: location,
		log:      logging.Logger,
	}
}

// RateFor resolves the rate for a work item as of a date. It never
// fails: a fully unconfigured item yields a zero rate per sqm, and the
// returned Source says which step of the chain answered.
func (r *Resolver) RateFor(category types.Category, itemName string, asOf time.Time) (types.Rate, Source) {
	if entry, ok := r.card.Lookup(category, itemName, r.location, asOf); ok {
		return types.Rate{Rate: entry.Rate, Unit: entry.Unit}, SourceCard
	}

	if rate, ok := r.defaults.Lookup(category, itemName); ok {
		return rate, SourceDefault
	}

	r.log.Warn("no rate configured",
		zap.String("category", string(category)),
		zap.String("item", itemName))
	return types.Rate{Rate: decimal.Zero, Unit: "sqm"}, SourceFallback
}
