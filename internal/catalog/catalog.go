// Package catalog holds the fixed library of practice queries that run
// against the tracks table, grouped by difficulty tier.
package catalog

import (
	"fmt"
	"iter"
)

// Tier is the difficulty grouping of a catalog entry
type Tier string

const (
	TierEasy     Tier = "easy"
	TierMedium   Tier = "medium"
	TierAdvanced Tier = "advanced"
)

// Tiers lists the tiers in catalog order
var Tiers = []Tier{TierEasy, TierMedium, TierAdvanced}

// ParseTier validates a tier name
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierEasy, TierMedium, TierAdvanced:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q (want easy, medium or advanced)", s)
}

// Entry is one named analytical query. Entries are static configuration:
// the registry is append-only and entries never change once defined.
type Entry struct {
	Name    string
	Tier    Tier
	Intent  string
	SQL     string

	// Columns is the declared result shape, in order.
	Columns []string

	// Ordered marks whether row order is part of the entry's contract.
	// Even for ordered entries, ties in the ranking column are broken by
	// an explicit secondary sort on the track name; without that the
	// engine's default order would not be reproducible across engines.
	Ordered bool
}

// List returns the catalog entries in order: insertion order within a
// tier, tiers ordered easy, medium, advanced. A zero tier means all
// tiers. The sequence is restartable; ranging twice yields the same
// entries.
func List(tier Tier) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range entries {
			if tier != "" && e.Tier != tier {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Get looks up an entry by name
func Get(name string) (Entry, error) {
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("unknown catalog entry %q", name)
}

// Len returns the number of entries in the catalog
func Len() int {
	return len(entries)
}
