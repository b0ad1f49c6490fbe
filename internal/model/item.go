package model

import (
	"maps"
	"slices"
)

// Effect describes what using an item does.
type Effect struct {
	Target   string    `json:"target" yaml:"target"`
	Type     string    `json:"type" yaml:"type"`
	Strength int       `json:"strength" yaml:"strength"`
	Status   StatusSet `json:"status" yaml:"status"`
}

// NoEffect is the neutral effect for items with no recognised action.
func NoEffect() Effect {
	return Effect{Target: "Self", Type: "None"}
}

// Item is any inventory entry: equipment, consumables and key items share one shape.
type Item struct {
	Name     string   `json:"name" yaml:"name"`
	Type     ItemType `json:"type" yaml:"type"`
	Category string   `json:"category" yaml:"category"`
	Power    int      `json:"power" yaml:"power"`
	Price    int      `json:"price" yaml:"price"`
	Quantity int      `json:"quantity" yaml:"quantity"`
	Rarity   Rarity   `json:"rarity" yaml:"rarity"`
	Effect   Effect   `json:"effect" yaml:"effect"`
	// ExcludedJobs holds sorted, unique job indices that cannot use the item.
	// Empty means usable by every job.
	ExcludedJobs []int          `json:"excluded_jobs" yaml:"excluded_jobs"`
	StatBonuses  map[string]int `json:"stat_bonuses" yaml:"stat_bonuses"`
}

func (i Item) EntityName() string { return i.Name }
func (i Item) Kind() EntityType   { return KindItem }

// UsableBy reports whether the job index is allowed to use the item.
func (i Item) UsableBy(job int) bool {
	_, found := slices.BinarySearch(i.ExcludedJobs, job)
	return !found
}

// Clone returns a deep copy.
func (i Item) Clone() Item {
	out := i
	out.ExcludedJobs = slices.Clone(i.ExcludedJobs)
	if out.ExcludedJobs == nil {
		out.ExcludedJobs = []int{}
	}
	out.StatBonuses = maps.Clone(i.StatBonuses)
	if out.StatBonuses == nil {
		out.StatBonuses = map[string]int{}
	}
	return out
}
