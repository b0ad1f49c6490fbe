package store

import (
	"time"

	"gamescript-extractor/internal/model"
)

// KindReport summarises one entity type's pipeline run.
type KindReport struct {
	Kind model.EntityType `json:"kind" yaml:"kind"`
	// Strategy is the cascade strategy that produced the candidates, empty when all missed.
	Strategy   string `json:"strategy" yaml:"strategy"`
	Candidates int    `json:"candidates" yaml:"candidates"`
	Discarded  int    `json:"discarded" yaml:"discarded"`
	Duplicates int    `json:"duplicates" yaml:"duplicates"`
	// Count is the size of the final list, defaults included.
	Count   int  `json:"count" yaml:"count"`
	Default bool `json:"default" yaml:"default"`
}

// Report describes one extraction pass.
type Report struct {
	Source  string        `json:"source,omitempty" yaml:"source,omitempty"`
	Hash    string        `json:"hash" yaml:"hash"`
	Bytes   int           `json:"bytes" yaml:"bytes"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
	Kinds   []KindReport  `json:"kinds" yaml:"kinds"`
}

// Kind returns the report for one entity type.
func (r *Report) Kind(kind model.EntityType) (KindReport, bool) {
	for _, k := range r.Kinds {
		if k.Kind == kind {
			return k, true
		}
	}
	return KindReport{}, false
}

// Defaults lists the types that fell back to their default dataset.
func (r *Report) Defaults() []model.EntityType {
	var out []model.EntityType
	for _, k := range r.Kinds {
		if k.Default {
			out = append(out, k.Kind)
		}
	}
	return out
}
