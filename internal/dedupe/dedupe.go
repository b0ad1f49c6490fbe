// Package dedupe removes repeated records of one entity type.
package dedupe

import "gamescript-extractor/internal/model"

// ByName keeps the first entity of each name and drops later ones, preserving
// order. Names compare exactly. The input slice is not modified.
func ByName[T model.Entity](list []T) (out []T, dropped int) {
	out = make([]T, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, e := range list {
		name := e.EntityName()
		if _, dup := seen[name]; dup {
			dropped++
			continue
		}
		seen[name] = struct{}{}
		out = append(out, e)
	}
	return out, dropped
}
