package profiles

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// Stats summarizes what a migration did, or would do for InspectDocument
type Stats struct {
	Profiles      int `json:"profiles"`
	WithResources int `json:"with_resources"`
	Skipped       int `json:"skipped"`
	Legacy        int `json:"legacy"`
	Migrated      int `json:"migrated"`
}

// Pending reports whether any legacy resource is left
func (s *Stats) Pending() bool {
	return s.Legacy > 0
}

type resourceUpdate struct {
	arr      *hujson.Array
	elements []hujson.Value
}

// MigrateDocument rewrites every profile's expertise_data.resources list:
// objects are kept, bare scalars become {"name": <scalar>, "weight": <weight>}.
// Profiles without a resources list are left untouched. All new lists are built
// before any is installed, so on error the document is unchanged.
func MigrateDocument(doc *Document, weights WeightSource) (*Stats, error) {
	stats := &Stats{Profiles: doc.Len()}
	updates := make([]resourceUpdate, 0, doc.Len())

	for _, p := range doc.Profiles() {
		arr, err := p.Resources()
		if err != nil {
			return nil, err
		}
		if arr == nil {
			stats.Skipped++
			continue
		}
		stats.WithResources++

		elements := make([]hujson.Value, 0, len(arr.Elements))
		for i, elem := range arr.Elements {
			res, err := classifyAt(p, i, elem)
			if err != nil {
				return nil, err
			}

			switch r := res.(type) {
			case MigratedResource:
				elements = append(elements, r.Value)
				stats.Migrated++
			case LegacyResource:
				w := weights.Weight()
				if w < MinWeight || w > MaxWeight {
					return nil, &WeightRangeError{Weight: w}
				}
				elements = append(elements, r.Migrate(w))
				stats.Legacy++
			default:
				return nil, fmt.Errorf("unhandled resource type %T", res)
			}
		}

		updates = append(updates, resourceUpdate{arr: arr, elements: elements})
	}

	for _, u := range updates {
		u.arr.Elements = u.elements
	}

	return stats, nil
}

// InspectDocument classifies every resource without modifying the document.
// Legacy counts resources that a migration would wrap.
func InspectDocument(doc *Document) (*Stats, error) {
	stats := &Stats{Profiles: doc.Len()}

	for _, p := range doc.Profiles() {
		arr, err := p.Resources()
		if err != nil {
			return nil, err
		}
		if arr == nil {
			stats.Skipped++
			continue
		}
		stats.WithResources++

		for i, elem := range arr.Elements {
			res, err := classifyAt(p, i, elem)
			if err != nil {
				return nil, err
			}

			switch res.(type) {
			case MigratedResource:
				stats.Migrated++
			case LegacyResource:
				stats.Legacy++
			default:
				return nil, fmt.Errorf("unhandled resource type %T", res)
			}
		}
	}

	return stats, nil
}

func classifyAt(p Profile, i int, elem hujson.Value) (Resource, error) {
	res, err := ClassifyResource(elem)
	if err != nil {
		return nil, &StructuralError{
			Profile:  p.index,
			Resource: i,
			Path:     resourcesPath,
			Message:  err.Error(),
		}
	}
	return res, nil
}
