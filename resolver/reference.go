package resolver

import (
	"strings"

	"github.com/zhubert/jds-knowledge/refdata"
	"github.com/zhubert/jds-knowledge/sanitize"
)

var referenceSeparators = strings.NewReplacer(" ", "_", "-", "_")

func normalizeReference(s string) string {
	return referenceSeparators.Replace(strings.ToLower(s))
}

// GetFigmaReference finds a Figma design by key or display name substring.
// An empty query lists the available references.
func (r *Resolver) GetFigmaReference(name string) *refdata.Map {
	q := normalizeReference(sanitize.Text(name, 0))

	if q != "" {
		for _, ref := range r.store.References {
			if referenceMatches(ref, q) {
				return sanitize.Output(referenceEntry(ref)).(*refdata.Map)
			}
		}
	}

	available := make([]any, 0, len(r.store.References))
	for _, ref := range r.store.References {
		item := refdata.NewMap()
		item.Set("key", ref.Key)
		item.Set("name", ref.Name)
		available = append(available, item)
	}
	m := errorResult("Figma reference not found")
	m.Set("available_references", available)
	return m
}

func referenceMatches(ref refdata.Reference, q string) bool {
	name := strings.ToLower(ref.Name)
	return strings.Contains(strings.ToLower(ref.Key), q) ||
		strings.Contains(name, q) ||
		strings.Contains(normalizeReference(name), q)
}

func referenceEntry(ref refdata.Reference) *refdata.Map {
	m := refdata.NewMap()
	m.Set("name", ref.Name)
	m.Set("file_key", ref.FileKey)
	m.Set("url", ref.URL)
	m.Set("description", ref.Description)
	if ref.NodeID != "" {
		m.Set("node_id", ref.NodeID)
	}
	return m
}
