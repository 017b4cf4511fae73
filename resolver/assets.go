package resolver

import (
	"strings"

	"github.com/zhubert/jds-knowledge/refdata"
	"github.com/zhubert/jds-knowledge/sanitize"
)

// AllAssets selects every asset group.
const AllAssets = "all"

// GetAssets lists CDN locators for one asset group, or all of them.
// The output is not scrubbed since locators are the point of it.
func (r *Resolver) GetAssets(assetType string) *refdata.Map {
	manifest := r.store.Assets
	if manifest == nil {
		return errorResult("Asset manifest not available")
	}

	want := strings.ToLower(sanitize.Text(assetType, 0))
	if want == "" {
		want = AllAssets
	}

	var selected []refdata.AssetType
	if want == AllAssets {
		selected = manifest.Types
	} else if t, ok := manifest.Type(want); ok {
		selected = []refdata.AssetType{t}
	} else {
		available := []string{AllAssets}
		for _, t := range manifest.Types {
			available = append(available, t.Name)
		}
		m := errorResult("Unknown asset type")
		m.Set("available_types", available)
		return m
	}

	types := refdata.NewMap()
	for _, t := range selected {
		types.Set(t.Name, assetEntry(manifest.CDNBase, t))
	}

	m := refdata.NewMap()
	m.Set("cdn_base", manifest.CDNBase)
	m.Set("types", types)
	return m
}

func assetEntry(cdnBase string, t refdata.AssetType) *refdata.Map {
	base := joinURL(cdnBase, t.Directory)

	files := make([]any, 0, len(t.Files))
	for _, name := range t.Files {
		f := refdata.NewMap()
		f.Set("name", name)
		f.Set("cdn_url", joinURL(base, name))
		files = append(files, f)
	}

	m := refdata.NewMap()
	m.Set("description", t.Description)
	m.Set("cdn_base", base)
	m.Set("files", files)
	m.Set("count", len(files))
	if t.UsageNote != "" {
		m.Set("usage_note", t.UsageNote)
	}
	return m
}

func joinURL(base, elem string) string {
	if elem == "" {
		return base
	}
	if base == "" {
		return elem
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(elem, "/")
}
