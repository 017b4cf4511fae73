// Package refdata holds the Jio Design System reference data the server answers
// queries from: components, design tokens, icons, Figma references and the asset
// manifest.
//
// A Store is built once at startup and never mutated afterwards, so it can be
// shared freely between resolvers.
package refdata

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when reference data is missing a required
// table or a table has the wrong shape.
var ErrInvalidDocument = errors.New("invalid reference data")

// Component is one entry of the component table.
type Component struct {
	Key         string // table key, the canonical name
	Name        string
	ImportPath  string
	Description string
	Props       *Map
	CodeExample string

	// Attrs is the full entry, including variant axes, sub_components and size_map.
	Attrs *Map
}

// Icon is one entry of the icon index.
type Icon struct {
	ID       string
	Category string
	Keywords []string
	SVGPath  string
	ViewBox  string
	JSXFile  string
}

// Reference points at a Figma design.
type Reference struct {
	Key         string
	Name        string
	FileKey     string
	NodeID      string
	URL         string
	Description string
}

// AssetType is one group of files in the asset manifest.
type AssetType struct {
	Name        string
	Description string
	Directory   string
	UsageNote   string
	Files       []string
}

// AssetManifest lists the static assets published next to the reference data.
type AssetManifest struct {
	CDNBase string
	Types   []AssetType
}

// Type returns the asset group with the given name.
func (a *AssetManifest) Type(name string) (AssetType, bool) {
	for _, t := range a.Types {
		if t.Name == name {
			return t, true
		}
	}
	return AssetType{}, false
}

// Store is an immutable snapshot of the reference tables.
type Store struct {
	components     []Component
	componentIndex map[string]int

	// Tokens maps category → token data. Token data is a *Map that is either
	// flat (token → descriptor) or nested (subcategory → token → descriptor).
	Tokens *Map

	IconCategories []string
	Icons          []Icon
	References     []Reference

	// Assets is nil when the document has no asset manifest.
	Assets *AssetManifest
}

// Component returns the component with the exact canonical name key.
func (s *Store) Component(key string) (Component, bool) {
	i, ok := s.componentIndex[key]
	if !ok {
		return Component{}, false
	}
	return s.components[i], true
}

// Components returns every component in definition order.
func (s *Store) Components() []Component {
	return append([]Component(nil), s.components...)
}

// ComponentNames returns the canonical component names in definition order.
func (s *Store) ComponentNames() []string {
	names := make([]string, len(s.components))
	for i, c := range s.components {
		names[i] = c.Key
	}
	return names
}

// Summary describes the size of each table, for logging.
func (s *Store) Summary() []any {
	return []any{
		"components", len(s.components),
		"tokenCategories", s.Tokens.Len(),
		"icons", len(s.Icons),
		"figmaReferences", len(s.References),
		"assets", s.Assets != nil,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}
