package refdata

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Source identifies where a Store was loaded from.
type Source string

const (
	SourceFile     Source = "file"
	SourceCache    Source = "cache"
	SourceEmbedded Source = "embedded"
)

// Parse decodes a reference data document. JSON documents are accepted
// since JSON is a subset of YAML.
func Parse(data []byte) (*Store, error) {
	var doc Map
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	s := &Store{componentIndex: make(map[string]int)}

	components, err := requireTable(&doc, "components")
	if err != nil {
		return nil, err
	}
	var perr error
	components.Range(func(key string, value any) bool {
		entry, ok := value.(*Map)
		if !ok {
			perr = invalid("component %q is not a mapping", key)
			return false
		}
		c := Component{
			Key:         key,
			Name:        entry.String("name"),
			ImportPath:  entry.String("import_path"),
			Description: entry.String("description"),
			Props:       entry.Sub("props"),
			CodeExample: entry.String("code_example"),
			Attrs:       entry,
		}
		if c.Name == "" {
			c.Name = key
		}
		if c.Props == nil {
			c.Props = NewMap()
		}
		s.componentIndex[key] = len(s.components)
		s.components = append(s.components, c)
		return true
	})
	if perr != nil {
		return nil, perr
	}

	if s.Tokens, err = requireTable(&doc, "tokens"); err != nil {
		return nil, err
	}
	s.Tokens.Range(func(key string, value any) bool {
		if _, ok := value.(*Map); !ok {
			perr = invalid("token category %q is not a mapping", key)
			return false
		}
		return true
	})
	if perr != nil {
		return nil, perr
	}

	icons, err := requireTable(&doc, "icons")
	if err != nil {
		return nil, err
	}
	icons.Range(func(key string, value any) bool {
		entry, ok := value.(*Map)
		if !ok {
			perr = invalid("icon %q is not a mapping", key)
			return false
		}
		s.Icons = append(s.Icons, Icon{
			ID:       key,
			Category: entry.String("category"),
			Keywords: entry.Strings("keywords"),
			SVGPath:  entry.String("svg_path"),
			ViewBox:  entry.String("viewBox"),
			JSXFile:  entry.String("jsx_file"),
		})
		return true
	})
	if perr != nil {
		return nil, perr
	}

	if categories := doc.Sub("icon_categories"); categories != nil {
		s.IconCategories = categories.Keys()
	} else {
		seen := make(map[string]bool)
		for _, icon := range s.Icons {
			if icon.Category != "" && !seen[icon.Category] {
				seen[icon.Category] = true
				s.IconCategories = append(s.IconCategories, icon.Category)
			}
		}
	}

	references, err := requireTable(&doc, "figma_references")
	if err != nil {
		return nil, err
	}
	references.Range(func(key string, value any) bool {
		entry, ok := value.(*Map)
		if !ok {
			perr = invalid("figma reference %q is not a mapping", key)
			return false
		}
		s.References = append(s.References, Reference{
			Key:         key,
			Name:        entry.String("name"),
			FileKey:     entry.String("file_key"),
			NodeID:      entry.String("node_id"),
			URL:         entry.String("url"),
			Description: entry.String("description"),
		})
		return true
	})
	if perr != nil {
		return nil, perr
	}

	if assets := doc.Sub("assets"); assets != nil {
		s.Assets = parseAssets(assets)
	}

	return s, nil
}

func requireTable(doc *Map, key string) (*Map, error) {
	v, ok := doc.Get(key)
	if !ok {
		return nil, invalid("missing %q table", key)
	}
	table, ok := v.(*Map)
	if !ok {
		return nil, invalid("%q must be a mapping", key)
	}
	return table, nil
}

func parseAssets(m *Map) *AssetManifest {
	manifest := &AssetManifest{CDNBase: m.String("cdn_base")}
	m.Sub("types").Range(func(name string, value any) bool {
		entry, ok := value.(*Map)
		if !ok {
			return true
		}
		manifest.Types = append(manifest.Types, AssetType{
			Name:        name,
			Description: entry.String("description"),
			Directory:   entry.String("directory"),
			UsageNote:   entry.String("usage_note"),
			Files:       entry.Strings("files"),
		})
		return true
	})
	return manifest
}

// Load reads and parses the reference data file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Open resolves the reference data to serve. An explicit path must load.
// Otherwise a readable cache copy is used, falling back to the embedded
// dataset when the cache is missing or unreadable.
func Open(explicit, cachePath string, log *slog.Logger) (*Store, Source, error) {
	if explicit != "" {
		s, err := Load(explicit)
		if err != nil {
			return nil, "", err
		}
		return s, SourceFile, nil
	}

	if cachePath != "" {
		if _, err := os.Stat(cachePath); err == nil {
			s, err := Load(cachePath)
			if err == nil {
				return s, SourceCache, nil
			}
			log.Warn("ignoring unreadable cached reference data", "path", cachePath, "error", err)
		}
	}

	s, err := Embedded()
	if err != nil {
		return nil, "", err
	}
	return s, SourceEmbedded, nil
}
