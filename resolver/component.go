package resolver

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zhubert/jds-knowledge/refdata"
	"github.com/zhubert/jds-knowledge/sanitize"
)

// VariantAxes are the component attributes collected into "variants", in output order.
var VariantAxes = []string{
	"kinds", "sizes", "states", "types", "orientations",
	"shapes", "indicator_types", "density_options",
	"overflow_options", "icon_types", "badge_types",
	"variants", "appearances", "weights", "image_ratios",
}

// staticAliases maps title-cased spellings to canonical component names.
var staticAliases = map[string]string{
	"Bottomsheet":   "BottomSheet",
	"Bottom Sheet":  "BottomSheet",
	"Bottomnav":     "BottomNav",
	"Bottom Nav":    "BottomNav",
	"Inputfield":    "InputField",
	"Input Field":   "InputField",
	"Promocard":     "PromoCard",
	"Promo Card":    "PromoCard",
	"Servicecard":   "ServiceCard",
	"Service Card":  "ServiceCard",
	"Contentblock":  "ContentBlock",
	"Content Block": "ContentBlock",
	"Ratingbar":     "RatingBar",
	"Rating Bar":    "RatingBar",
	"Avatarv2":      "AvatarV2",
}

// titleCase capitalizes the first letter of every word and lowercases the rest.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// normalizeComponentName folds case, separators and repeated whitespace:
// "bottom_sheet", "BOTTOM  SHEET" and "Bottom-Sheet" all become "Bottom Sheet".
func normalizeComponentName(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return titleCase(strings.Join(strings.Fields(s), " "))
}

// splitCamel inserts a space before each upper-case letter that follows a
// lower-case letter or digit: "BottomSheet" → "Bottom Sheet".
func splitCamel(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func buildAliases(names []string) map[string]string {
	aliases := make(map[string]string, len(staticAliases)+2*len(names))
	for k, v := range staticAliases {
		aliases[k] = v
	}

	canonical := make(map[string]bool, len(names))
	for _, name := range names {
		canonical[name] = true
	}
	for _, name := range names {
		for _, form := range []string{titleCase(name), normalizeComponentName(splitCamel(name))} {
			if form == name || canonical[form] {
				continue
			}
			if _, taken := aliases[form]; !taken {
				aliases[form] = name
			}
		}
	}
	return aliases
}

// resolveComponentKey maps a sanitized query to a table key candidate.
func (r *Resolver) resolveComponentKey(query string) string {
	key := normalizeComponentName(query)
	if target, ok := r.aliases[key]; ok {
		return target
	}
	return key
}

// LookupComponent returns the props, variants and usage example of the named component.
func (r *Resolver) LookupComponent(name string) *refdata.Map {
	query := sanitize.Text(name, 0)

	c, ok := r.store.Component(r.resolveComponentKey(query))
	if !ok {
		available := r.store.ComponentNames()
		sort.Strings(available)

		m := errorResult("Component not found")
		m.Set("query", query)
		m.Set("available_components", available)
		return m
	}

	variants := refdata.NewMap()
	for _, axis := range VariantAxes {
		v, ok := c.Attrs.Get(axis)
		if ok && !isEmpty(v) {
			variants.Set(axis, v)
		}
	}

	m := refdata.NewMap()
	m.Set("component", c.Name)
	m.Set("import_path", c.ImportPath)
	m.Set("description", c.Description)
	m.Set("props", c.Props)
	m.Set("variants", variants)
	m.Set("code_example", c.CodeExample)
	if v, ok := c.Attrs.Get("sub_components"); ok {
		m.Set("sub_components", v)
	}
	if v, ok := c.Attrs.Get("size_map"); ok {
		m.Set("size_map", v)
	}
	return sanitize.Output(m).(*refdata.Map)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case *refdata.Map:
		return t.Len() == 0
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case float64:
		return t == 0
	}
	return false
}
