package resolver

import (
	"strings"

	"github.com/zhubert/jds-knowledge/refdata"
	"github.com/zhubert/jds-knowledge/sanitize"
)

// TokenShape describes how a token category is laid out.
type TokenShape int

const (
	// ShapeFlat maps token name → descriptor.
	ShapeFlat TokenShape = iota
	// ShapeNested maps subcategory → token name → descriptor.
	ShapeNested
)

func (s TokenShape) String() string {
	if s == ShapeNested {
		return "nested"
	}
	return "flat"
}

// sampleSize is how many tokens a category summary shows.
const sampleSize = 3

// ClassifyTokens decides the shape of a category from its keys alone.
// Rules, first match wins:
//  1. any top-level value that is not a mapping → flat
//  2. any top-level key containing '-' → flat
//  3. some second-level key looks like a token name (contains '-' or ends
//     in a digit) → nested
//  4. otherwise → flat
func ClassifyTokens(data *refdata.Map) TokenShape {
	flat := false
	data.Range(func(key string, value any) bool {
		if _, ok := value.(*refdata.Map); !ok {
			flat = true
			return false
		}
		if strings.Contains(key, "-") {
			flat = true
			return false
		}
		return true
	})
	if flat {
		return ShapeFlat
	}

	shape := ShapeFlat
	data.Range(func(_ string, value any) bool {
		for _, k := range value.(*refdata.Map).Keys() {
			if isTokenName(k) {
				shape = ShapeNested
				return false
			}
		}
		return true
	})
	return shape
}

func isTokenName(key string) bool {
	if strings.Contains(key, "-") {
		return true
	}
	return key != "" && key[len(key)-1] >= '0' && key[len(key)-1] <= '9'
}

func normalizeCategory(s string) string {
	return strings.ReplaceAll(strings.ToLower(sanitize.Text(s, 0)), " ", "_")
}

func normalizeTokenName(s string) string {
	return strings.ReplaceAll(strings.ToLower(sanitize.Text(s, 0)), "_", "-")
}

// ResolveToken looks up a design token. With an empty name it summarizes the
// category instead. Names match by case-insensitive substring, first hit in
// definition order.
func (r *Resolver) ResolveToken(category, name string) *refdata.Map {
	cat := normalizeCategory(category)

	raw, ok := r.store.Tokens.Get(cat)
	data, isMap := raw.(*refdata.Map)
	if !ok || !isMap {
		m := errorResult("Token category not found")
		m.Set("available_categories", r.store.Tokens.Keys())
		return m
	}

	shape := ClassifyTokens(data)
	query := normalizeTokenName(name)
	if query == "" {
		return summarizeTokens(cat, data, shape)
	}

	if shape == ShapeNested {
		var hit *refdata.Map
		data.Range(func(sub string, tokens any) bool {
			tokens.(*refdata.Map).Range(func(key string, value any) bool {
				if strings.Contains(strings.ToLower(key), query) {
					hit = refdata.NewMap()
					hit.Set("category", cat)
					hit.Set("subcategory", sub)
					hit.Set("token", key)
					hit.Set("value", value)
					return false
				}
				return true
			})
			return hit == nil
		})
		if hit != nil {
			return sanitize.Output(hit).(*refdata.Map)
		}
		return tokenMiss(cat, allNestedTokens(data))
	}

	var hit *refdata.Map
	data.Range(func(key string, value any) bool {
		if strings.Contains(strings.ToLower(key), query) {
			hit = refdata.NewMap()
			hit.Set("category", cat)
			hit.Set("token", key)
			hit.Set("value", value)
			return false
		}
		return true
	})
	if hit != nil {
		return sanitize.Output(hit).(*refdata.Map)
	}
	return tokenMiss(cat, data.Keys())
}

func tokenMiss(category string, available []string) *refdata.Map {
	m := errorResult("Token not found in " + category)
	m.Set("available_tokens", available)
	return m
}

func allNestedTokens(data *refdata.Map) []string {
	var names []string
	data.Range(func(_ string, tokens any) bool {
		names = append(names, tokens.(*refdata.Map).Keys()...)
		return true
	})
	return names
}

func summarizeTokens(category string, data *refdata.Map, shape TokenShape) *refdata.Map {
	samples := refdata.NewMap()
	m := refdata.NewMap()
	m.Set("category", category)

	if shape == ShapeNested {
		m.Set("subcategories", data.Keys())
		visited := 0
		data.Range(func(_ string, tokens any) bool {
			sub := tokens.(*refdata.Map)
			if keys := sub.Keys(); len(keys) > 0 {
				v, _ := sub.Get(keys[0])
				samples.Set(keys[0], v)
			}
			visited++
			return visited < sampleSize
		})
		m.Set("sample_tokens", samples)
		return m
	}

	m.Set("token_count", data.Len())
	data.Range(func(key string, value any) bool {
		if samples.Len() >= sampleSize {
			return false
		}
		samples.Set(key, value)
		return true
	})
	m.Set("sample_tokens", samples)
	return m
}
