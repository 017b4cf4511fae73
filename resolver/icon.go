package resolver

import (
	"strings"

	"github.com/zhubert/jds-knowledge/refdata"
	"github.com/zhubert/jds-knowledge/sanitize"
)

const (
	DefaultIconLimit = 10
	MaxIconLimit     = 50
)

// FindIcon searches the icon index by id substring, then keyword substring.
// Scanning stops once limit matches are collected, so earlier icons win.
func (r *Resolver) FindIcon(query string, limit int) *refdata.Map {
	q := sanitize.Text(query, 0)
	limit = sanitize.BoundedInt(limit, DefaultIconLimit, 1, MaxIconLimit)

	if q == "" {
		m := errorResult("Search query is required")
		m.Set("available_categories", r.categories())
		return m
	}

	needle := strings.ToLower(q)
	results := []any{}
	for _, icon := range r.store.Icons {
		matchType := ""
		switch {
		case strings.Contains(strings.ToLower(icon.ID), needle):
			matchType = "name"
		case keywordMatch(icon.Keywords, needle):
			matchType = "keyword"
		}
		if matchType != "" {
			results = append(results, iconEntry(icon, matchType))
		}
		if len(results) >= limit {
			break
		}
	}

	if len(results) == 0 {
		var matching []string
		for _, cat := range r.store.IconCategories {
			if strings.Contains(strings.ToLower(cat), needle) {
				matching = append(matching, cat)
			}
		}

		m := refdata.NewMap()
		m.Set("results", []any{})
		m.Set("suggestion", "No icons found matching query")
		m.Set("available_categories", r.categories())
		if len(matching) > 0 {
			m.Set("matching_categories", matching)
		} else {
			m.Set("matching_categories", nil)
		}
		return sanitize.Output(m).(*refdata.Map)
	}

	m := refdata.NewMap()
	m.Set("query", q)
	m.Set("count", len(results))
	m.Set("results", results)
	return sanitize.Output(m).(*refdata.Map)
}

func (r *Resolver) categories() []string {
	return append([]string{}, r.store.IconCategories...)
}

func keywordMatch(keywords []string, needle string) bool {
	for _, kw := range keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return false
}

func iconEntry(icon refdata.Icon, matchType string) *refdata.Map {
	m := refdata.NewMap()
	m.Set("icon", icon.ID)
	m.Set("category", icon.Category)
	m.Set("keywords", append([]string{}, icon.Keywords...))
	m.Set("match_type", matchType)
	if icon.SVGPath != "" {
		m.Set("svg_path", icon.SVGPath)
	}
	if icon.ViewBox != "" {
		m.Set("viewBox", icon.ViewBox)
	}
	if icon.JSXFile != "" {
		m.Set("jsx_file", icon.JSXFile)
	}
	return m
}
