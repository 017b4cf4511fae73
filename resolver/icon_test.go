package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func iconIDs(t *testing.T, got map[string]any) []string {
	t.Helper()
	var ids []string
	for _, r := range got["results"].([]any) {
		ids = append(ids, r.(map[string]any)["icon"].(string))
	}
	return ids
}

func TestFindIcon_Matching(t *testing.T) {
	r := newEmbeddedResolver(t)

	tests := []struct {
		name      string
		query     string
		limit     int
		wantIDs   []string
		wantMatch []string
	}{
		{
			name: "name substring", query: "calendar", limit: 10,
			wantIDs:   []string{"ic_calendar", "ic_calendar_today", "ic_calendar_event"},
			wantMatch: []string{"name", "name", "name"},
		},
		{
			name: "keyword substring", query: "voice", limit: 10,
			wantIDs:   []string{"ic_mic"},
			wantMatch: []string{"keyword"},
		},
		{
			name: "name wins over keyword", query: "mic", limit: 10,
			wantIDs:   []string{"ic_mic"},
			wantMatch: []string{"name"},
		},
		{
			name: "case-insensitive", query: "CALENDAR", limit: 1,
			wantIDs:   []string{"ic_calendar"},
			wantMatch: []string{"name"},
		},
		{
			name: "early stop favors index order", query: "appointment", limit: 1,
			wantIDs:   []string{"ic_calendar"},
			wantMatch: []string{"keyword"},
		},
		{
			name: "limit below one clamps to one", query: "ic_", limit: 0,
			wantIDs:   []string{"ic_mic"},
			wantMatch: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(t, r.FindIcon(tt.query, tt.limit))
			if diff := cmp.Diff(tt.wantIDs, iconIDs(t, got)); diff != "" {
				t.Fatalf("icons (-want +got):\n%s", diff)
			}
			var matches []string
			for _, res := range got["results"].([]any) {
				matches = append(matches, res.(map[string]any)["match_type"].(string))
			}
			if diff := cmp.Diff(tt.wantMatch, matches); diff != "" {
				t.Errorf("match types (-want +got):\n%s", diff)
			}
			if got["count"] != float64(len(tt.wantIDs)) {
				t.Errorf("count = %v", got["count"])
			}
		})
	}
}

func TestFindIcon_LimitBound(t *testing.T) {
	r := newEmbeddedResolver(t)

	for _, limit := range []int{-3, 0, 1, 5, 18, 50, 500} {
		got := decode(t, r.FindIcon("ic", limit))
		n := len(got["results"].([]any))
		bound := min(max(limit, 1), MaxIconLimit)
		if n > bound {
			t.Errorf("limit %d returned %d results", limit, n)
		}
		if n == 0 {
			t.Errorf("limit %d returned nothing", limit)
		}
	}
}

func TestFindIcon_EntryFields(t *testing.T) {
	r := newFixtureResolver(t)

	res := r.FindIcon("star", 10)
	got := decode(t, res)

	want := []any{
		map[string]any{
			"icon": "ic_star", "category": "toggle", "keywords": []any{"favorite", "rating"},
			"match_type": "name", "svg_path": "M0 0L10 10", "viewBox": "0 0 24 24",
		},
		map[string]any{
			"icon": "ic_starburst", "category": "toggle", "keywords": []any{"burst"},
			"match_type": "name",
		},
	}
	if diff := cmp.Diff(want, got["results"]); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"query", "count", "results"}, res.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	// Keywords are matched case-insensitively.
	got = decode(t, r.FindIcon("microphone", 10))
	if diff := cmp.Diff([]string{"ic_mic"}, iconIDs(t, got)); diff != "" {
		t.Errorf("keyword case (-want +got):\n%s", diff)
	}
}

func TestFindIcon_NoMatch(t *testing.T) {
	r := newFixtureResolver(t)

	tests := []struct {
		name     string
		query    string
		matching any
	}{
		{"no category match", "zebra", nil},
		{"category match", "togg", []any{"toggle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(t, r.FindIcon(tt.query, 10))
			want := map[string]any{
				"results":              []any{},
				"suggestion":           "No icons found matching query",
				"available_categories": []any{"media", "toggle"},
				"matching_categories":  tt.matching,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindIcon_EmptyQuery(t *testing.T) {
	r := newFixtureResolver(t)

	for _, q := range []string{"", "   ", "<>;"} {
		got := decode(t, r.FindIcon(q, 10))
		want := map[string]any{
			"error":                "Search query is required",
			"available_categories": []any{"media", "toggle"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("FindIcon(%q) (-want +got):\n%s", q, diff)
		}
	}
}
