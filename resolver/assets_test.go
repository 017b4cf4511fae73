package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zhubert/jds-knowledge/refdata"
)

func TestGetAssets(t *testing.T) {
	r := newFixtureResolver(t)

	fonts := map[string]any{
		"description": "Fonts",
		"cdn_base":    "https://cdn.example/assets/fonts/woff2",
		"files": []any{
			map[string]any{"name": "A.woff2", "cdn_url": "https://cdn.example/assets/fonts/woff2/A.woff2"},
			map[string]any{"name": "B.woff2", "cdn_url": "https://cdn.example/assets/fonts/woff2/B.woff2"},
		},
		"count":      float64(2),
		"usage_note": "Use @font-face",
	}
	animations := map[string]any{
		"description": "Animations",
		"cdn_base":    "https://cdn.example/assets/animations",
		"files": []any{
			map[string]any{"name": "Idle.mp4", "cdn_url": "https://cdn.example/assets/animations/Idle.mp4"},
		},
		"count": float64(1),
	}

	tests := []struct {
		name      string
		assetType string
		want      map[string]any
	}{
		{"default is all", "", map[string]any{"fonts": fonts, "animations": animations}},
		{"all", "ALL", map[string]any{"fonts": fonts, "animations": animations}},
		{"single", " fonts ", map[string]any{"fonts": fonts}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(t, r.GetAssets(tt.assetType))
			want := map[string]any{"cdn_base": "https://cdn.example/assets/", "types": tt.want}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetAssets_UnknownType(t *testing.T) {
	r := newFixtureResolver(t)

	want := map[string]any{
		"error":           "Unknown asset type",
		"available_types": []any{"all", "fonts", "animations"},
	}
	if diff := cmp.Diff(want, decode(t, r.GetAssets("svg"))); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
}

func TestGetAssets_NoManifest(t *testing.T) {
	s, err := refdata.Parse([]byte("components: {}\ntokens: {}\nicons: {}\nfigma_references: {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	got := decode(t, New(s).GetAssets("all"))
	if diff := cmp.Diff(map[string]any{"error": "Asset manifest not available"}, got); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
}

func TestGetAssets_EmbeddedOrder(t *testing.T) {
	r := newEmbeddedResolver(t)

	res := r.GetAssets("all")
	if diff := cmp.Diff([]string{"fonts", "animations", "icons"}, res.Sub("types").Keys()); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}
