package mcp

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhubert/jds-knowledge/refdata"
	"github.com/zhubert/jds-knowledge/resolver"
)

func embeddedTools() *Toolset {
	store, err := refdata.Embedded()
	if err != nil {
		panic(err)
	}
	return KnowledgeTools(resolver.New(store))
}

func TestKnowledgeTools_Definitions(t *testing.T) {
	defs := embeddedTools().Definitions()

	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{
		ToolLookupComponent,
		ToolResolveToken,
		ToolFindIcon,
		ToolGetFigmaReference,
		ToolGetAssets,
	}, names)

	for _, d := range defs {
		t.Run(d.Name, func(t *testing.T) {
			require.NotNil(t, d.InputSchema)
			assert.Equal(t, "object", d.InputSchema.Type)
			assert.NotEmpty(t, d.Description)
			for _, req := range d.InputSchema.Required {
				assert.Contains(t, d.InputSchema.Properties, req)
			}
			_, err := d.InputSchema.Resolve(nil)
			require.NoError(t, err)
		})
	}
}

func TestKnowledgeTools_DescriptionsListStoreContents(t *testing.T) {
	ts := embeddedTools()

	lookup, ok := ts.Lookup(ToolLookupComponent)
	require.True(t, ok)
	assert.Contains(t, lookup.Description, "Button")
	assert.Contains(t, lookup.Description, "BottomSheet")

	token, ok := ts.Lookup(ToolResolveToken)
	require.True(t, ok)
	assert.Contains(t, token.InputSchema.Properties["token_category"].Description, "'colors'")

	figma, ok := ts.Lookup(ToolGetFigmaReference)
	require.True(t, ok)
	assert.Contains(t, figma.Description, "homepage")

	assets, ok := ts.Lookup(ToolGetAssets)
	require.True(t, ok)
	assert.Equal(t, []any{"all", "fonts", "animations", "icons"}, assets.InputSchema.Properties["asset_type"].Enum)
	assert.Empty(t, assets.InputSchema.Required)
}

func TestKnowledgeTools_SchemaValidation(t *testing.T) {
	ts := embeddedTools()
	icon, ok := ts.Lookup(ToolFindIcon)
	require.True(t, ok)

	resolved, err := icon.InputSchema.Resolve(nil)
	require.NoError(t, err)

	assert.NoError(t, resolved.Validate(map[string]any{"query": "mic", "limit": float64(5)}))
	assert.Error(t, resolved.Validate(map[string]any{"limit": float64(5)}), "query is required")
	assert.Error(t, resolved.Validate(map[string]any{"query": "mic", "limit": float64(500)}), "limit above maximum")
}

func TestToolset_IgnoresDuplicates(t *testing.T) {
	first := Tool{ToolDefinition: ToolDefinition{Name: "echo", Description: "first"}}
	second := Tool{ToolDefinition: ToolDefinition{Name: "echo", Description: "second"}}

	ts := NewToolset(first, second)
	require.Len(t, ts.Definitions(), 1)

	got, ok := ts.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "first", got.Description)

	_, ok = ts.Lookup("missing")
	assert.False(t, ok)
}

func TestIconLimit(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{nil, 10},
		{float64(3), 3},
		{float64(3.9), 3},
		{float64(0), 1},
		{float64(-4), 1},
		{float64(500), 50},
		{"7", 7},
		{" 12 ", 12},
		{"many", 10},
		{math.NaN(), 10},
		{math.Inf(1), 10},
		{[]any{1}, 10},
	}
	for _, tt := range tests {
		if got := iconLimit(tt.in); got != tt.want {
			t.Errorf("iconLimit(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]any{"name": "Button", "count": 3}
	assert.Equal(t, "Button", stringArg(args, "name"))
	assert.Equal(t, "", stringArg(args, "count"))
	assert.Equal(t, "", stringArg(args, "missing"))
	assert.Equal(t, "", stringArg(nil, "name"))
}

func TestQuoteList(t *testing.T) {
	assert.Equal(t, "'a', 'b'", quoteList([]string{"a", "b"}))
	assert.Equal(t, "", quoteList(nil))
	assert.False(t, strings.Contains(quoteList([]string{"x"}), ","))
}
