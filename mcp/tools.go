package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/zhubert/jds-knowledge/resolver"
	"github.com/zhubert/jds-knowledge/sanitize"
)

// Tool names accepted by tools/call.
const (
	ToolLookupComponent   = "lookup_component"
	ToolResolveToken      = "resolve_token"
	ToolFindIcon          = "find_icon"
	ToolGetFigmaReference = "get_figma_reference"
	ToolGetAssets         = "get_assets"
)

// ToolHandler runs a tool against its decoded arguments and returns a
// JSON-encodable result document.
type ToolHandler func(args map[string]any) any

// Tool pairs a descriptor with its handler.
type Tool struct {
	ToolDefinition
	Handler ToolHandler
}

// Toolset is the fixed, ordered whitelist of invokable tools.
type Toolset struct {
	tools  []Tool
	byName map[string]int
}

// NewToolset builds a Toolset. Later tools with a duplicate name are ignored.
func NewToolset(tools ...Tool) *Toolset {
	ts := &Toolset{byName: make(map[string]int, len(tools))}
	for _, t := range tools {
		if _, dup := ts.byName[t.Name]; dup {
			continue
		}
		ts.byName[t.Name] = len(ts.tools)
		ts.tools = append(ts.tools, t)
	}
	return ts
}

// Lookup returns the tool registered under name.
func (ts *Toolset) Lookup(name string) (Tool, bool) {
	i, ok := ts.byName[name]
	if !ok {
		return Tool{}, false
	}
	return ts.tools[i], true
}

// Definitions returns the descriptors in registration order.
func (ts *Toolset) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, len(ts.tools))
	for i, t := range ts.tools {
		defs[i] = t.ToolDefinition
	}
	return defs
}

// iconLimit accepts integers, floats and numeric strings; anything else is the default.
func iconLimit(v any) int {
	return sanitize.BoundedInt(v, resolver.DefaultIconLimit, 1, resolver.MaxIconLimit)
}

// stringArg returns args[key] if it is a string, else "".
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func objectSchema(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// KnowledgeTools returns the design-system lookup tools bound to r.
func KnowledgeTools(r *resolver.Resolver) *Toolset {
	store := r.Store()

	refKeys := make([]string, len(store.References))
	for i, ref := range store.References {
		refKeys[i] = ref.Key
	}

	minLimit, maxLimit := float64(1), float64(resolver.MaxIconLimit)

	assetTypes := []any{resolver.AllAssets}
	if store.Assets != nil {
		for _, t := range store.Assets.Types {
			assetTypes = append(assetTypes, t.Name)
		}
	}

	return NewToolset(
		Tool{
			ToolDefinition: ToolDefinition{
				Name:        ToolLookupComponent,
				Description: "Get JDS component specs: " + strings.Join(store.ComponentNames(), ", "),
				InputSchema: objectSchema([]string{"component_name"}, map[string]*jsonschema.Schema{
					"component_name": {
						Type:        "string",
						Description: "Component name (e.g., 'Button', 'Card', 'bottom sheet')",
					},
				}),
			},
			Handler: func(args map[string]any) any {
				return r.LookupComponent(stringArg(args, "component_name"))
			},
		},
		Tool{
			ToolDefinition: ToolDefinition{
				Name:        ToolResolveToken,
				Description: "Resolve JDS design tokens (" + strings.Join(store.Tokens.Keys(), ", ") + ")",
				InputSchema: objectSchema([]string{"token_category"}, map[string]*jsonschema.Schema{
					"token_category": {
						Type:        "string",
						Description: "Token category: " + quoteList(store.Tokens.Keys()),
					},
					"token_name": {
						Type:        "string",
						Description: "Optional token name (e.g., 'primary-50', 'body-s', 'base'). Omit for a category summary",
					},
				}),
			},
			Handler: func(args map[string]any) any {
				return r.ResolveToken(stringArg(args, "token_category"), stringArg(args, "token_name"))
			},
		},
		Tool{
			ToolDefinition: ToolDefinition{
				Name:        ToolFindIcon,
				Description: "Search the JDS icon library by icon name or keyword. Returns svg_path data when available",
				InputSchema: objectSchema([]string{"query"}, map[string]*jsonschema.Schema{
					"query": {
						Type:        "string",
						Description: "Search term (icon name or keyword like 'calendar', 'mic', 'home')",
					},
					"limit": {
						Type:        "integer",
						Description: fmt.Sprintf("Maximum results (default: %d, max: %d)", resolver.DefaultIconLimit, resolver.MaxIconLimit),
						Default:     json.RawMessage(fmt.Sprint(resolver.DefaultIconLimit)),
						Minimum:     &minLimit,
						Maximum:     &maxLimit,
					},
				}),
			},
			Handler: func(args map[string]any) any {
				return r.FindIcon(stringArg(args, "query"), iconLimit(args["limit"]))
			},
		},
		Tool{
			ToolDefinition: ToolDefinition{
				Name:        ToolGetFigmaReference,
				Description: "Get Figma file keys, node IDs and URLs for JDS designs: " + strings.Join(refKeys, ", "),
				InputSchema: objectSchema([]string{"design_name"}, map[string]*jsonschema.Schema{
					"design_name": {
						Type:        "string",
						Description: "Design name: " + quoteList(refKeys),
					},
				}),
			},
			Handler: func(args map[string]any) any {
				return r.GetFigmaReference(stringArg(args, "design_name"))
			},
		},
		Tool{
			ToolDefinition: ToolDefinition{
				Name:        ToolGetAssets,
				Description: "Get CDN URLs for JDS assets (fonts, animations, icon sources) for prototyping",
				InputSchema: objectSchema(nil, map[string]*jsonschema.Schema{
					"asset_type": {
						Type:        "string",
						Description: "Asset type (default: 'all')",
						Default:     json.RawMessage(`"all"`),
						Enum:        assetTypes,
					},
				}),
			},
			Handler: func(args map[string]any) any {
				return r.GetAssets(stringArg(args, "asset_type"))
			},
		},
	)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}
