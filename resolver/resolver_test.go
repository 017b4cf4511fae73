package resolver

import (
	"encoding/json"
	"testing"

	"github.com/zhubert/jds-knowledge/refdata"
)

// fixtureDoc is a small document exercising shapes the embedded data lacks.
const fixtureDoc = `
components:
  Chip:
    name: Chip
    import_path: '@jds/core'
    description: Compact element, see /Users/dev/notes.txt
    kinds: [filter, input]
    sizes: []
    weights: [bold]
    props:
      label: {type: string, required: true}
    size_map:
      s: 24px
      m: 32px
    sub_components:
      ChipIcon: {props: {}}
    code_example: <Chip label="x" />
  AvatarV2:
    import_path: '@jds/core'
    props: {}
tokens:
  motion:
    fast-1: 100ms
    slow: 400ms
  layers:
    base-1:
      modal-1: {value: 100}
    top:
      toast-2: {value: 200}
  themes:
    light:
      surface: {value: white}
    dark:
      surface: {value: black}
      surface-2: {value: grey}
icon_categories:
  media: [ic_mic]
  toggle: [ic_star]
icons:
  ic_mic:
    category: media
    keywords: [Microphone, voice]
  ic_star:
    category: toggle
    keywords: [favorite, rating]
    svg_path: M0 0L10 10
    viewBox: 0 0 24 24
  ic_starburst:
    category: toggle
    keywords: [burst]
figma_references:
  chat_page:
    name: Chat Page
    file_key: k1
    url: https://figma.example/chat
    description: secret:abc123 layout
  oneui_kit:
    name: OneUI Design Kit
    file_key: k2
    node_id: 1-2
    url: https://figma.example/kit
assets:
  cdn_base: https://cdn.example/assets/
  types:
    fonts:
      description: Fonts
      directory: fonts/woff2
      usage_note: Use @font-face
      files: [A.woff2, B.woff2]
    animations:
      description: Animations
      directory: /animations
      files: [Idle.mp4]
`

func newFixtureResolver(t *testing.T) *Resolver {
	t.Helper()
	s, err := refdata.Parse([]byte(fixtureDoc))
	if err != nil {
		t.Fatalf("Parse fixture: %v", err)
	}
	return New(s)
}

func newEmbeddedResolver(t *testing.T) *Resolver {
	t.Helper()
	s, err := refdata.Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	return New(s)
}

// decode round-trips a result through JSON for structural comparison.
func decode(t *testing.T, m *refdata.Map) map[string]any {
	t.Helper()
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal %s: %v", data, err)
	}
	return out
}
