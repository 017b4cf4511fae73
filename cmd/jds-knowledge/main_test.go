package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhubert/jds-knowledge/logger"
	"github.com/zhubert/jds-knowledge/mcp"
	"github.com/zhubert/jds-knowledge/paths"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

const chipDoc = `
components:
  Chip:
    import_path: '@jds/core'
    description: Compact element
    props: {}
tokens:
  spacing:
    base: 16px
icons:
  ic_star:
    category: toggle
    keywords: [favorite]
figma_references:
  home:
    name: Home
    file_key: k1
    url: https://figma.example/home
`

// setupHome isolates config, cache and env lookups in a temp HOME.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	for _, key := range []string{"DATA_FILE", "MAX_MESSAGE_SIZE", "DEBUG", "LOG_FILE", "LOG_CONSOLE", "UPDATE_URL", "FETCH_TIMEOUT"} {
		t.Setenv("JDS_"+key, "")
	}
	paths.Reset()
	t.Cleanup(paths.Reset)
	return home
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var msgs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), "line %q", line)
		msgs = append(msgs, m)
	}
	return msgs
}

func TestVersion(t *testing.T) {
	setupHome(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "jds-knowledge-server "+version+"\n", out)
}

func TestTools(t *testing.T) {
	setupHome(t)
	out, err := execute(t, "", "tools")
	require.NoError(t, err)

	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	require.Len(t, defs, 5)
	assert.Equal(t, "lookup_component", defs[0]["name"])
	assert.Equal(t, "get_assets", defs[4]["name"])
}

func TestCall(t *testing.T) {
	setupHome(t)

	t.Run("component", func(t *testing.T) {
		out, err := execute(t, "", "call", "lookup_component", `{"component_name":"bottom sheet"}`)
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "BottomSheet", doc["component"])
	})

	t.Run("no arguments", func(t *testing.T) {
		out, err := execute(t, "", "call", "get_assets")
		require.NoError(t, err)
		assert.Contains(t, out, `"cdn_base"`)
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := execute(t, "", "call", "rm_rf")
		var rpcErr *mcp.RPCError
		require.True(t, errors.As(err, &rpcErr), "got %v", err)
		assert.Equal(t, mcp.CodeUnknownTool, rpcErr.Code)
	})

	t.Run("malformed arguments", func(t *testing.T) {
		_, err := execute(t, "", "call", "find_icon", `{"query":`)
		assert.Error(t, err)
	})

	t.Run("non-object arguments", func(t *testing.T) {
		_, err := execute(t, "", "call", "find_icon", `["mic"]`)
		assert.ErrorIs(t, err, errArgsNotObject)
	})
}

func TestCall_DataFile(t *testing.T) {
	setupHome(t)
	path := filepath.Join(t.TempDir(), "jds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chipDoc), 0644))

	out, err := execute(t, "", "--data-file", path, "call", "lookup_component", `{"component_name":"chip"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"component": "Chip"`)

	_, err = execute(t, "", "--data-file", filepath.Join(t.TempDir(), "missing.yaml"), "tools")
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	setupHome(t)
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"resolve_token","arguments":{"token_category":"colors","token_name":"primary-50"}}}`,
	}, "\n") + "\n"

	for _, args := range [][]string{{"serve"}, {}} {
		t.Run(strings.Join(append([]string{"root"}, args...), " "), func(t *testing.T) {
			out, err := execute(t, input, args...)
			require.NoError(t, err)

			msgs := decodeLines(t, out)
			require.Len(t, msgs, 2)
			assert.Equal(t, float64(1), msgs[0]["id"])
			assert.Equal(t, float64(2), msgs[1]["id"])
			assert.Contains(t, out, `#3535f3`)
		})
	}
}

func TestServe_MaxMessageSizeFlag(t *testing.T) {
	setupHome(t)
	input := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	out, err := execute(t, input, "serve", "--max-message-size", "10")
	require.NoError(t, err)

	msgs := decodeLines(t, out)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0]["id"])
	assert.Equal(t, float64(mcp.CodeMessageTooLarge), msgs[0]["error"].(map[string]any)["code"])
}

func TestConfigFile(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "version")
	assert.Error(t, err)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_message_size: -1\n"), 0644))
	_, err = execute(t, "", "--config", cfgPath, "version")
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	home := setupHome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jds.yaml":
			w.Write([]byte(chipDoc))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	_, err := execute(t, "", "fetch")
	assert.ErrorIs(t, err, errNoUpdateURL)

	// Embedded data has no Chip
	out, err := execute(t, "", "call", "lookup_component", `{"component_name":"Chip"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "available_components")

	_, err = execute(t, "", "fetch", "--url", srv.URL+"/missing.yaml")
	assert.Error(t, err)

	out, err = execute(t, "", "fetch", "--url", srv.URL+"/jds.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Cached 1 components")

	cached := filepath.Join(home, ".jds-knowledge", "cache", "knowledge.yaml")
	data, err := os.ReadFile(cached)
	require.NoError(t, err)
	assert.Equal(t, chipDoc, string(data))

	out, err = execute(t, "", "call", "lookup_component", `{"component_name":"Chip"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"component": "Chip"`)
}
