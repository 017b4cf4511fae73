package mcp

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/zhubert/jds-knowledge/logger"
)

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "jds-knowledge-server"
)

// Instructions is returned from initialize to steer the calling agent.
const Instructions = `You are connected to the JDS (Jio Design System) knowledge server. When building any prototype or UI:
1. Call get_assets first to get CDN URLs for JDS fonts, animations and icon sources. Use the cdn_url values directly.
2. Use the JioType font family. Do not substitute system fonts.
3. Call lookup_component before implementing any JDS component.
4. Call resolve_token for colors, typography, spacing, border radius and opacity instead of hardcoding values.
5. Call find_icon to get SVG path data for icons.
6. Call get_figma_reference for the Figma file and node of a JDS screen.`

// Dispatcher routes decoded JSON-RPC requests to the tool whitelist.
// It holds no per-request state, so one Dispatcher serves every line.
type Dispatcher struct {
	tools *Toolset
	info  ServerInfo
	log   *slog.Logger
}

// NewDispatcher creates a Dispatcher for tools. A nil log uses the mcp component logger.
func NewDispatcher(tools *Toolset, version string, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = logger.WithComponent("mcp")
	}
	return &Dispatcher{
		tools: tools,
		info:  ServerInfo{Name: ServerName, Version: version},
		log:   log,
	}
}

// Tools returns the tool whitelist.
func (d *Dispatcher) Tools() *Toolset {
	return d.tools
}

// HandleMessage decodes one line and dispatches it. A nil response means
// the message was a notification. Panics become "Internal error".
func (d *Dispatcher) HandleMessage(line []byte) (resp *JSONRPCResponse) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("panic while handling message", "panic", r)
			resp = errorResponse(nil, errInternal)
		}
	}()

	if !json.Valid(line) {
		d.log.Warn("JSON parse error")
		return errorResponse(nil, errParse)
	}
	if trimmed := bytes.TrimSpace(line); len(trimmed) == 0 || trimmed[0] != '{' {
		d.log.Warn("request is not a JSON object")
		return errorResponse(nil, errInvalidRequest)
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		d.log.Warn("malformed request envelope", "error", err)
		return errorResponse(nil, errInvalidRequest)
	}
	return d.HandleRequest(&req)
}

// HandleRequest answers one request. Every method gets a response except
// notifications/initialized.
func (d *Dispatcher) HandleRequest(req *JSONRPCRequest) *JSONRPCResponse {
	d.log.Debug("received request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case MethodInitialize:
		return d.handleInitialize(req)
	case MethodInitialized:
		d.log.Debug("initialized notification received")
		return nil
	case MethodPing:
		return resultResponse(req.ID, struct{}{})
	case MethodToolsList:
		return resultResponse(req.ID, ToolsListResult{Tools: d.tools.Definitions()})
	case MethodToolsCall:
		return d.handleToolsCall(req)
	default:
		d.log.Warn("unknown method", "method", req.Method)
		return errorResponse(req.ID, errMethodNotFound)
	}
}

func (d *Dispatcher) handleInitialize(req *JSONRPCRequest) *JSONRPCResponse {
	return resultResponse(req.ID, InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: Capability{
			Tools: &ToolCapability{},
		},
		ServerInfo:   d.info,
		Instructions: Instructions,
	})
}

func (d *Dispatcher) handleToolsCall(req *JSONRPCRequest) *JSONRPCResponse {
	name, args, rpcErr := parseToolCall(req.Params)
	if rpcErr != nil {
		d.log.Warn("invalid tool call params")
		return errorResponse(req.ID, rpcErr)
	}

	text, rpcErr := d.CallTool(name, args)
	if rpcErr != nil {
		return errorResponse(req.ID, rpcErr)
	}
	return resultResponse(req.ID, textResult(text))
}

// CallTool runs a whitelisted tool and returns its result as indented JSON.
func (d *Dispatcher) CallTool(name string, args map[string]any) (text string, rpcErr *RPCError) {
	tool, ok := d.tools.Lookup(name)
	if !ok {
		d.log.Warn("unknown tool", "tool", name)
		return "", errUnknownTool
	}

	defer func() {
		if r := recover(); r != nil {
			d.log.Error("tool panicked", "tool", name, "panic", r)
			text, rpcErr = "", errToolFailed
		}
	}()

	if args == nil {
		args = map[string]any{}
	}
	data, err := encodeJSON(tool.Handler(args), "  ")
	if err != nil {
		d.log.Error("failed to encode tool result", "tool", name, "error", err)
		return "", errToolFailed
	}
	d.log.Info("tool call", "tool", name, "bytes", len(data))
	return string(data), nil
}

// parseToolCall extracts the tool name and arguments. Missing params or
// arguments mean empty ones; present but non-object values are invalid.
// A non-string name is reported later as an unknown tool.
func parseToolCall(raw json.RawMessage) (string, map[string]any, *RPCError) {
	var fields map[string]json.RawMessage
	if p := bytes.TrimSpace(raw); len(p) > 0 && !bytes.Equal(p, []byte("null")) {
		if p[0] != '{' {
			return "", nil, errInvalidParams
		}
		if err := json.Unmarshal(p, &fields); err != nil {
			return "", nil, errInvalidParams
		}
	}

	args := map[string]any{}
	if a, ok := fields["arguments"]; ok {
		a = bytes.TrimSpace(a)
		if len(a) == 0 || a[0] != '{' {
			return "", nil, errInvalidParams
		}
		if err := json.Unmarshal(a, &args); err != nil {
			return "", nil, errInvalidParams
		}
	}

	var name string
	_ = json.Unmarshal(fields["name"], &name)
	return name, args, nil
}

func resultResponse(id any, result any) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

func errorResponse(id any, rpcErr *RPCError) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: rpcErr.Code, Message: rpcErr.Message},
	}
}

// encodeJSON marshals v without HTML escaping, optionally indented.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
