package mcp

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSON-RPC 2.0 message types for MCP protocol

// JSONRPCRequest represents an incoming JSON-RPC request
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents an outgoing JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// Error codes. The -32000 range is server defined.
const (
	CodeParseError          = -32700
	CodeInvalidRequest      = -32600
	CodeMethodNotFound      = -32601
	CodeInvalidParams       = -32602
	CodeInternalError       = -32603
	CodeToolExecutionFailed = -32000
	CodeUnknownTool         = -32001
	CodeMessageTooLarge     = -32002
)

var (
	errParse          = &RPCError{Code: CodeParseError, Message: "Parse error"}
	errInvalidRequest = &RPCError{Code: CodeInvalidRequest, Message: "Invalid request"}
	errMethodNotFound = &RPCError{Code: CodeMethodNotFound, Message: "Method not found"}
	errInvalidParams  = &RPCError{Code: CodeInvalidParams, Message: "Invalid params"}
	errInternal       = &RPCError{Code: CodeInternalError, Message: "Internal error"}
	errToolFailed     = &RPCError{Code: CodeToolExecutionFailed, Message: "Tool execution failed"}
	errUnknownTool    = &RPCError{Code: CodeUnknownTool, Message: "Unknown tool"}
	errTooLarge       = &RPCError{Code: CodeMessageTooLarge, Message: "Message too large"}
)

// Methods accepted by the dispatcher. Anything else is "Method not found".
const (
	MethodInitialize  = "initialize"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"
)

// MCP Protocol specific types

// Capability represents MCP capabilities
type Capability struct {
	Tools *ToolCapability `json:"tools,omitempty"`
}

// ToolCapability represents tool-related capabilities
type ToolCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// InitializeResult for the initialize response
type InitializeResult struct {
	ProtocolVersion string     `json:"protocolVersion"`
	Capabilities    Capability `json:"capabilities"`
	ServerInfo      ServerInfo `json:"serverInfo"`
	Instructions    string     `json:"instructions,omitempty"`
}

// ServerInfo represents server information
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsListResult for tools/list response
type ToolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolDefinition represents a tool available in the MCP server
type ToolDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// ToolCallParams represents parameters for tools/call
type ToolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolCallResult represents the result of a tool call
type ToolCallResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ContentItem represents content in a tool result
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// textResult wraps encoded tool output in a single text content block.
func textResult(text string) ToolCallResult {
	return ToolCallResult{
		Content: []ContentItem{
			{
				Type: "text",
				Text: text,
			},
		},
	}
}
