// Package mcp implements the Model Context Protocol (MCP) subset the knowledge
// server speaks over stdin/stdout.
//
// # Overview
//
// Each input line is one JSON-RPC 2.0 envelope and each response is written as
// one line. Processing is strictly sequential:
//
//	stdin line
//	    ↓ (size check, no parse above the limit)
//	Server.Run()
//	    ↓
//	Dispatcher.HandleMessage() ← method whitelist
//	    ↓ (tools/call)
//	Toolset → resolver → sanitize.Output
//	    ↓
//	stdout line
//
// # Methods
//
// initialize, ping, tools/list and tools/call always produce a response.
// notifications/initialized produces none. Any other method is answered with
// CodeMethodNotFound.
//
// # Errors
//
// Failures inside a tool are reported as CodeToolExecutionFailed with a fixed
// message; the underlying cause is only logged. Not-found lookups are not
// errors at this layer: they are ordinary tool results carrying an "error"
// field and a list of valid names.
package mcp
