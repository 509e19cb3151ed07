package mcp

import "encoding/json"

// Method names of the protocol subset this server implements.
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
)

// ServerInfo identifies the server implementation during the initialize
// handshake.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability signals tool support in the initialize result.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerCapabilities enumerates what the server supports. Only tools here.
type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

// InitializeResult is the result of the initialize handshake.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// ToolInputSchema is the JSON schema describing a tool's arguments.
type ToolInputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

// EmptyObjectSchema returns the schema of a tool taking no arguments.
// Properties and Required are non-nil so they marshal as {} and [], not
// null.
func EmptyObjectSchema() ToolInputSchema {
	return ToolInputSchema{
		Type:       "object",
		Properties: map[string]any{},
		Required:   []string{},
	}
}

// Tool describes one callable tool.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema ToolInputSchema `json:"inputSchema"`
}

// ToolsListResult is the result of tools/list.
type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams are the params of tools/call.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Content is one item of a tool result. This server only produces text.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextContent returns a text content item.
func NewTextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// CallToolResult is the result of tools/call. IsError marks tool-level
// failures that still produced renderable content.
type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// NewToolResult wraps text as the single content item of a tools/call
// result.
func NewToolResult(text string) CallToolResult {
	return CallToolResult{Content: []Content{NewTextContent(text)}}
}
