package core

import (
	"context"

	"github.com/ntpmcp/ntpmcp/mcp"
	"github.com/ntpmcp/ntpmcp/version"
)

// Tool names callable via tools/call.
const (
	ToolGetCurrentTime      = "get_current_time"
	ToolListApprovedServers = "list_approved_servers"
)

// toolOrder fixes the listing order of tools/list.
var toolOrder = []string{ToolGetCurrentTime, ToolListApprovedServers}

// Route binds one tool definition to its handler.
type Route struct {
	Tool    mcp.Tool
	Handler func(ctx context.Context) (string, error)
}

// RoutesMap is a map of available tools.
type RoutesMap map[string]*Route

// GetRoutes returns the tool table served over tools/list and tools/call.
func (env *Environment) GetRoutes() RoutesMap {
	return RoutesMap{
		ToolGetCurrentTime: {
			Tool: mcp.Tool{
				Name: ToolGetCurrentTime,
				Description: "Get the current time from an NTP server specified by " +
					"NTP_SERVER env var (default 'pool.ntp.org'), in time zone " +
					"specified by TZ env var (default system local)",
				InputSchema: mcp.EmptyObjectSchema(),
			},
			Handler: env.GetCurrentTime,
		},
		ToolListApprovedServers: {
			Tool: mcp.Tool{
				Name:        ToolListApprovedServers,
				Description: "List all approved NTP servers that can be used",
				InputSchema: mcp.EmptyObjectSchema(),
			},
			Handler: env.ListApprovedServers,
		},
	}
}

// Tools returns the tool definitions in listing order.
func (env *Environment) Tools() []mcp.Tool {
	routes := env.GetRoutes()
	tools := make([]mcp.Tool, 0, len(routes))
	for _, name := range toolOrder {
		tools = append(tools, routes[name].Tool)
	}
	return tools
}

// CallTool dispatches a tools/call by name.
func (env *Environment) CallTool(ctx context.Context, name string) (string, error) {
	route, ok := env.GetRoutes()[name]
	if !ok {
		return "", ErrUnknownTool{Name: name}
	}
	env.Metrics.ToolCalls.With("tool", name).Add(1)
	return route.Handler(ctx)
}

// ServerInfo identifies this server in the initialize handshake.
func (env *Environment) ServerInfo() mcp.ServerInfo {
	return mcp.ServerInfo{Name: "ntp-server", Version: version.SemVer}
}
