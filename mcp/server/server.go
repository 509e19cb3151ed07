// Package server serves the MCP wire protocol: newline-delimited JSON-RPC
// 2.0 over stdio or over a capped TCP listener. Protocol-level faults
// (unparseable JSON, unknown methods, bad params) are answered with JSON-RPC
// errors; everything a tool handler itself produces is returned as a tool
// result.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"runtime/debug"

	"golang.org/x/net/netutil"

	"github.com/ntpmcp/ntpmcp/libs/log"
	mcpsync "github.com/ntpmcp/ntpmcp/libs/sync"
	"github.com/ntpmcp/ntpmcp/mcp"
	"github.com/ntpmcp/ntpmcp/mcp/core"
	"github.com/ntpmcp/ntpmcp/version"
)

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1024 * 1024 // 1MB

// Config is a server configuration.
type Config struct {
	// see netutil.LimitListener
	MaxOpenConnections int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxOpenConnections: 3,
	}
}

// ToolService answers the protocol methods the server exposes. core's
// Environment implements it.
type ToolService interface {
	// ServerInfo identifies the implementation in the initialize
	// handshake.
	ServerInfo() mcp.ServerInfo

	// Tools returns the tool definitions served over tools/list.
	Tools() []mcp.Tool

	// CallTool dispatches a tools/call by name.
	CallTool(ctx context.Context, name string) (string, error)
}

// Server reads requests line by line and answers them in order. One Server
// may serve several connections concurrently; each connection gets its own
// read loop.
type Server struct {
	logger log.Logger
	svc    ToolService
	config *Config
}

// New returns a Server exposing svc.
func New(logger log.Logger, svc ToolService, config *Config) *Server {
	return &Server{
		logger: logger,
		svc:    svc,
		config: config,
	}
}

// Serve answers requests read from r on w until r is exhausted or ctx is
// canceled. This is the stdio transport when called with os.Stdin and
// os.Stdout.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	var wmtx mcpsync.Mutex
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handleLine(ctx, line)
		if resp == nil {
			continue
		}
		if err := writeResponse(&wmtx, w, *resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Listen binds a TCP listener for addr, capped at maxOpenConnections
// simultaneous connections.
func Listen(addr string, maxOpenConnections int) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ErrListen{Addr: addr, Err: err}
	}
	if maxOpenConnections > 0 {
		ln = netutil.LimitListener(ln, maxOpenConnections)
	}
	return ln, nil
}

// ServeListener accepts connections from ln and serves each one until it
// closes. It returns when ctx is canceled or the listener fails.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	// unblock Accept on cancellation
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		s.logger.Info("accepted MCP connection", "remote", conn.RemoteAddr())

		go func(conn net.Conn) {
			defer conn.Close()
			// close mid-request when the context dies
			stop := context.AfterFunc(ctx, func() { conn.Close() })
			defer stop()

			if err := s.Serve(ctx, conn, conn); err != nil && ctx.Err() == nil {
				s.logger.Error("connection terminated", "remote", conn.RemoteAddr(), "err", err)
			}
		}(conn)
	}
}

// handleLine parses and dispatches one request line. A nil return means no
// response is written (notifications, aborted calls).
func (s *Server) handleLine(ctx context.Context, line []byte) (resp *mcp.RPCResponse) {
	var req mcp.RPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Error("failed to parse request", "err", err)
		r := mcp.RPCParseError(err)
		return &r
	}

	// a notification never receives a response, whatever happens
	if req.IsNotification() {
		s.logger.Debug("received notification", "method", req.Method)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in request handler",
				"method", req.Method, "panic", r, "stack", string(debug.Stack()))
			e := mcp.RPCInternalError(req.ID, ErrPanicked{Value: r})
			resp = &e
		}
	}()

	r := s.handleRequest(ctx, req)
	return &r
}

func (s *Server) handleRequest(ctx context.Context, req mcp.RPCRequest) mcp.RPCResponse {
	switch req.Method {
	case mcp.MethodInitialize:
		s.logger.Info("initialize", "client", string(req.Params))
		return mcp.NewRPCSuccessResponse(req.ID, mcp.InitializeResult{
			ProtocolVersion: version.MCPProtocol,
			Capabilities: mcp.ServerCapabilities{
				Tools: &mcp.ToolsCapability{},
			},
			ServerInfo: s.svc.ServerInfo(),
		})

	case mcp.MethodPing:
		return mcp.NewRPCSuccessResponse(req.ID, struct{}{})

	case mcp.MethodToolsList:
		return mcp.NewRPCSuccessResponse(req.ID, mcp.ToolsListResult{Tools: s.svc.Tools()})

	case mcp.MethodToolsCall:
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return mcp.RPCInvalidParamsError(req.ID, err)
		}

		text, err := s.svc.CallTool(ctx, params.Name)
		if err != nil {
			var unknown core.ErrUnknownTool
			switch {
			case errors.As(err, &unknown):
				return mcp.RPCInvalidParamsError(req.ID, err)
			default:
				return mcp.RPCInternalError(req.ID, err)
			}
		}
		return mcp.NewRPCSuccessResponse(req.ID, mcp.NewToolResult(text))

	default:
		return mcp.RPCMethodNotFoundError(req.ID)
	}
}

func writeResponse(mtx *mcpsync.Mutex, w io.Writer, resp mcp.RPCResponse) error {
	out, err := json.Marshal(resp)
	if err != nil {
		// responses are built from marshalable types only
		panic(err)
	}
	mtx.Lock()
	defer mtx.Unlock()
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
