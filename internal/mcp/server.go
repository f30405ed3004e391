// Package mcp exposes the tool dispatcher as a Model Context Protocol server.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"keynote-mcp/internal/logger"
	"keynote-mcp/internal/tool"
)

const instructions = `Automates Apple Keynote on this Mac.
Slide numbers are 1-based. Omit doc_name to target the front presentation.
Coordinates are in points from the top-left corner of the slide.`

// Options configures a Server
type Options struct {
	Name    string
	Version string
	Logger  *logger.Logger
}

// Server serves every registered tool over MCP
type Server struct {
	server     *mcp.Server
	dispatcher *tool.Dispatcher
	logger     *logger.Logger
}

// NewServer registers the dispatcher's tools, in registration order, on a
// new MCP server
func NewServer(dispatcher *tool.Dispatcher, opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "keynote-mcp"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    opts.Name,
			Version: opts.Version,
		}, &mcp.ServerOptions{Instructions: instructions}),
		dispatcher: dispatcher,
		logger:     log,
	}
	for _, d := range dispatcher.ListTools() {
		s.server.AddTool(&mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}, s.handler(d.Name))
	}
	s.server.AddReceivingMiddleware(s.unknownTools)
	return s
}

// unknownTools answers calls to unregistered tools with a failure result
// instead of the SDK's protocol error
func (s *Server) unknownTools(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method == "tools/call" {
			if r, ok := req.(*mcp.CallToolRequest); ok && !s.dispatcher.Registry().Has(r.Params.Name) {
				return toCallResult(s.dispatcher.CallTool(ctx, r.Params.Name, nil)), nil
			}
		}
		return next(ctx, method, req)
	}
}

// handler adapts one tool to the SDK. Tool failures are results with
// IsError set, never protocol errors.
func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return toCallResult(tool.Failure(err)), nil
		}
		return toCallResult(s.dispatcher.CallTool(ctx, name, args)), nil
	}
}

// Run serves on transport until ctx is done or the peer disconnects
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("MCP server started with %d tools", len(s.dispatcher.ListTools()))
	if err := s.server.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	s.logger.Info("MCP server stopped")
	return nil
}

// RunStdio serves on stdin and stdout
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Connect starts a session on transport without blocking
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}
