package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sysmlkit/pkg/engine"
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server exposing workspace analysis as tools.
type Server struct {
	mcpServer *server.MCPServer
	eng       *engine.Engine
	logger    *mcplog.Logger

	mu      sync.Mutex
	fileIDs map[string]ids.FileId
}

// NewServer creates a new MCP server backed by eng. logger may be nil,
// in which case tool calls aren't recorded.
func NewServer(eng *engine.Engine, logger *mcplog.Logger) *Server {
	s := &Server{eng: eng, logger: logger, fileIDs: make(map[string]ids.FileId)}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("sysmlkit", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: insertFileTool(), Handler: s.handleInsertFile},
		server.ServerTool{Tool: removeFileTool(), Handler: s.handleRemoveFile},
		server.ServerTool{Tool: hoverTool(), Handler: s.handleHover},
		server.ServerTool{Tool: gotoDefinitionTool(), Handler: s.handleGotoDefinition},
		server.ServerTool{Tool: findReferencesTool(), Handler: s.handleFindReferences},
		server.ServerTool{Tool: documentSymbolsTool(), Handler: s.handleDocumentSymbols},
		server.ServerTool{Tool: workspaceSymbolsTool(), Handler: s.handleWorkspaceSymbols},
		server.ServerTool{Tool: completionsTool(), Handler: s.handleCompletions},
		server.ServerTool{Tool: semanticTokensTool(), Handler: s.handleSemanticTokens},
		server.ServerTool{Tool: foldingRangesTool(), Handler: s.handleFoldingRanges},
		server.ServerTool{Tool: diagnosticsTool(), Handler: s.handleDiagnostics},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// jsonResult marshals v as the text content of a successful tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
