package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/token"
)

func stringArg(req mcp.CallToolRequest, name string) (string, error) {
	v, ok := req.GetArguments()[name]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", name)
	}
	return s, nil
}

func offsetArg(req mcp.CallToolRequest) (uint32, error) {
	v, ok := req.GetArguments()["offset"]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", "offset")
	}
	n, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q must be a number", "offset")
	}
	return uint32(n), nil
}

// fileArg resolves a "path" argument to the FileId the server previously
// assigned it via insert_file. MCP tool calls are stateless from the
// client's point of view, so the server keeps its own path->FileId
// table rather than asking the caller to track engine-internal ids.
func (s *Server) fileArg(req mcp.CallToolRequest) (ids.FileId, error) {
	path, err := stringArg(req, "path")
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	file, ok := s.fileIDs[path]
	s.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("unknown file %q: call insert_file first", path)
	}
	return file, nil
}

func (s *Server) handleInsertFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := stringArg(req, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := stringArg(req, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dialect := token.DialectSysML
	if hasSuffix(path, ".kerml") {
		dialect = token.DialectKerML
	}

	s.mu.Lock()
	file, exists := s.fileIDs[path]
	if !exists {
		file = s.eng.InsertFile(path, text, dialect)
		s.fileIDs[path] = file
	} else {
		s.eng.SetText(file, text)
	}
	s.mu.Unlock()

	snap := s.eng.Snapshot()
	return jsonResult(map[string]any{
		"symbols":      snap.Symbols(file),
		"diagnostics":  snap.Diagnostics(file),
		"parse_errors": snap.ParseErrors(file),
	})
}

func (s *Server) handleRemoveFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := stringArg(req, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.mu.Lock()
	file, ok := s.fileIDs[path]
	delete(s.fileIDs, path)
	s.mu.Unlock()
	if ok {
		s.eng.RemoveFile(file)
	}
	return mcp.NewToolResultText("ok"), nil
}

func (s *Server) handleHover(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	offset, err := offsetArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hover, ok := s.eng.Snapshot().Hover(file, offset)
	if !ok {
		return mcp.NewToolResultText("null"), nil
	}
	return jsonResult(hover)
}

func (s *Server) handleGotoDefinition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	offset, err := offsetArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().GotoDefinition(file, offset))
}

func (s *Server) handleFindReferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	offset, err := offsetArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().FindReferences(file, offset))
}

func (s *Server) handleDocumentSymbols(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().DocumentSymbols(file))
}

func (s *Server) handleWorkspaceSymbols(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := stringArg(req, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().WorkspaceSymbols(query))
}

func (s *Server) handleCompletions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	offset, err := offsetArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().Completions(file, offset))
}

func (s *Server) handleSemanticTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().SemanticTokens(file))
}

func (s *Server) handleFoldingRanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().FoldingRanges(file))
}

func (s *Server) handleDiagnostics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := s.fileArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.eng.Snapshot().Diagnostics(file))
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
