package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmlkit/pkg/db"
	"sysmlkit/pkg/engine"
)

func testServer() *Server {
	eng := engine.New(db.DefaultConfig())
	eng.SetStdlibActive(false)
	return NewServer(eng, nil)
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: toolName, Arguments: arguments},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

func insertFile(t *testing.T, s *Server, path, text string) {
	t.Helper()
	result, err := s.handleInsertFile(context.Background(), makeRequest("insert_file", map[string]any{
		"path": path, "text": text,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestHandleInsertFile_ReturnsSymbols(t *testing.T) {
	s := testServer()
	result, err := s.handleInsertFile(context.Background(), makeRequest("insert_file", map[string]any{
		"path": "car.sysml", "text": "part def Car;\n",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var body struct {
		Symbols []map[string]any `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &body))
	require.Len(t, body.Symbols, 1)
	assert.Equal(t, "Car", body.Symbols[0]["Name"])
}

func TestHandleHover_OnDefinitionName(t *testing.T) {
	s := testServer()
	insertFile(t, s, "car.sysml", "part def Car;\n")

	result, err := s.handleHover(context.Background(), makeRequest("hover", map[string]any{
		"path": "car.sysml", "offset": float64(9),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultJSON(t, result), "Car")
}

func TestHandleHover_UnknownFile(t *testing.T) {
	s := testServer()
	result, err := s.handleHover(context.Background(), makeRequest("hover", map[string]any{
		"path": "missing.sysml", "offset": float64(0),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleWorkspaceSymbols_FiltersBySubstring(t *testing.T) {
	s := testServer()
	insertFile(t, s, "car.sysml", "part def Car;\npart def Truck;\n")

	result, err := s.handleWorkspaceSymbols(context.Background(), makeRequest("workspace_symbols", map[string]any{
		"query": "Car",
	}))
	require.NoError(t, err)
	body := resultJSON(t, result)
	assert.Contains(t, body, "Car")
	assert.NotContains(t, body, "Truck")
}

func TestHandleDocumentSymbols_ListsEveryFileSymbol(t *testing.T) {
	s := testServer()
	insertFile(t, s, "car.sysml", "part def Car;\npart def Engine;\n")

	result, err := s.handleDocumentSymbols(context.Background(), makeRequest("document_symbols", map[string]any{
		"path": "car.sysml",
	}))
	require.NoError(t, err)
	var syms []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &syms))
	assert.Len(t, syms, 2)
}

func TestHandleRemoveFile_DropsItFromWorkspaceSymbols(t *testing.T) {
	s := testServer()
	insertFile(t, s, "car.sysml", "part def Car;\n")

	_, err := s.handleRemoveFile(context.Background(), makeRequest("remove_file", map[string]any{
		"path": "car.sysml",
	}))
	require.NoError(t, err)

	result, err := s.handleWorkspaceSymbols(context.Background(), makeRequest("workspace_symbols", map[string]any{
		"query": "Car",
	}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultJSON(t, result))
}

func TestHandleDiagnostics_SurfacesUnresolvedReference(t *testing.T) {
	s := testServer()
	insertFile(t, s, "car.sysml", "part def Car :> DoesNotExist;\n")

	result, err := s.handleDiagnostics(context.Background(), makeRequest("diagnostics", map[string]any{
		"path": "car.sysml",
	}))
	require.NoError(t, err)
	assert.NotEqual(t, "[]", resultJSON(t, result))
}
