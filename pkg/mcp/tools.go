package mcp

import "github.com/mark3labs/mcp-go/mcp"

func insertFileTool() mcp.Tool {
	return mcp.NewTool("insert_file",
		mcp.WithDescription("Registers or replaces a file's text in the workspace, returning its symbols and diagnostics"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workspace-relative or absolute file path")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Full file contents")),
	)
}

func removeFileTool() mcp.Tool {
	return mcp.NewTool("remove_file",
		mcp.WithDescription("Drops a previously inserted file from the workspace"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path passed to a prior insert_file call")),
	)
}

func hoverTool() mcp.Tool {
	return mcp.NewTool("hover",
		mcp.WithDescription("Returns the symbol at a file offset along with its resolved relationships"),
		mcp.WithString("path", mcp.Required()),
		mcp.WithNumber("offset", mcp.Required(), mcp.Description("Byte offset into the file's text")),
	)
}

func gotoDefinitionTool() mcp.Tool {
	return mcp.NewTool("goto_definition",
		mcp.WithDescription("Resolves the reference at a file offset to its defining location(s)"),
		mcp.WithString("path", mcp.Required()),
		mcp.WithNumber("offset", mcp.Required()),
	)
}

func findReferencesTool() mcp.Tool {
	return mcp.NewTool("find_references",
		mcp.WithDescription("Finds every reference to the symbol at a file offset, across the workspace"),
		mcp.WithString("path", mcp.Required()),
		mcp.WithNumber("offset", mcp.Required()),
	)
}

func documentSymbolsTool() mcp.Tool {
	return mcp.NewTool("document_symbols",
		mcp.WithDescription("Lists every symbol declared in one file"),
		mcp.WithString("path", mcp.Required()),
	)
}

func workspaceSymbolsTool() mcp.Tool {
	return mcp.NewTool("workspace_symbols",
		mcp.WithDescription("Searches symbol names across the whole workspace"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to match against simple symbol names")),
	)
}

func completionsTool() mcp.Tool {
	return mcp.NewTool("completions",
		mcp.WithDescription("Lists completion candidates visible from a file offset"),
		mcp.WithString("path", mcp.Required()),
		mcp.WithNumber("offset", mcp.Required()),
	)
}

func semanticTokensTool() mcp.Tool {
	return mcp.NewTool("semantic_tokens",
		mcp.WithDescription("Returns semantic highlighting tokens for one file"),
		mcp.WithString("path", mcp.Required()),
	)
}

func foldingRangesTool() mcp.Tool {
	return mcp.NewTool("folding_ranges",
		mcp.WithDescription("Returns foldable ranges for one file"),
		mcp.WithString("path", mcp.Required()),
	)
}

func diagnosticsTool() mcp.Tool {
	return mcp.NewTool("diagnostics",
		mcp.WithDescription("Returns analysis diagnostics for one file"),
		mcp.WithString("path", mcp.Required()),
	)
}
