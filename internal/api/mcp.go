package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/docask/internal/completion"
	"github.com/kalambet/docask/internal/extract"
	"github.com/kalambet/docask/internal/store"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store       *store.Store
	Completions Completer
	ExtractFile func(path string) (string, error) // optional; defaults to extract.TextFromFile
}

func (d MCPDeps) extractFile(path string) (string, error) {
	if d.ExtractFile != nil {
		return d.ExtractFile(path)
	}
	return extract.TextFromFile(path)
}

// NewMCPServer creates an MCP server mirroring the HTTP surface: documents
// go in, answers come out, all within this process's session store.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"docask",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("docask — upload PDF documents and ask questions about their contents."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("upload_document",
			mcp.WithDescription("Extract the text of a PDF on disk and store it for querying."),
			mcp.WithString("path", mcp.Description("Filesystem path to the PDF"), mcp.Required()),
		),
		mcpUploadDocument(deps),
	)

	s.AddTool(
		mcp.NewTool("query_document",
			mcp.WithDescription("Ask a question about a previously uploaded document."),
			mcp.WithString("id", mcp.Description("Identifier returned by upload_document or POST /upload"), mcp.Required()),
			mcp.WithString("question", mcp.Description("The question to answer"), mcp.Required()),
		),
		mcpQueryDocument(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"docs://uploaded",
			"Uploaded Documents",
			mcp.WithResourceDescription("Summaries of the documents stored in this process"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceUploaded(deps),
	)

	return s
}

func mcpUploadDocument(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := req.RequireString("path")
		if err != nil {
			return mcpError("path is required"), nil
		}

		text, err := deps.extractFile(path)
		if err != nil {
			return mcpError(fmt.Sprintf("extracting text: %v", err)), nil
		}

		id, err := deps.Store.Put(filepath.Base(path), text)
		if err != nil {
			return mcpError(fmt.Sprintf("storing document: %v", err)), nil
		}

		b, err := json.Marshal(UploadResponse{
			ID:          id,
			Filename:    filepath.Base(path),
			TextLength:  utf8.RuneCountInString(text),
			TextPreview: preview(text),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("marshaling result: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

func mcpQueryDocument(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		question, err := req.RequireString("question")
		if err != nil {
			return mcpError("question is required"), nil
		}

		doc, err := deps.Store.Get(id)
		if errors.Is(err, store.ErrNotFound) {
			return mcpError("invalid id or no document content found"), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("looking up document: %v", err)), nil
		}
		if doc.Text == "" {
			return mcpError("invalid id or no document content found"), nil
		}

		answer, err := deps.Completions.Ask(ctx, doc.Text, question, completion.SystemPromptChat)
		if err != nil {
			// Same in-band behavior as the HTTP query endpoint.
			answer = completion.ErrorText(err)
		}

		return mcpText(answer), nil
	}
}

func mcpResourceUploaded(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		docs, err := deps.Store.List()
		if err != nil {
			return nil, fmt.Errorf("listing documents: %w", err)
		}

		type docSummary struct {
			ID         string `json:"id"`
			Filename   string `json:"filename"`
			TextLength int    `json:"textLength"`
			UploadedAt string `json:"uploadedAt"`
		}

		summaries := make([]docSummary, len(docs))
		for i, d := range docs {
			summaries[i] = docSummary{
				ID:         d.ID,
				Filename:   d.Filename,
				TextLength: utf8.RuneCountInString(d.Text),
				UploadedAt: d.CreatedAt.Format(time.RFC3339),
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("marshaling summaries: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
