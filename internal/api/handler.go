// Package api exposes the document Q&A operations over HTTP and MCP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/docask/internal/completion"
	"github.com/kalambet/docask/internal/extract"
	"github.com/kalambet/docask/internal/store"
)

const maxUploadBodySize = 10 << 20 // 10MB
const maxQueryBodySize = 1 << 20   // 1MB

// previewChars is how much cleaned text the upload response echoes back.
const previewChars = 500

// allowedExtensions is the case-insensitive upload allowlist.
var allowedExtensions = map[string]bool{".pdf": true}

// Completer abstracts the completion client for the API layer.
type Completer interface {
	Ask(ctx context.Context, contextText, question, systemPrompt string) (string, error)
}

// AppDeps holds dependencies for the HTTP handlers.
type AppDeps struct {
	Store       *store.Store
	Completions Completer
	Extract     func(r io.ReaderAt, size int64) (string, error) // optional; defaults to extract.Text
}

func (d AppDeps) extractText(r io.ReaderAt, size int64) (string, error) {
	if d.Extract != nil {
		return d.Extract(r, size)
	}
	return extract.Text(r, size)
}

// UploadResponse describes a stored document.
type UploadResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	TextLength  int    `json:"textLength"`
	TextPreview string `json:"textPreview"`
}

// QueryRequest asks a question about a previously uploaded document.
// Pointer fields distinguish an absent key from an empty value: only
// absence is rejected, an empty prompt still reaches the model.
type QueryRequest struct {
	FileID *string `json:"fileId"`
	Prompt *string `json:"prompt"`
}

// QueryResponse carries the model's answer, or an in-band error string in
// its place. Completion failures do not change the HTTP status.
type QueryResponse struct {
	FileID   string `json:"fileId"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// NewHandler returns the HTTP surface: upload, query, healthcheck.
func NewHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Post("/upload", handleUpload(deps))
	r.Post("/query", handleQuery(deps))
	r.Get("/healthcheck", handleHealthcheck)

	return r
}

func handleUpload(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)
		defer r.Body.Close()

		file, header, err := r.FormFile("file")
		if err != nil {
			httpError(w, http.StatusBadRequest, "no file part in the request")
			return
		}
		defer file.Close()

		if header.Filename == "" {
			httpError(w, http.StatusBadRequest, "no file selected")
			return
		}
		if !allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
			httpError(w, http.StatusBadRequest, "file type not allowed")
			return
		}

		// The file stays in memory; nothing touches the filesystem.
		data, err := io.ReadAll(file)
		if err != nil {
			httpError(w, http.StatusBadRequest, "reading file: %v", err)
			return
		}

		text, err := deps.extractText(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			httpError(w, http.StatusBadRequest, "extracting text: %v", err)
			return
		}

		id, err := deps.Store.Put(header.Filename, text)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "storing document: %v", err)
			return
		}

		slog.Info("document uploaded", "id", id, "filename", header.Filename, "text_length", utf8.RuneCountInString(text))

		writeJSON(w, UploadResponse{
			ID:          id,
			Filename:    header.Filename,
			TextLength:  utf8.RuneCountInString(text),
			TextPreview: preview(text),
		})
	}
}

func handleQuery(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodySize)
		defer r.Body.Close()

		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		if req.FileID == nil || req.Prompt == nil {
			httpError(w, http.StatusBadRequest, "fileId and prompt are required")
			return
		}
		fileID, prompt := *req.FileID, *req.Prompt

		doc, err := deps.Store.Get(fileID)
		if errors.Is(err, store.ErrNotFound) {
			httpError(w, http.StatusBadRequest, "invalid fileId or no document content found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "looking up document: %v", err)
			return
		}
		if doc.Text == "" {
			httpError(w, http.StatusBadRequest, "invalid fileId or no document content found")
			return
		}

		answer, err := deps.Completions.Ask(r.Context(), doc.Text, prompt, completion.SystemPromptChat)
		if err != nil {
			// The failure travels in-band as the response text; the HTTP
			// status stays 200. Callers rely on this.
			slog.Warn("completion call failed", "file_id", fileID, "error", err)
			answer = completion.ErrorText(err)
		}

		writeJSON(w, QueryResponse{
			FileID:   fileID,
			Prompt:   prompt,
			Response: answer,
		})
	}
}

func handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// preview returns the first previewChars characters of text, with an
// ellipsis marker only when something was cut off.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewChars {
		return text
	}
	return string(runes[:previewChars]) + "..."
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf(format, args...)})
}
