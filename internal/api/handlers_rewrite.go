package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

type rewriteResponse struct {
	Name    string         `json:"name"`
	Changed bool           `json:"changed"`
	Content string         `json:"content"`
	Edits   map[string]int `json:"edits"`
}

// handleRewrite accepts a document either as a multipart "file" field or as
// the raw request body with its file name in ?name=.
func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	var (
		name string
		body io.Reader
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		name, body = header.Filename, file
	} else {
		name, body = r.URL.Query().Get("name"), r.Body
		if name == "" {
			jsonError(w, "name is required", http.StatusBadRequest)
			return
		}
	}

	name = sanitizeFilename(name)
	if !s.opts.Matches(name) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(name)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	res := s.rewriter.Rewrite(name, string(data))
	s.log.Info("rewrote document", "name", name, "changed", res.Changed, "edits", res.Edits)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rewriteResponse{
		Name:    name,
		Changed: res.Changed,
		Content: res.Text,
		Edits:   res.Edits,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
