package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves files from the public directory. It is mounted as
// the router's fallback, so explicit routes always take precedence.
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// ServeHTTP serves the file named by the request path, or replies 404.
// Only GET and HEAD are served; directories are never listed.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	// Sanitize: clean the path and ensure it doesn't escape the public dir.
	cleaned := filepath.Clean("/" + r.URL.Path)
	fullPath := filepath.Join(h.dir, filepath.FromSlash(cleaned))

	absDir, _ := filepath.Abs(h.dir)
	absFile, _ := filepath.Abs(fullPath)
	if absFile != absDir && !strings.HasPrefix(absFile, absDir+string(filepath.Separator)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
