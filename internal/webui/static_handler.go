package webui

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// staticDir is where the deployment drops its landing pages and assets. The
// directory is optional; a missing directory just means every static request
// 404s.
const staticDir = "web"

var allowedStaticExtensions = map[string]bool{
	".html": true,
	".css":  true,
	".js":   true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
	".ico":  true,
}

// staticHandler serves a single whitelisted file from the static directory.
// The {file} path value is reduced to a bare file name before any filesystem
// access so a crafted path can never escape the directory.
func (webUI *WebUI) staticHandler(w http.ResponseWriter, r *http.Request) {
	fileName := filepath.Base(r.PathValue("file"))

	if !allowedStaticExtensions[strings.ToLower(filepath.Ext(fileName))] {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	if strings.Contains(fileName, "..") || strings.ContainsAny(fileName, `/\`) {
		http.Error(w, "Invalid file name", http.StatusBadRequest)
		return
	}

	root, err := filepath.Abs(staticDir)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	fullPath := filepath.Join(root, fileName)

	// filepath.Base already stripped separators; keep the containment
	// check anyway so a future refactor cannot silently reopen traversal.
	rel, err := filepath.Rel(root, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		slog.Warn("blocked static file request outside the static directory", "path", fullPath)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	stat, err := os.Stat(fullPath)
	if err != nil || stat.IsDir() {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, fullPath)
}
