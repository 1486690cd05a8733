package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// handleDownload serves a previously produced transcript file by name.
// Only plain file names inside the output directory are reachable.
func (s *implServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !safeDownloadName(name) {
		s.writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}

	path := filepath.Join(s.cfg.Paths.Output, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

// safeDownloadName rejects anything that could escape the output
// directory.
func safeDownloadName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}
