package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves a single-page application build from a local
// directory. Unknown paths fall back to the index file so client-side
// routing keeps working after a page reload.
type FrontendHandler struct {
	dir   string
	index string
	fs    http.Handler
}

func NewFrontendHandler(dir string, index string) *FrontendHandler {
	return &FrontendHandler{
		dir:   dir,
		index: index,
		fs:    http.FileServer(http.Dir(dir)),
	}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, h.index))
		return
	}

	h.fs.ServeHTTP(w, r)
}
