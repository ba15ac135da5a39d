package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSiteHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts", "existing-post"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "existing-post", "index.html"), []byte("<h1>hi</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>home</h1>"), 0o644))

	handler := siteHandler(dir)

	tests := map[string]struct {
		path string
		code int
	}{
		"home":             {"/", http.StatusOK},
		"existing detail":  {"/posts/existing-post/", http.StatusOK},
		"missing detail":   {"/posts/nonexistent-slug/", http.StatusNotFound},
		"missing listing":  {"/projects/", http.StatusNotFound},
		"missing document": {"/projects/nonexistent-slug/", http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.Equal(t, tc.code, rec.Code)

			if tc.code == http.StatusOK {
				require.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
			}
		})
	}
}
