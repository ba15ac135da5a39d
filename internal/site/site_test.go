package site_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AphilSantos/magic-portfolio/internal/config"
	"github.com/AphilSantos/magic-portfolio/internal/content"
	"github.com/AphilSantos/magic-portfolio/internal/index"
	"github.com/AphilSantos/magic-portfolio/internal/site"
)

func writeDoc(t *testing.T, root string, c content.Collection, slug, title, date, tag string) {
	t.Helper()
	dir := filepath.Join(root, string(c))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	raw := fmt.Sprintf("---\ntitle: %s\nsummary: Summary of %s.\npublishedAt: %q\n", title, slug, date)
	if tag != "" {
		raw += fmt.Sprintf("tag: %s\n", tag)
	}
	raw += "---\n\n# Heading\n\nBody of " + slug + " with **bold** text.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".mdx"), []byte(raw), 0o644))
}

func testConfig(t *testing.T, contentDir string) config.Config {
	t.Helper()
	cfg := config.Config{
		SiteTitle:       "Test Portfolio",
		SiteDescription: "A test site.",
		Author:          "Test Author",
		BaseURL:         "https://example.com",
		ContentDir:      contentDir,
		OutputDir:       filepath.Join(t.TempDir(), "public"),
		PostsPerPage:    2,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func generate(t *testing.T, cfg config.Config) {
	t.Helper()
	snapshot, err := index.BuildSite(cfg.ContentDir)
	require.NoError(t, err)

	gen, err := site.New(cfg, snapshot, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, gen.Run())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err, path)
	return string(raw)
}

func fixture(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	writeDoc(t, root, content.Posts, "older-post", "Older Post", "2024-06-30", "laravel")
	writeDoc(t, root, content.Posts, "newer-post", "Newer Post", "2024-12-15", "shopify")
	writeDoc(t, root, content.Posts, "middle-post", "Middle Post", "2024-09-01", "shopify")
	writeDoc(t, root, content.Projects, "storefront", "Storefront Rebuild", "2025-01-10", "")
	return testConfig(t, root)
}

func TestGenerateDetailPages(t *testing.T) {
	cfg := fixture(t)
	generate(t, cfg)

	post := readFile(t, filepath.Join(cfg.OutputDir, "posts", "newer-post", "index.html"))
	require.Contains(t, post, "Newer Post")
	require.Contains(t, post, "<strong>bold</strong>")
	require.Contains(t, post, "2024-12-15")

	project := readFile(t, filepath.Join(cfg.OutputDir, "projects", "storefront", "index.html"))
	require.Contains(t, project, "Storefront Rebuild")
}

func TestGenerateListingOrderAndPagination(t *testing.T) {
	cfg := fixture(t)
	generate(t, cfg)

	// postsPerPage is 2: newest two on page one, the rest on page two.
	page1 := readFile(t, filepath.Join(cfg.OutputDir, "posts", "index.html"))
	require.Contains(t, page1, "Newer Post")
	require.Contains(t, page1, "Middle Post")
	require.NotContains(t, page1, "Older Post")
	require.Less(t, strings.Index(page1, "Newer Post"), strings.Index(page1, "Middle Post"))
	require.Contains(t, page1, "/posts/page/2/")

	page2 := readFile(t, filepath.Join(cfg.OutputDir, "posts", "page", "2", "index.html"))
	require.Contains(t, page2, "Older Post")
	require.NotContains(t, page2, "Newer Post")
}

func TestGenerateTagPages(t *testing.T) {
	cfg := fixture(t)
	generate(t, cfg)

	shopify := readFile(t, filepath.Join(cfg.OutputDir, "posts", "tag", "shopify", "index.html"))
	require.Contains(t, shopify, "Newer Post")
	require.Contains(t, shopify, "Middle Post")
	require.NotContains(t, shopify, "Older Post")

	laravel := readFile(t, filepath.Join(cfg.OutputDir, "posts", "tag", "laravel", "index.html"))
	require.Contains(t, laravel, "Older Post")
}

func TestGenerateHome(t *testing.T) {
	cfg := fixture(t)
	generate(t, cfg)

	home := readFile(t, filepath.Join(cfg.OutputDir, "index.html"))
	require.Contains(t, home, "Test Portfolio")
	require.Contains(t, home, "Newer Post")
	require.Contains(t, home, "Storefront Rebuild")
}

func TestGenerateFeed(t *testing.T) {
	cfg := fixture(t)
	generate(t, cfg)

	feed := readFile(t, filepath.Join(cfg.OutputDir, "feed.xml"))
	require.Contains(t, feed, "<rss")
	require.Contains(t, feed, "<title>Newer Post</title>")
	require.Contains(t, feed, "https://example.com/posts/newer-post/")
	// Descriptions are stripped of markup.
	require.NotContains(t, feed, "<strong>")
	require.Contains(t, feed, "bold")
}

func TestGenerateSitemap(t *testing.T) {
	cfg := fixture(t)
	generate(t, cfg)

	sitemap := readFile(t, filepath.Join(cfg.OutputDir, "sitemap.xml"))
	require.Contains(t, sitemap, "<loc>https://example.com/</loc>")
	require.Contains(t, sitemap, "<loc>https://example.com/posts/</loc>")
	require.Contains(t, sitemap, "<loc>https://example.com/posts/page/2/</loc>")
	require.Contains(t, sitemap, "<loc>https://example.com/posts/tag/shopify/</loc>")
	require.Contains(t, sitemap, "<loc>https://example.com/posts/newer-post/</loc>")
	require.Contains(t, sitemap, "<loc>https://example.com/projects/storefront/</loc>")
}

func TestGenerateCopiesStaticAssets(t *testing.T) {
	cfg := fixture(t)
	staticDir := filepath.Join(t.TempDir(), "static")
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "css", "site.css"), []byte("body{}"), 0o644))
	cfg.StaticDir = staticDir

	generate(t, cfg)
	require.Equal(t, "body{}", readFile(t, filepath.Join(cfg.OutputDir, "css", "site.css")))
}

func TestGenerateLayoutOverride(t *testing.T) {
	cfg := fixture(t)
	layoutsDir := filepath.Join(t.TempDir(), "layouts")
	require.NoError(t, os.MkdirAll(layoutsDir, 0o755))
	override := `{{ template "header.html" . }}<p id="custom-home">custom</p>{{ template "footer.html" . }}`
	require.NoError(t, os.WriteFile(filepath.Join(layoutsDir, "home.html"), []byte(override), 0o644))
	cfg.LayoutsDir = layoutsDir

	generate(t, cfg)
	home := readFile(t, filepath.Join(cfg.OutputDir, "index.html"))
	require.Contains(t, home, "custom-home")
	// Default partials still apply around the override.
	require.Contains(t, home, "Test Portfolio")
}

func TestGenerateIsReproducible(t *testing.T) {
	cfg := fixture(t)
	generate(t, cfg)
	first := readFile(t, filepath.Join(cfg.OutputDir, "posts", "index.html"))

	generate(t, cfg)
	second := readFile(t, filepath.Join(cfg.OutputDir, "posts", "index.html"))
	require.Equal(t, first, second)
}
