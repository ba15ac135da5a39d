package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AphilSantos/magic-portfolio/internal/config"
	"github.com/AphilSantos/magic-portfolio/internal/content"
)

func setupCmdTest(t *testing.T) {
	t.Helper()
	prevConfig, prevLogger := appConfig, logger
	t.Cleanup(func() { appConfig, logger = prevConfig, prevLogger })

	appConfig = config.Config{
		ContentDir:   t.TempDir(),
		OutputDir:    filepath.Join(t.TempDir(), "public"),
		PostsPerPage: 10,
	}
	logger = zap.NewNop().Sugar()
}

func TestNewScaffoldsParsableDocument(t *testing.T) {
	setupCmdTest(t)

	require.NoError(t, newCmd.RunE(newCmd, []string{"posts", "my-first-post"}))

	path := filepath.Join(appConfig.ContentDir, "posts", "my-first-post.mdx")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	doc, err := content.Parse(content.Posts, raw)
	require.NoError(t, err)
	require.Equal(t, "My First Post", doc.Title)
	require.False(t, doc.PublishedAt.IsZero())
}

func TestNewRejectsExistingFile(t *testing.T) {
	setupCmdTest(t)

	require.NoError(t, newCmd.RunE(newCmd, []string{"projects", "case-study"}))
	err := newCmd.RunE(newCmd, []string{"projects", "case-study"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestNewRejectsUnknownCollection(t *testing.T) {
	setupCmdTest(t)

	err := newCmd.RunE(newCmd, []string{"pages", "about"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown collection")
}
