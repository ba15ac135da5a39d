package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/AphilSantos/magic-portfolio/internal/content"
)

type scaffoldFrontMatter struct {
	Title       string `yaml:"title"`
	Summary     string `yaml:"summary"`
	PublishedAt string `yaml:"publishedAt"`
	Tag         string `yaml:"tag,omitempty"`
}

var newCmd = &cobra.Command{
	Use:   "new {posts|projects} <slug>",
	Short: "Scaffolds a new content file with front matter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := content.Collection(args[0])
		if !collection.Valid() {
			return fmt.Errorf("unknown collection %q, want posts or projects", args[0])
		}
		slug := strings.TrimSpace(args[1])
		if slug == "" {
			return fmt.Errorf("slug must not be empty")
		}

		path := filepath.Join(appConfig.ContentDir, string(collection), slug+".mdx")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		titleCaser := cases.Title(language.English)
		fm := scaffoldFrontMatter{
			Title:       titleCaser.String(strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")),
			Summary:     "TODO: write a summary",
			PublishedAt: time.Now().Format("2006-01-02"),
		}

		header, err := yaml.Marshal(fm)
		if err != nil {
			return fmt.Errorf("marshal front matter: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
		}
		body := fmt.Sprintf("---\n%s---\n\nWrite here.\n", header)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		logger.Infow("content file created", "path", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
