package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AphilSantos/magic-portfolio/internal/index"
	"github.com/AphilSantos/magic-portfolio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command indexes the Markdown/MDX files under the content
directory, validates their front matter, and renders the full site into the
configured output directory. A single malformed document fails the build;
listings never include partial state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild()
	},
}

func runBuild() error {
	snapshot, err := index.BuildSite(appConfig.ContentDir)
	if err != nil {
		return fmt.Errorf("index content: %w", err)
	}

	gen, err := site.New(appConfig, snapshot, logger)
	if err != nil {
		return err
	}
	return gen.Run()
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
