package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AphilSantos/magic-portfolio/internal/content"
	"github.com/AphilSantos/magic-portfolio/internal/index"
)

var listMatch string

var listCmd = &cobra.Command{
	Use:   "list [posts|projects]",
	Short: "Lists indexed documents, most recent first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collections := content.Collections
		if len(args) == 1 {
			c := content.Collection(args[0])
			if !c.Valid() {
				return fmt.Errorf("unknown collection %q, want posts or projects", args[0])
			}
			collections = []content.Collection{c}
		}

		for _, c := range collections {
			ix, err := index.Build(appConfig.ContentDir, c)
			if err != nil {
				return err
			}

			docs := ix.Documents()
			if listMatch != "" {
				docs = ix.Search(listMatch)
			}

			fmt.Printf("%s (%d)\n", c, len(docs))
			for _, doc := range docs {
				line := fmt.Sprintf("  %s  %-30s  %s", doc.PublishedAt.Format("2006-01-02"), doc.Slug, doc.Title)
				if doc.Tag != "" {
					line += fmt.Sprintf("  [%s]", doc.Tag)
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listMatch, "match", "", "fuzzy-filter documents by title and summary")
	rootCmd.AddCommand(listCmd)
}
