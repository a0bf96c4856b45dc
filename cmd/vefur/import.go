package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vefstofa/vefur"
	"github.com/vefstofa/vefur/content"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import Markdown posts into the SQLite database",
	Long: `Import every published Markdown post in <dir> into the database used by
the admin editor. Posts with an existing id are overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		posts, err := content.NewDir(args[0]).ListPosts(cmd.Context())
		if err != nil {
			return err
		}
		store, err := vefur.NewStore(s.Site.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, p := range posts {
			if err := store.SavePost(cmd.Context(), p); err != nil {
				return fmt.Errorf("save %s: %w", p.ID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", p.ID)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d posts imported into %s\n", len(posts), s.Site.DatabasePath)
		return nil
	},
}
