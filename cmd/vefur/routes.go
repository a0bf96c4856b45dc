package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vefstofa/vefur"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the static routes with their canonical URLs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog := vefur.DefaultCatalog()
		if err := catalog.Validate(); err != nil {
			return err
		}
		meta := vefur.NewMetadataEmitter(withDefaults(s.Site), catalog)

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PATH\tCANONICAL\tTITLE")
		for _, r := range catalog {
			m, err := meta.MetadataFor(r.Path)
			if err != nil {
				return err
			}
			path := r.Path
			if path == vefur.RouteHome {
				path = "/"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", path, m.CanonicalURL, m.Title)
		}
		return tw.Flush()
	},
}
