// Command vefur runs the agency website and its build-time tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// configFile is set by the --config flag.
var configFile string

var rootCmd = &cobra.Command{
	Use:   "vefur",
	Short: "Marketing site for web design, SEO and advertising services",
	Long: `vefur serves the agency website: the static service pages, the blog,
/sitemap.xml and the admin editor. The same route catalog drives pages,
metadata and the sitemap, so the build-time commands print exactly what
the server publishes.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./vefur.yaml)")
	rootCmd.PersistentFlags().String("url", "", "base URL of the site, without trailing slash")
	rootCmd.PersistentFlags().String("content-dir", "", "read blog posts from Markdown files in this directory instead of SQLite")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sitemapCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vefur %s\n", version)
	},
}
