package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vefstofa/vefur"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Write sitemap.xml",
	Long: `Write the sitemap the server would publish at /sitemap.xml, for static
hosting or to check it before deploying.`,
	Args: cobra.NoArgs,
	RunE: runSitemap,
}

func init() {
	sitemapCmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
}

func runSitemap(cmd *cobra.Command, args []string) error {
	s, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, _, err := newApp(s)
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.Open(); err != nil {
		return err
	}

	entries, err := app.Sitemap.BuildSitemap(cmd.Context())
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "-" {
		return vefur.WriteSitemapXML(cmd.OutOrStdout(), entries)
	}
	if err := writeFile(out, func(w io.Writer) error { return vefur.WriteSitemapXML(w, entries) }); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d URLs to %s\n", len(entries), out)
	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
