package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vefstofa/vefur"
	"github.com/vefstofa/vefur/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create vefur.yaml, a content directory and a sample post",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		name, _ := cmd.Flags().GetString("name")
		site, _ := cmd.Flags().GetString("url")
		if site == "" {
			site = "http://localhost:3000"
		}

		created, err := scaffold.Write(dir, scaffold.Data{
			SiteName: name,
			URL:      vefur.NormalizeBaseURL(site),
			Date:     time.Now().Format("2006-01-02"),
		})
		for _, path := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", path)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nSet admin.password in vefur.yaml (or VEFUR_ADMIN_PASSWORD), then run 'vefur serve'.")
		return nil
	},
}

func init() {
	initCmd.Flags().String("name", "Vefstofa", "site name")
}
