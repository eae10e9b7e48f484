package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [gallery-url]",
	Short: "Add a gallery to your browsing history",
	Long:  "Fetch a gallery's metadata and page list and record it in the browsing history without downloading pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		fmt.Printf("🔍 Fetching %s...\n", args[0])
		d, err := env.library.Add(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✅ Added '%s' (ID: %d, %d pages)\n", d.Title, d.ID, len(d.Pages))
		fmt.Printf("💡 To download it, use: shinsi download %s\n", d.URL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
