package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [id]",
	Short: "Refresh a stored gallery's rating, category and page count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := env.library.Refresh(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("🔄 Refreshed '%s' (%s, ⭐️%.2f, %d pages)\n",
			d.Title, d.GData.Category, d.GData.Rating, d.GData.FileCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
