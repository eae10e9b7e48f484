package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a downloaded gallery as an EPUB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		output, _ := cmd.Flags().GetString("output")

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		path, err := env.library.Export(cmd.Context(), id, output)
		if err != nil {
			return err
		}
		fmt.Printf("📖 EPUB created: %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", exportDir(), "Directory for the EPUB file")

	rootCmd.AddCommand(exportCmd)
}
