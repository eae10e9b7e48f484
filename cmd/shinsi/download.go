package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download [gallery-url]",
	Short: "Download every page of a gallery",
	Long:  "Download the pages of a gallery into the download directory and add it to your downloads",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		epub, _ := cmd.Flags().GetBool("epub")
		output, _ := cmd.Flags().GetString("output")

		go func() {
			for progress := range env.library.Downloader().GetProgressChannel() {
				if progress.Status == "downloading" && progress.CurrentPage > 0 {
					fmt.Printf("\r  %d/%d pages", progress.CurrentPage, progress.TotalPages)
				}
			}
		}()

		fmt.Printf("📥 Downloading %s\n", args[0])
		d, err := env.library.Download(cmd.Context(), args[0])
		fmt.Println()
		if err != nil {
			return fmt.Errorf("download failed: %w", err)
		}

		fmt.Printf("✅ Downloaded '%s' (%d pages)\n", d.Title, len(d.Pages))

		if epub {
			path, err := env.library.Export(cmd.Context(), d.ID, output)
			if err != nil {
				return fmt.Errorf("EPUB generation failed: %w", err)
			}
			fmt.Printf("📖 EPUB created: %s\n", path)
		}
		return nil
	},
}

func init() {
	downloadCmd.Flags().Bool("epub", false, "Also export the gallery as an EPUB")
	downloadCmd.Flags().StringP("output", "o", exportDir(), "Directory for the EPUB file")

	rootCmd.AddCommand(downloadCmd)
}
