package cmd

import (
	"fmt"

	"github.com/kerbaras/shinsi/pkg/config"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change display preferences",
	Long:  "Show the list display preferences, or change them with --hide-tag and --hide-title",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := cfg.PreferencesPath()

		prefs, err := config.LoadPreferences(path)
		if err != nil {
			return err
		}

		changed := false
		if cmd.Flags().Changed("hide-tag") {
			prefs.HideTag, _ = cmd.Flags().GetBool("hide-tag")
			changed = true
		}
		if cmd.Flags().Changed("hide-title") {
			prefs.HideTitle, _ = cmd.Flags().GetBool("hide-title")
			changed = true
		}
		if changed {
			if err := config.SavePreferences(path, prefs); err != nil {
				return err
			}
		}

		fmt.Printf("hide_tag:   %t\nhide_title: %t\n", prefs.HideTag, prefs.HideTitle)
		return nil
	},
}

func init() {
	prefsCmd.Flags().Bool("hide-tag", false, "Hide rating, category, convention and language badges")
	prefsCmd.Flags().Bool("hide-title", false, "Hide titles in lists")

	rootCmd.AddCommand(prefsCmd)
}
