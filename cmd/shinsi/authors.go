package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kerbaras/shinsi/pkg/app/components"
	"github.com/spf13/cobra"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Manage saved authors",
}

var authorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved authors alphabetically",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		authors, err := env.repo.Authors(cmd.Context())
		if err != nil {
			return err
		}
		if len(authors) == 0 {
			fmt.Println("No saved authors.")
			return nil
		}

		t := simpleTable("#", "Author", "Covers")
		for i, a := range authors {
			t.Row(strconv.Itoa(i+1), components.Truncate(a.Name, 48), strconv.Itoa(len(a.Covers)))
		}
		fmt.Println(t)
		return nil
	},
}

var authorsSaveCmd = &cobra.Command{
	Use:   "save [id]",
	Short: "Save the author of a gallery",
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

		return env.library.FavouriteAuthor(cmd.Context(), id)
	},
}

var authorsRemoveCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a saved author",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		return env.repo.DeleteAuthor(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	authorsCmd.AddCommand(authorsListCmd, authorsSaveCmd, authorsRemoveCmd)
	rootCmd.AddCommand(authorsCmd)
}
