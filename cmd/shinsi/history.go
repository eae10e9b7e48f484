package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/shinsi/pkg/app/components"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recent searches",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		items, err := env.repo.SearchHistory(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No recent searches.")
			return nil
		}

		t := simpleTable("Search", "Date")
		for _, h := range items {
			t.Row(components.Truncate(h.Text, 58), h.Date.Local().Format("2006-01-02 15:04"))
		}
		fmt.Println(t)
		return nil
	},
}

var historySaveCmd = &cobra.Command{
	Use:   "save [text]",
	Short: "Record a search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		return env.repo.SaveSearchHistory(cmd.Context(), strings.Join(args, " "))
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "rm [text]",
	Short: "Remove one search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		return env.repo.DeleteSearchHistory(cmd.Context(), strings.Join(args, " "))
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every search",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.repo.DeleteAllSearchHistory(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("🧹 Search history cleared")
		return nil
	},
}

func simpleTable(headers ...string) *table.Table {
	var (
		purple = lipgloss.Color("99")

		headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func init() {
	historyCmd.AddCommand(historyListCmd, historySaveCmd, historyRemoveCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
