package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/shinsi/pkg/app/components"
	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/spf13/cobra"
)

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "List downloaded galleries",
	Long:  "Display every downloaded gallery, newest first, in a formatted table",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		items, err := env.repo.Downloaded(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("📚 No downloads yet. Use 'shinsi download' to fetch a gallery.")
			return nil
		}

		fmt.Printf("\n📚 Downloads (%d)\n\n", len(items))
		fmt.Println(itemTable(items, func(d *data.Doujinshi) string {
			return d.Date.Local().Format("2006-01-02 15:04")
		}))
		return nil
	},
}

var browsedCmd = &cobra.Command{
	Use:   "browsed",
	Short: "List recently browsed galleries",
	Long:  "Display the most recently browsed galleries with the last page read",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		items, err := env.repo.BrowsedDoujinshi(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("📚 Nothing browsed yet.")
			return nil
		}

		fmt.Printf("\n🕘 Recently browsed (%d)\n\n", len(items))
		fmt.Println(itemTable(items, func(d *data.Doujinshi) string {
			h, err := env.repo.BrowsingHistory(cmd.Context(), d.ID)
			if err != nil || h == nil {
				return ""
			}
			return fmt.Sprintf("page %d", h.CurrentPage+1)
		}))
		return nil
	},
}

func itemTable(items []*data.Doujinshi, extra func(*data.Doujinshi) string) string {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Title", Width: 50},
		{Title: "Category", Width: 12},
		{Title: "Pages", Width: 6},
		{Title: "", Width: 16},
	}

	rows := []table.Row{}
	for _, d := range items {
		category := ""
		if d.GData != nil {
			category = d.GData.Category
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(d.ID, 10),
			components.Truncate(d.Title, 48),
			category,
			strconv.Itoa(len(d.Pages)),
			extra(d),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t.View()
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
	rootCmd.AddCommand(browsedCmd)
}
