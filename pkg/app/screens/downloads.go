package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/shinsi/pkg/app/components"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/data"
)

type DownloadsScreen struct {
	deps   *Deps
	list   *components.ItemList
	width  int
	height int
	status string
	err    error
}

func NewDownloadsScreen(deps *Deps) *DownloadsScreen {
	return &DownloadsScreen{
		deps: deps,
		list: components.NewItemList("No downloads yet"),
	}
}

func (s *DownloadsScreen) Init() tea.Cmd {
	return s.load
}

func (s *DownloadsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			return s, s.load
		case "d":
			if selected := s.list.Selected(); selected != nil {
				return s, s.delete(selected.ID)
			}
		case "e":
			if selected := s.list.Selected(); selected != nil {
				return s, s.export(selected.ID)
			}
		case "a":
			if selected := s.list.Selected(); selected != nil {
				return s, favouriteAuthor(s.deps, selected.ID)
			}
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				return s, openReader(selected)
			}
		}

	case downloadsLoadedMsg:
		s.list.SetItems(msg.items)
		s.err = msg.err

	case exportedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Exported to %s", msg.path)
		}

	case deletedMsg:
		s.err = msg.err
		return s, s.load

	case authorSavedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Saved author %s", msg.name)
		}

	case downloadFinishedMsg:
		return s, s.load
	}

	return s, nil
}

func (s *DownloadsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Downloads")

	var statusMsg string
	if s.err != nil {
		statusMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	} else if s.status != "" {
		statusMsg = styles.StatusCompleted.Render(s.status) + "\n\n"
	}

	s.list.Prefs = *s.deps.Prefs
	listView := s.list.View()

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: read • e: export EPUB • a: save author • d: delete • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, statusMsg, listView, help)
}

type downloadsLoadedMsg struct {
	items []*data.Doujinshi
	err   error
}

type exportedMsg struct {
	path string
	err  error
}

type deletedMsg struct {
	err error
}

func (s *DownloadsScreen) load() tea.Msg {
	items, err := s.deps.Repo.Downloaded(context.Background())
	return downloadsLoadedMsg{items: items, err: err}
}

func (s *DownloadsScreen) export(id int64) tea.Cmd {
	return func() tea.Msg {
		path, err := s.deps.Library.Export(context.Background(), id, s.deps.ExportDir)
		return exportedMsg{path: path, err: err}
	}
}

func (s *DownloadsScreen) delete(id int64) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: s.deps.Library.Delete(context.Background(), id)}
	}
}
