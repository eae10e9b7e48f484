package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/shinsi/pkg/app/components"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/data"
)

// HistoryScreen lists recently browsed items.
type HistoryScreen struct {
	deps   *Deps
	list   *components.ItemList
	width  int
	height int
	status string
	err    error
}

func NewHistoryScreen(deps *Deps) *HistoryScreen {
	return &HistoryScreen{
		deps: deps,
		list: components.NewItemList("Nothing browsed yet"),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "x":
			if selected := s.list.Selected(); selected != nil {
				return s, s.forget(selected.ID)
			}
		case "D":
			if selected := s.list.Selected(); selected != nil {
				s.status = fmt.Sprintf("Downloading %s...", selected.Title)
				return s, startDownload(s.deps, selected.URL)
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

	case historyLoadedMsg:
		s.list.SetItems(msg.items)
		s.err = msg.err

	case historyForgottenMsg:
		s.err = msg.err
		return s, s.load

	case downloadFinishedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Downloaded %s", msg.item.Title)
		} else {
			s.status = ""
		}
		return s, s.load

	case authorSavedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Saved author %s", msg.name)
		}
	}

	return s, nil
}

func (s *HistoryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("History")

	var statusMsg string
	if s.err != nil {
		statusMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	} else if s.status != "" {
		statusMsg = styles.StatusDownloading.Render(s.status) + "\n\n"
	}

	s.list.Prefs = *s.deps.Prefs
	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: read • D: download • a: save author • x: forget • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, statusMsg, s.list.View(), help)
}

type historyLoadedMsg struct {
	items []*data.Doujinshi
	err   error
}

type historyForgottenMsg struct {
	err error
}

func (s *HistoryScreen) load() tea.Msg {
	items, err := s.deps.Repo.BrowsedDoujinshi(context.Background())
	return historyLoadedMsg{items: items, err: err}
}

func (s *HistoryScreen) forget(id int64) tea.Cmd {
	return func() tea.Msg {
		return historyForgottenMsg{err: s.deps.Repo.DeleteBrowsingHistory(context.Background(), id)}
	}
}
