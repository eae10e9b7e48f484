package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/kerbaras/shinsi/pkg/sources"
)

// SearchesScreen takes gallery URLs or search keywords. URLs are opened and
// recorded in the browsing history; anything else is kept as a recent
// search.
type SearchesScreen struct {
	deps     *Deps
	input    textinput.Model
	history  []*data.SearchHistory
	selected int
	busy     bool
	width    int
	height   int
	status   string
	err      error
}

func NewSearchesScreen(deps *Deps) *SearchesScreen {
	ti := textinput.New()
	ti.Placeholder = "Gallery URL or keywords..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return &SearchesScreen{deps: deps, input: ti}
}

func (s *SearchesScreen) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.load)
}

func (s *SearchesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}

		switch msg.String() {
		case "enter":
			if s.input.Focused() {
				text := strings.TrimSpace(s.input.Value())
				if text == "" {
					return s, nil
				}
				s.input.SetValue("")
				if _, _, err := sources.ParseGalleryURL(text); err == nil {
					s.busy = true
					return s, s.add(text)
				}
				return s, s.save(text)
			}
			if s.selected < len(s.history) {
				s.input.SetValue(s.history[s.selected].Text)
				s.input.Focus()
				return s, tea.Batch(textinput.Blink, s.save(s.history[s.selected].Text))
			}

		case "esc":
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}
			return s, cmd

		case "up", "k":
			if !s.input.Focused() && len(s.history) > 0 {
				s.selected = (s.selected - 1 + len(s.history)) % len(s.history)
			}

		case "down", "j":
			if !s.input.Focused() && len(s.history) > 0 {
				s.selected = (s.selected + 1) % len(s.history)
			}

		case "x":
			if !s.input.Focused() && s.selected < len(s.history) {
				return s, s.remove(s.history[s.selected].Text)
			}

		case "X":
			if !s.input.Focused() {
				return s, s.clear
			}
		}

	case searchesLoadedMsg:
		s.history = msg.items
		s.err = msg.err
		if s.selected >= len(s.history) {
			s.selected = 0
		}
		return s, nil

	case searchesChangedMsg:
		s.err = msg.err
		return s, s.load

	case galleryAddedMsg:
		s.busy = false
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Added %s", msg.item.Title)
			return s, openReader(msg.item)
		}
		return s, nil
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func (s *SearchesScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Searches")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var statusMsg string
	switch {
	case s.err != nil:
		statusMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	case s.busy:
		statusMsg = styles.StatusDownloading.Render("Fetching gallery...") + "\n\n"
	case s.status != "":
		statusMsg = styles.StatusCompleted.Render(s.status) + "\n\n"
	}

	var b strings.Builder
	if len(s.history) == 0 {
		b.WriteString(styles.MutedStyle.Render("No recent searches"))
	} else {
		b.WriteString(styles.SubtitleStyle.Render("Recent searches"))
		b.WriteString("\n\n")
		for i, h := range s.history {
			line := fmt.Sprintf("%s  %s", h.Text, styles.MutedStyle.Render(h.Date.Local().Format("2006-01-02 15:04")))
			if i == s.selected && !s.input.Focused() {
				b.WriteString(styles.SelectedStyle.Render(line))
			} else {
				b.WriteString(styles.TextStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	help := styles.HelpStyle.Render(
		"enter: open/search • esc: switch focus • ↑/k ↓/j: navigate • x: remove • X: clear all • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n%s", header, inputView, statusMsg, b.String(), help)
}

type searchesLoadedMsg struct {
	items []*data.SearchHistory
	err   error
}

type searchesChangedMsg struct {
	err error
}

type galleryAddedMsg struct {
	item *data.Doujinshi
	err  error
}

func (s *SearchesScreen) load() tea.Msg {
	items, err := s.deps.Repo.SearchHistory(context.Background())
	return searchesLoadedMsg{items: items, err: err}
}

func (s *SearchesScreen) save(text string) tea.Cmd {
	return func() tea.Msg {
		return searchesChangedMsg{err: s.deps.Repo.SaveSearchHistory(context.Background(), text)}
	}
}

func (s *SearchesScreen) remove(text string) tea.Cmd {
	return func() tea.Msg {
		return searchesChangedMsg{err: s.deps.Repo.DeleteSearchHistory(context.Background(), text)}
	}
}

func (s *SearchesScreen) clear() tea.Msg {
	return searchesChangedMsg{err: s.deps.Repo.DeleteAllSearchHistory(context.Background())}
}

func (s *SearchesScreen) add(url string) tea.Cmd {
	return func() tea.Msg {
		item, err := s.deps.Library.Add(context.Background(), url)
		return galleryAddedMsg{item: item, err: err}
	}
}
