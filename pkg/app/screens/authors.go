package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/data"
)

type AuthorsScreen struct {
	deps     *Deps
	authors  []*data.Author
	selected int
	width    int
	height   int
	err      error
}

func NewAuthorsScreen(deps *Deps) *AuthorsScreen {
	return &AuthorsScreen{deps: deps}
}

func (s *AuthorsScreen) Init() tea.Cmd {
	return s.load
}

func (s *AuthorsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if len(s.authors) > 0 {
				s.selected = (s.selected - 1 + len(s.authors)) % len(s.authors)
			}
		case "down", "j":
			if len(s.authors) > 0 {
				s.selected = (s.selected + 1) % len(s.authors)
			}
		case "r":
			return s, s.load
		case "d":
			if s.selected < len(s.authors) {
				return s, s.delete(s.authors[s.selected].Name)
			}
		}

	case authorsLoadedMsg:
		s.authors = msg.authors
		s.err = msg.err
		if s.selected >= len(s.authors) {
			s.selected = 0
		}

	case authorDeletedMsg:
		s.err = msg.err
		return s, s.load

	case authorSavedMsg:
		return s, s.load
	}

	return s, nil
}

func (s *AuthorsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Authors")

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	var body string
	if len(s.authors) == 0 {
		body = styles.MutedStyle.Render("No saved authors")
	} else {
		var b strings.Builder
		for i, a := range s.authors {
			cardStyle := styles.CardStyle
			if i == s.selected {
				cardStyle = styles.ActiveCardStyle
			}
			covers := styles.MutedStyle.Render(fmt.Sprintf("%d covers", len(a.Covers)))
			content := lipgloss.JoinVertical(lipgloss.Left, styles.TextStyle.Bold(true).Render(a.Name), covers)
			b.WriteString(cardStyle.Width(s.width - 8).Render(content))
			b.WriteString("\n")
		}
		body = b.String()
	}

	help := styles.HelpStyle.Render("↑/k: up • ↓/j: down • d: delete • r: refresh • tab: switch view • q: quit")
	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, body, help)
}

type authorsLoadedMsg struct {
	authors []*data.Author
	err     error
}

type authorDeletedMsg struct {
	err error
}

func (s *AuthorsScreen) load() tea.Msg {
	authors, err := s.deps.Repo.Authors(context.Background())
	return authorsLoadedMsg{authors: authors, err: err}
}

func (s *AuthorsScreen) delete(name string) tea.Cmd {
	return func() tea.Msg {
		return authorDeletedMsg{err: s.deps.Repo.DeleteAuthor(context.Background(), name)}
	}
}
