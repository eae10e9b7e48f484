package screens

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/shinsi/pkg/app/components"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/config"
	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/kerbaras/shinsi/pkg/services"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	Repo      *data.Repository
	Library   *services.Library
	Images    components.ImageLoader
	Prefs     *config.Preferences
	PrefsPath string
	ExportDir string
	Logger    *slog.Logger
}

type screenType int

const (
	downloadsView screenType = iota
	historyView
	authorsView
	searchesView
	readerView
)

var tabNames = []string{"Downloads", "History", "Authors", "Searches"}

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type RootScreen struct {
	deps *Deps

	currentView screenType
	lastTab     screenType
	downloads   *DownloadsScreen
	history     *HistoryScreen
	authors     *AuthorsScreen
	searches    *SearchesScreen
	reader      *ReaderScreen
	progress    *components.ProgressTracker

	width  int
	height int
	err    error
}

func NewRootScreen(deps *Deps) *RootScreen {
	if deps.Prefs == nil {
		deps.Prefs = &config.Preferences{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &RootScreen{
		deps:        deps,
		currentView: downloadsView,
		downloads:   NewDownloadsScreen(deps),
		history:     NewHistoryScreen(deps),
		authors:     NewAuthorsScreen(deps),
		searches:    NewSearchesScreen(deps),
		progress:    components.NewProgressTracker(60),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.downloads.Init(), r.waitForProgress())
}

func (r *RootScreen) waitForProgress() tea.Cmd {
	if r.deps.Library == nil {
		return nil
	}
	ch := r.deps.Library.Downloader().GetProgressChannel()
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

type progressMsg services.DownloadProgress

// typing reports whether key presses belong to a text input.
func (r *RootScreen) typing() bool {
	return r.currentView == searchesView && r.searches.input.Focused()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.progress.SetWidth(msg.Width)
		return r, r.broadcast(msg)

	case progressMsg:
		r.progress.Update(services.DownloadProgress(msg))
		return r, r.waitForProgress()

	case prefsSavedMsg:
		r.err = msg.err
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "tab":
			if r.currentView != readerView {
				return r, r.switchTab((r.currentView + 1) % screenType(len(tabNames)))
			}
		case "shift+tab":
			if r.currentView != readerView {
				return r, r.switchTab((r.currentView + screenType(len(tabNames)) - 1) % screenType(len(tabNames)))
			}
		}
		if r.currentView != readerView && !r.typing() {
			switch msg.String() {
			case "q":
				return r, tea.Quit
			case "t":
				r.deps.Prefs.HideTag = !r.deps.Prefs.HideTag
				return r, r.savePrefs()
			case "T":
				r.deps.Prefs.HideTitle = !r.deps.Prefs.HideTitle
				return r, r.savePrefs()
			}
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "reader":
			item, ok := msg.Data.(*data.Doujinshi)
			if !ok {
				return r, nil
			}
			if r.reader != nil {
				r.reader.Close()
			}
			r.lastTab = r.currentView
			r.reader = NewReaderScreen(r.deps, item, r.width, r.height)
			r.currentView = readerView
			return r, r.reader.Init()
		case "back":
			r.reader = nil
			return r, r.switchTab(r.lastTab)
		}
		return r, nil

	case downloadFinishedMsg, authorSavedMsg:
		// These concern more than the screen that started them.
		var cmds []tea.Cmd
		for _, s := range []tea.Model{r.downloads, r.history, r.authors} {
			_, cmd := s.Update(msg)
			cmds = append(cmds, cmd)
		}
		return r, tea.Batch(cmds...)
	}

	return r, r.forward(msg)
}

func (r *RootScreen) switchTab(view screenType) tea.Cmd {
	r.currentView = view
	switch view {
	case historyView:
		return r.history.Init()
	case authorsView:
		return r.authors.Init()
	case searchesView:
		return r.searches.Init()
	default:
		return r.downloads.Init()
	}
}

func (r *RootScreen) active() tea.Model {
	switch r.currentView {
	case historyView:
		return r.history
	case authorsView:
		return r.authors
	case searchesView:
		return r.searches
	case readerView:
		if r.reader != nil {
			return r.reader
		}
	}
	return r.downloads
}

func (r *RootScreen) forward(msg tea.Msg) tea.Cmd {
	_, cmd := r.active().Update(msg)
	return cmd
}

// broadcast sends msg to every screen.
func (r *RootScreen) broadcast(msg tea.Msg) tea.Cmd {
	models := []tea.Model{r.downloads, r.history, r.authors, r.searches}
	if r.reader != nil {
		models = append(models, r.reader)
	}
	var cmds []tea.Cmd
	for _, m := range models {
		_, cmd := m.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (r *RootScreen) View() string {
	if r.currentView == readerView && r.reader != nil {
		return r.reader.View()
	}

	content := r.active().View()
	if r.err != nil {
		content = styles.StatusError.Render(fmt.Sprintf("Error: %s", r.err)) + "\n\n" + content
	}
	if r.progress.HasActive() {
		content += "\n" + r.progress.View()
	}
	return fmt.Sprintf("%s\n\n%s", r.renderTabs(), content)
}

func (r *RootScreen) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if screenType(i) == r.currentView {
			tabs[i] = styles.ActiveTabStyle.Render(name)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(name)
		}
	}

	var flags string
	if r.deps.Prefs.HideTag {
		flags += " tags hidden"
	}
	if r.deps.Prefs.HideTitle {
		flags += " titles hidden"
	}
	if flags != "" {
		tabs = append(tabs, styles.MutedStyle.Render(flags))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

type prefsSavedMsg struct {
	err error
}

func (r *RootScreen) savePrefs() tea.Cmd {
	prefs := *r.deps.Prefs
	path := r.deps.PrefsPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: config.SavePreferences(path, prefs)}
	}
}

// Commands shared by the list screens.

type downloadFinishedMsg struct {
	item *data.Doujinshi
	err  error
}

type authorSavedMsg struct {
	name string
	err  error
}

func openReader(item *data.Doujinshi) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: "reader", Data: item.Clone()}
	}
}

func startDownload(deps *Deps, url string) tea.Cmd {
	return func() tea.Msg {
		item, err := deps.Library.Download(context.Background(), url)
		if err != nil {
			deps.Logger.Error("download failed", "url", url, "error", err)
		}
		return downloadFinishedMsg{item: item, err: err}
	}
}

func favouriteAuthor(deps *Deps, id int64) tea.Cmd {
	return func() tea.Msg {
		item, err := deps.Repo.GetDoujinshi(context.Background(), id)
		if err != nil {
			return authorSavedMsg{err: err}
		}
		if item == nil {
			return authorSavedMsg{err: fmt.Errorf("doujinshi %d: %w", id, services.ErrUnknownDoujinshi)}
		}
		return authorSavedMsg{name: item.Author, err: deps.Library.FavouriteAuthor(context.Background(), id)}
	}
}
