package screens

import (
	"context"
	"fmt"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/shinsi/pkg/app/components"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/data"
)

// ReaderScreen shows the pages of one item and remembers the last page read.
type ReaderScreen struct {
	deps    *Deps
	item    *data.Doujinshi
	history *data.BrowsingHistory
	page    int
	view    *components.PageView
	ctx     context.Context
	cancel  context.CancelFunc
	width   int
	height  int
	err     error
}

// pageLoader resolves a page index of item into an image reference before
// loading it.
type pageLoader struct {
	deps *Deps
	item *data.Doujinshi
}

func (l pageLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	var index int
	if _, err := fmt.Sscanf(ref, "%d", &index); err != nil {
		return nil, fmt.Errorf("bad page reference %q", ref)
	}
	resolved, err := l.deps.Library.PageRef(ctx, l.item, index)
	if err != nil {
		return nil, err
	}
	return l.deps.Images.Load(ctx, resolved)
}

func NewReaderScreen(deps *Deps, item *data.Doujinshi, width, height int) *ReaderScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReaderScreen{
		deps:   deps,
		item:   item,
		view:   components.NewPageView(pageLoader{deps: deps, item: item}, width, pageHeight(height)),
		ctx:    ctx,
		cancel: cancel,
		width:  width,
		height: height,
	}
}

func pageHeight(height int) int {
	if height <= 4 {
		return 1
	}
	return height - 4
}

func (s *ReaderScreen) Init() tea.Cmd {
	return s.open
}

// Close stops any pending page fetch.
func (s *ReaderScreen) Close() {
	s.view.PrepareForReuse()
	s.cancel()
}

func (s *ReaderScreen) Page() int { return s.page }

func (s *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.view.SetSize(msg.Width, pageHeight(msg.Height))

	case readerOpenedMsg:
		s.err = msg.err
		if msg.history != nil {
			s.history = msg.history
			s.page = clampPage(msg.history.CurrentPage, len(s.item.Pages))
		}
		return s, s.show(s.page)

	case components.PageLoadedMsg:
		s.view.Update(msg)

	case pageSavedMsg:
		if msg.err != nil {
			s.err = msg.err
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			s.Close()
			return s, func() tea.Msg { return SwitchScreenMsg{Screen: "back"} }
		case "right", "n", " ":
			return s, s.turn(s.page + 1)
		case "left", "p":
			return s, s.turn(s.page - 1)
		case "z":
			s.view.DoubleTap(s.width/2, pageHeight(s.height)/2)
		case "h":
			s.view.Pan(-4, 0)
		case "l":
			s.view.Pan(4, 0)
		case "k":
			s.view.Pan(0, -2)
		case "j":
			s.view.Pan(0, 2)
		}
	}

	return s, nil
}

func (s *ReaderScreen) View() string {
	title := styles.TitleStyle.Render(components.Truncate(s.item.Title, s.width-2))
	status := styles.MutedStyle.Render(fmt.Sprintf("Page %d/%d • zoom %.0fx", s.page+1, len(s.item.Pages), s.view.Viewer().Zoom()))
	if s.err != nil {
		status = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
	}
	help := styles.HelpStyle.UnsetMarginTop().Render("←/p →/n: page • z: zoom • h/j/k/l: pan • esc: back")
	return fmt.Sprintf("%s\n%s\n%s\n%s", title, s.view.View(), status, help)
}

func (s *ReaderScreen) show(page int) tea.Cmd {
	if len(s.item.Pages) == 0 {
		return nil
	}
	s.view.PrepareForReuse()
	return s.view.Load(s.ctx, fmt.Sprintf("%d", page))
}

func (s *ReaderScreen) turn(page int) tea.Cmd {
	page = clampPage(page, len(s.item.Pages))
	if page == s.page {
		return nil
	}
	s.page = page
	return tea.Batch(s.show(page), s.savePage(page))
}

func clampPage(page, total int) int {
	if page >= total {
		page = total - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

type readerOpenedMsg struct {
	history *data.BrowsingHistory
	err     error
}

type pageSavedMsg struct {
	err error
}

// open records the visit and restores the last page read.
func (s *ReaderScreen) open() tea.Msg {
	ctx := context.Background()
	if err := s.deps.Repo.CreateBrowsingHistory(ctx, s.item); err != nil {
		return readerOpenedMsg{err: err}
	}
	h, err := s.deps.Repo.BrowsingHistory(ctx, s.item.ID)
	return readerOpenedMsg{history: h, err: err}
}

func (s *ReaderScreen) savePage(page int) tea.Cmd {
	if s.history == nil {
		return nil
	}
	h := *s.history
	return func() tea.Msg {
		return pageSavedMsg{err: s.deps.Repo.UpdateBrowsingHistory(context.Background(), &h, page)}
	}
}
