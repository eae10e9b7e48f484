package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/config"
	"github.com/kerbaras/shinsi/pkg/data"
)

// cellHeight is the number of lines one rendered card takes.
const cellHeight = 5

type ItemList struct {
	Items         []*data.Doujinshi
	SelectedIndex int
	Width         int
	Height        int
	Prefs         config.Preferences
	EmptyText     string
}

func NewItemList(emptyText string) *ItemList {
	return &ItemList{
		Items:     []*data.Doujinshi{},
		Width:     80,
		Height:    20,
		EmptyText: emptyText,
	}
}

func (m *ItemList) SetItems(items []*data.Doujinshi) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *ItemList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *ItemList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *ItemList) Selected() *data.Doujinshi {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return m.Items[m.SelectedIndex]
}

// window returns the range of items that fit on screen around the selection.
func (m *ItemList) window() (int, int) {
	visible := m.Height / cellHeight
	if visible < 1 {
		visible = 1
	}
	if len(m.Items) <= visible {
		return 0, len(m.Items)
	}
	start := m.SelectedIndex - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > len(m.Items) {
		start = len(m.Items) - visible
	}
	return start, start + visible
}

func (m *ItemList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.EmptyText)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	start, end := m.window()
	for i := start; i < end; i++ {
		cell := BindItemCell(m.Items[i], m.Prefs)
		b.WriteString(cell.View(m.Width, i == m.SelectedIndex))
		b.WriteString("\n")
	}
	return b.String()
}
