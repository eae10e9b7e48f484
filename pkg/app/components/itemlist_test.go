package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listItems(n int) []*data.Doujinshi {
	items := make([]*data.Doujinshi, n)
	for i := range items {
		items[i] = &data.Doujinshi{ID: int64(i + 1), Title: fmt.Sprintf("Book %02d", i+1)}
	}
	return items
}

func TestItemListNavigationWraps(t *testing.T) {
	list := NewItemList("empty")
	list.SetItems(listItems(3))

	list.Next()
	list.Next()
	assert.Equal(t, int64(3), list.Selected().ID)
	list.Next()
	assert.Equal(t, int64(1), list.Selected().ID)
	list.Prev()
	assert.Equal(t, int64(3), list.Selected().ID)
}

func TestItemListEmpty(t *testing.T) {
	list := NewItemList("No downloads yet")
	assert.Nil(t, list.Selected())

	list.Next()
	list.Prev()
	assert.Equal(t, 0, list.SelectedIndex)
	assert.Contains(t, list.View(), "No downloads yet")
}

func TestItemListSetItemsClampsSelection(t *testing.T) {
	list := NewItemList("")
	list.SetItems(listItems(5))
	list.SelectedIndex = 4

	list.SetItems(listItems(2))
	require.NotNil(t, list.Selected())
	assert.Equal(t, 1, list.SelectedIndex)

	list.SetItems(nil)
	assert.Equal(t, 0, list.SelectedIndex)
}

func TestItemListViewWindowsAroundSelection(t *testing.T) {
	list := NewItemList("")
	list.Height = 10
	list.SetItems(listItems(10))
	list.SelectedIndex = 8

	view := list.View()
	assert.Contains(t, view, "Book 09")
	assert.NotContains(t, view, "Book 01")
	assert.Equal(t, 2, strings.Count(view, "Book "))
}
