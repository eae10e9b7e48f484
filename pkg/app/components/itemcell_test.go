package components

import (
	"testing"
	"time"

	"github.com/kerbaras/shinsi/pkg/config"
	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/stretchr/testify/assert"
)

func testItem() *data.Doujinshi {
	return &data.Doujinshi{
		ID:    1,
		Title: "(C95) [Circle (Artist)] Summer Book [English]",
		GData: &data.GData{
			Gid:       "1",
			Token:     "abc",
			Rating:    4.5,
			Category:  "Doujinshi",
			Posted:    1546300800,
			FileCount: 20,
		},
	}
}

func TestBindItemCellShowsAllBadges(t *testing.T) {
	cell := BindItemCell(testItem(), config.Preferences{})

	assert.Equal(t, Badge{Text: "⭐️4.5"}, cell.Rating)
	assert.Equal(t, Badge{Text: "Doujinshi"}, cell.Category)
	assert.Equal(t, Badge{Text: "C95"}, cell.Convention)
	assert.Equal(t, Badge{Text: "English"}, cell.Language)
	assert.Equal(t, Badge{Text: "20 pages"}, cell.PageCount)
	assert.Equal(t, Badge{Text: "(C95) [Circle (Artist)] Summer Book [English]"}, cell.Title)
}

func TestBindItemCellPostedIsAlwaysHidden(t *testing.T) {
	cell := BindItemCell(testItem(), config.Preferences{})

	assert.True(t, cell.Posted.Hidden)
	assert.Equal(t, time.Unix(1546300800, 0).Format("2006-01-02 15:04"), cell.Posted.Text)
	for _, b := range cell.Badges() {
		assert.NotEqual(t, cell.Posted.Text, b.Text)
	}
}

func TestBindItemCellHideTag(t *testing.T) {
	cell := BindItemCell(testItem(), config.Preferences{HideTag: true})

	assert.True(t, cell.Rating.Hidden)
	assert.True(t, cell.Category.Hidden)
	assert.True(t, cell.Convention.Hidden)
	assert.True(t, cell.Language.Hidden)
	assert.False(t, cell.PageCount.Hidden)
	assert.False(t, cell.Title.Hidden)
	assert.Equal(t, []Badge{{Text: "20 pages"}}, cell.Badges())
}

func TestBindItemCellHideTitle(t *testing.T) {
	cell := BindItemCell(testItem(), config.Preferences{HideTitle: true})

	assert.True(t, cell.Title.Hidden)
	assert.Equal(t, "(C95) [Circle (Artist)] Summer Book [English]", cell.Title.Text)
	assert.False(t, cell.Rating.Hidden)
}

func TestBindItemCellWithoutMetadata(t *testing.T) {
	d := &data.Doujinshi{ID: 2, Title: "Plain title"}
	cell := BindItemCell(d, config.Preferences{})

	assert.True(t, cell.Rating.Hidden)
	assert.True(t, cell.Category.Hidden)
	assert.True(t, cell.Convention.Hidden)
	assert.True(t, cell.Language.Hidden)
	assert.True(t, cell.PageCount.Hidden)
	assert.True(t, cell.Posted.Hidden)
	assert.Empty(t, cell.Badges())
	assert.Equal(t, Badge{Text: "Plain title"}, cell.Title)
}

func TestBindItemCellRating(t *testing.T) {
	tests := []struct {
		rating float64
		text   string
		hidden bool
	}{
		{0, "", true},
		{-1, "", true},
		{4, "⭐️4.0", false},
		{3.53, "⭐️3.53", false},
	}

	for _, tt := range tests {
		d := testItem()
		d.GData.Rating = tt.rating
		cell := BindItemCell(d, config.Preferences{})
		assert.Equal(t, tt.hidden, cell.Rating.Hidden, "rating %v", tt.rating)
		assert.Equal(t, tt.text, cell.Rating.Text, "rating %v", tt.rating)
	}
}

func TestBindItemCellLanguageIsCapitalized(t *testing.T) {
	d := testItem()
	d.Title = "[Circle] Book [Chinese] [Decensored]"
	cell := BindItemCell(d, config.Preferences{})

	assert.Equal(t, "Chinese", cell.Language.Text)
	assert.True(t, cell.Convention.Hidden)
}

func TestItemCellView(t *testing.T) {
	view := BindItemCell(testItem(), config.Preferences{}).View(100, false)
	assert.Contains(t, view, "Summer Book")
	assert.Contains(t, view, "Doujinshi")
	assert.Contains(t, view, "20 pages")

	hidden := BindItemCell(testItem(), config.Preferences{HideTitle: true, HideTag: true}).View(100, true)
	assert.NotContains(t, hidden, "Summer Book")
	assert.NotContains(t, hidden, "Doujinshi")
	assert.Contains(t, hidden, "20 pages")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "日本語...", Truncate("日本語のタイトル", 6))
	assert.Equal(t, "abcdefghij", Truncate("abcdefghij", 2))
}
