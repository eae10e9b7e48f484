package components

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/config"
	"github.com/kerbaras/shinsi/pkg/data"
)

const postedLayout = "2006-01-02 15:04"

type Badge struct {
	Text   string
	Hidden bool
}

// ItemCell holds the labels shown for one item in a list.
type ItemCell struct {
	Rating     Badge
	Category   Badge
	Posted     Badge
	Convention Badge
	Language   Badge
	PageCount  Badge
	Title      Badge
}

// BindItemCell fills every label of a cell from d. Labels whose value is
// missing are hidden, and prefs can hide the tag badges and the title.
func BindItemCell(d *data.Doujinshi, prefs config.Preferences) ItemCell {
	var c ItemCell
	g := d.GData

	if g != nil && g.Rating > 0 {
		c.Rating = Badge{Text: "⭐️" + formatRating(g.Rating), Hidden: prefs.HideTag}
	} else {
		c.Rating.Hidden = true
	}

	if g != nil && g.Category != "" {
		c.Category = Badge{Text: g.Category, Hidden: prefs.HideTag}
	} else {
		c.Category.Hidden = true
	}

	// The posted time is formatted but never shown.
	if g != nil && g.Posted != 0 {
		c.Posted.Text = time.Unix(g.Posted, 0).Format(postedLayout)
	}
	c.Posted.Hidden = true

	if convention, ok := d.ConventionName(); ok {
		c.Convention = Badge{Text: convention, Hidden: prefs.HideTag}
	} else {
		c.Convention.Hidden = true
	}

	if language, ok := d.Language(); ok {
		c.Language = Badge{Text: capitalize(language), Hidden: prefs.HideTag}
	} else {
		c.Language.Hidden = true
	}

	if g != nil {
		c.PageCount = Badge{Text: strconv.Itoa(g.FileCount) + " pages"}
	} else {
		c.PageCount.Hidden = true
	}

	c.Title = Badge{Text: d.Title, Hidden: prefs.HideTitle}
	return c
}

// Badges returns the visible tag badges in display order.
func (c ItemCell) Badges() []Badge {
	var out []Badge
	for _, b := range []Badge{c.Category, c.Rating, c.Convention, c.Language, c.PageCount, c.Posted} {
		if !b.Hidden {
			out = append(out, b)
		}
	}
	return out
}

func (c ItemCell) View(width int, selected bool) string {
	cardStyle := styles.CardStyle
	if selected {
		cardStyle = styles.ActiveCardStyle
	}

	var badges []string
	if !c.Category.Hidden {
		badges = append(badges, styles.CategoryBadgeStyle(c.Category.Text).Render(c.Category.Text))
	}
	if !c.Rating.Hidden {
		badges = append(badges, styles.RatingBadgeStyle.Render(c.Rating.Text))
	}
	for _, b := range []Badge{c.Convention, c.Language} {
		if !b.Hidden {
			badges = append(badges, styles.BadgeStyle.Render(b.Text))
		}
	}
	if !c.PageCount.Hidden {
		badges = append(badges, styles.PageCountBadgeStyle.Render(c.PageCount.Text))
	}

	var lines []string
	if !c.Title.Hidden {
		lines = append(lines, styles.TextStyle.Bold(true).Render(Truncate(c.Title.Text, width-8)))
	}
	if len(badges) > 0 {
		lines = append(lines, strings.Join(badges, " "))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.MutedStyle.Render("untitled"))
	}

	return cardStyle.Width(width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatRating keeps one decimal for whole ratings, so 4 reads "4.0".
func formatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Truncate shortens s to at most max runes, ending in "...". Strings are
// left alone when max leaves no room for the ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
