package data

import (
	"regexp"
	"strings"
	"time"
)

type Doujinshi struct {
	ID           int64
	Title        string
	Author       string
	CoverURL     string
	URL          string
	Pages        []Page
	IsDownloaded bool
	Date         time.Time
	GData        *GData // nil until remote metadata has been fetched
}

// GData is the remote metadata block returned by the gallery API.
type GData struct {
	Gid       string
	Token     string
	Title     string
	Rating    float64
	Category  string
	Posted    int64 // Unix seconds
	FileCount int
}

type Page struct {
	ThumbURL string
	URL      string
}

type Author struct {
	Name   string
	Covers []string
}

type SearchHistory struct {
	Text string
	Date time.Time
}

type BrowsingHistory struct {
	ID          int64 // Doujinshi.ID
	UpdatedAt   time.Time
	CurrentPage int
}

var (
	conventionPattern = regexp.MustCompile(`^\s*\(([^)]+)\)`)
	bracketPattern    = regexp.MustCompile(`\[([^\]]+)\]`)
)

var languages = map[string]bool{
	"english":    true,
	"chinese":    true,
	"japanese":   true,
	"korean":     true,
	"spanish":    true,
	"french":     true,
	"german":     true,
	"italian":    true,
	"portuguese": true,
	"russian":    true,
	"thai":       true,
	"vietnamese": true,
	"indonesian": true,
	"polish":     true,
}

// ConventionName returns the event tag a title starts with, e.g. "C95" for
// "(C95) [Circle] Title".
func (d *Doujinshi) ConventionName() (string, bool) {
	m := conventionPattern.FindStringSubmatch(d.Title)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Language returns the first bracketed tag naming a known language, lower-cased.
func (d *Doujinshi) Language() (string, bool) {
	for _, m := range bracketPattern.FindAllStringSubmatch(d.Title, -1) {
		for _, word := range strings.Fields(strings.ToLower(m[1])) {
			if languages[word] {
				return word, true
			}
		}
	}
	return "", false
}

// Clone returns a copy that shares no mutable state with d.
func (d *Doujinshi) Clone() *Doujinshi {
	c := *d
	if d.Pages != nil {
		c.Pages = append([]Page(nil), d.Pages...)
	}
	if d.GData != nil {
		g := *d.GData
		c.GData = &g
	}
	return &c
}
