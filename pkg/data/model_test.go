package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConventionName(t *testing.T) {
	tests := []struct {
		title string
		want  string
		ok    bool
	}{
		{"(C95) [Circle (Artist)] Title [English]", "C95", true},
		{"  (COMIC1☆15) [Circle] Title", "COMIC1☆15", true},
		{"[Circle] Title (C95)", "", false},
		{"Plain title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			d := &Doujinshi{Title: tt.title}
			got, ok := d.ConventionName()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		title string
		want  string
		ok    bool
	}{
		{"(C95) [Circle] Title [English]", "english", true},
		{"[Circle] Title [Chinese] [Digital]", "chinese", true},
		{"[Circle] Title [Korean Translated]", "korean", true},
		{"[Circle] Title [Digital]", "", false},
		{"Title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			d := &Doujinshi{Title: tt.title}
			got, ok := d.Language()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloneIsDetached(t *testing.T) {
	d := &Doujinshi{
		ID:    1,
		Title: "Test",
		Pages: []Page{{ThumbURL: "a", URL: "b"}},
		GData: &GData{Gid: "123", Rating: 4.5},
	}

	c := d.Clone()
	c.Pages[0].ThumbURL = "changed"
	c.GData.Rating = 1

	assert.Equal(t, "a", d.Pages[0].ThumbURL)
	assert.Equal(t, 4.5, d.GData.Rating)
}
