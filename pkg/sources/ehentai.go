package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/kerbaras/shinsi/pkg/utils"
)

var (
	ErrInvalidGalleryURL = errors.New("invalid gallery url")
	ErrNotFound          = errors.New("not found")
)

var galleryPathPattern = regexp.MustCompile(`^/g/(\d+)/([0-9a-f]+)/?$`)

// ParseGalleryURL extracts the gallery id and token from a URL of the form
// https://host/g/<gid>/<token>/.
func ParseGalleryURL(raw string) (int64, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidGalleryURL, err)
	}
	m := galleryPathPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %s", ErrInvalidGalleryURL, raw)
	}
	gid, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidGalleryURL, err)
	}
	return gid, m[2], nil
}

type gdataRequest struct {
	Method    string  `json:"method"`
	GIDList   [][]any `json:"gidlist"`
	Namespace int     `json:"namespace"`
}

type gmetadata struct {
	GID       int64    `json:"gid"`
	Token     string   `json:"token"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Thumb     string   `json:"thumb"`
	Posted    string   `json:"posted"`
	FileCount string   `json:"filecount"`
	Rating    string   `json:"rating"`
	Tags      []string `json:"tags"`
	Error     string   `json:"error"`
}

func (m *gmetadata) toGData() *data.GData {
	posted, _ := strconv.ParseInt(m.Posted, 10, 64)
	count, _ := strconv.Atoi(m.FileCount)
	rating, _ := strconv.ParseFloat(m.Rating, 64)
	return &data.GData{
		Gid:       strconv.FormatInt(m.GID, 10),
		Token:     m.Token,
		Title:     m.Title,
		Rating:    rating,
		Category:  m.Category,
		Posted:    posted,
		FileCount: count,
	}
}

// artist returns the first artist tag, falling back to the group tag.
func (m *gmetadata) artist() string {
	var group string
	for _, tag := range m.Tags {
		switch {
		case strings.HasPrefix(tag, "artist:"):
			return strings.TrimPrefix(tag, "artist:")
		case group == "" && strings.HasPrefix(tag, "group:"):
			group = strings.TrimPrefix(tag, "group:")
		}
	}
	return group
}

// EHentai reads gallery metadata from the JSON API and page lists from the
// gallery HTML.
type EHentai struct {
	web    *utils.API
	apiURL string
}

func NewEHentai(baseURL, apiURL string) *EHentai {
	return NewEHentaiWithAPI(utils.NewAPI(baseURL), apiURL)
}

func NewEHentaiWithAPI(web *utils.API, apiURL string) *EHentai {
	return &EHentai{web: web, apiURL: apiURL}
}

func (e *EHentai) gdata(ctx context.Context, gid int64, token string) (*gmetadata, error) {
	req := gdataRequest{
		Method:    "gdata",
		GIDList:   [][]any{{gid, token}},
		Namespace: 1,
	}
	var resp struct {
		GMetadata []gmetadata `json:"gmetadata"`
	}
	if err := e.web.PostJSON(ctx, e.apiURL, req, &resp); err != nil {
		return nil, fmt.Errorf("gdata %d: %w", gid, err)
	}
	if len(resp.GMetadata) == 0 {
		return nil, fmt.Errorf("gdata %d: %w", gid, ErrNotFound)
	}
	m := &resp.GMetadata[0]
	if m.Error != "" {
		return nil, fmt.Errorf("gdata %d: %w: %s", gid, ErrNotFound, m.Error)
	}
	return m, nil
}

func (e *EHentai) Metadata(ctx context.Context, gid int64, token string) (*data.GData, error) {
	m, err := e.gdata(ctx, gid, token)
	if err != nil {
		return nil, err
	}
	return m.toGData(), nil
}

func (e *EHentai) Gallery(ctx context.Context, galleryURL string) (*data.Doujinshi, error) {
	gid, token, err := ParseGalleryURL(galleryURL)
	if err != nil {
		return nil, err
	}

	m, err := e.gdata(ctx, gid, token)
	if err != nil {
		return nil, err
	}

	d := &data.Doujinshi{
		ID:       gid,
		Title:    m.Title,
		Author:   m.artist(),
		CoverURL: m.Thumb,
		URL:      galleryURL,
		GData:    m.toGData(),
	}

	d.Pages, err = e.pages(ctx, galleryURL, d.GData.FileCount)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// pages walks the gallery's thumbnail listing until want pages are found or
// a listing page adds nothing new.
func (e *EHentai) pages(ctx context.Context, galleryURL string, want int) ([]data.Page, error) {
	var pages []data.Page
	seen := make(map[string]bool)

	for p := 0; ; p++ {
		listing := galleryURL
		if p > 0 {
			listing = fmt.Sprintf("%s?p=%d", strings.TrimSuffix(galleryURL, "/")+"/", p)
		}

		body, err := e.web.GetBytes(ctx, listing)
		if err != nil {
			return nil, fmt.Errorf("gallery listing %d: %w", p, err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parse gallery listing %d: %w", p, err)
		}

		added := 0
		doc.Find("#gdt a").Each(func(_ int, s *goquery.Selection) {
			href := s.AttrOr("href", "")
			if href == "" || seen[href] {
				return
			}
			seen[href] = true
			pages = append(pages, data.Page{
				ThumbURL: s.Find("img").AttrOr("src", ""),
				URL:      href,
			})
			added++
		})

		if added == 0 || (want > 0 && len(pages) >= want) {
			break
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("gallery %s: no pages: %w", galleryURL, ErrNotFound)
	}
	return pages, nil
}

func (e *EHentai) ImageURL(ctx context.Context, pageURL string) (string, error) {
	body, err := e.web.GetBytes(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("page %s: %w", pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse page %s: %w", pageURL, err)
	}

	src := doc.Find("#img").First().AttrOr("src", "")
	if src == "" {
		return "", fmt.Errorf("page %s: image: %w", pageURL, ErrNotFound)
	}
	return src, nil
}
