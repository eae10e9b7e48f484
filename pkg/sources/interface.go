package sources

import (
	"context"

	"github.com/kerbaras/shinsi/pkg/data"
)

type Source interface {
	// Metadata fetches the remote metadata block of one gallery.
	Metadata(ctx context.Context, gid int64, token string) (*data.GData, error)
	// Gallery builds a complete item, metadata and page list, from a gallery URL.
	Gallery(ctx context.Context, galleryURL string) (*data.Doujinshi, error)
	// ImageURL resolves the full-size image of a page.
	ImageURL(ctx context.Context, pageURL string) (string, error)
}
