package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faultbox/scene3d/internal/fetch"
	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// ErrFetch wraps any failure to retrieve a document.
var ErrFetch = errors.New("fetching scene document")

// Loader fetches, parses and builds scenes.
type Loader struct {
	fetcher fetch.Fetcher
}

// NewLoader creates a loader that reads documents through f.
func NewLoader(f fetch.Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Load fetches ref and builds it. Fetching is the only step that honors ctx;
// once the document is in hand the build runs to completion.
func (l *Loader) Load(ctx context.Context, ref string, opts Options) (*Scene, error) {
	data, err := l.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, ref, err)
	}
	doc, err := scenefile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ref, err)
	}
	return Build(doc, opts)
}
