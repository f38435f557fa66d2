// Package fetch retrieves raw scene documents from files, HTTP and Redis.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Faultbox/scene3d/internal/store"
)

//go:generate mockgen -destination=mocks/mock_fetcher.go -package=fetchmocks github.com/Faultbox/scene3d/internal/fetch Fetcher

// MaxDocumentSize bounds the body read from any source.
const MaxDocumentSize = 16 << 20

// Fetch errors.
var (
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
	ErrStatus            = errors.New("unexpected response status")
	ErrTooLarge          = errors.New("scene document too large")
	ErrEmptyRef          = errors.New("empty source reference")
	ErrOutsideRoot       = errors.New("path escapes source root")
)

// Fetcher returns the raw bytes of a scene document.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// File reads documents from the local filesystem. When Root is set, only
// local relative paths are accepted and they are opened inside Root, so
// neither "..", absolute paths nor symlinks can leave it.
type File struct {
	Root string
}

// Fetch reads a path or file:// reference.
func (f File) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(ref, "file://")
	if path == "" {
		return nil, ErrEmptyRef
	}

	var (
		file *os.File
		err  error
	)
	if f.Root != "" {
		if !filepath.IsLocal(path) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, path)
		}
		file, err = os.OpenInRoot(f.Root, path)
	} else {
		file, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening scene file: %w", err)
	}
	defer file.Close()

	return readLimited(file)
}

// HTTP fetches documents over http and https.
type HTTP struct {
	Client *http.Client
}

// NewHTTP creates an HTTP fetcher whose client gives up after timeout.
func NewHTTP(timeout time.Duration) *HTTP {
	return &HTTP{Client: &http.Client{Timeout: timeout}}
}

// Fetch issues a GET for ref. Any status other than 200 is an error.
func (h *HTTP) Fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, ref, resp.StatusCode)
	}
	return readLimited(resp.Body)
}

// Redis reads documents from a store by redis://name reference.
type Redis struct {
	Store store.Repository
}

// Fetch loads the named document.
func (r *Redis) Fetch(ctx context.Context, ref string) ([]byte, error) {
	name := strings.TrimPrefix(ref, "redis://")
	if name == "" {
		return nil, ErrEmptyRef
	}
	return r.Store.Get(ctx, name)
}

// Mux dispatches on the reference scheme: http(s):// goes to HTTP, redis://
// to Redis, anything else to File.
type Mux struct {
	File  Fetcher
	HTTP  Fetcher
	Redis Fetcher
}

// Fetch routes ref to the matching fetcher.
func (m *Mux) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}
	target, scheme := m.route(ref)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
	return target.Fetch(ctx, ref)
}

func (m *Mux) route(ref string) (Fetcher, string) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return m.HTTP, "http"
	case strings.HasPrefix(ref, "redis://"):
		return m.Redis, "redis"
	default:
		return m.File, "file"
	}
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading scene document: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
