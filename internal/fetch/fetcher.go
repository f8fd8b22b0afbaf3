// Package fetch retrieves a batch of images from a remote source into a
// local directory. The source is a pluggable interface; the shipped
// implementation pulls images from a channel URL by index.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ayusman/shelfscan/internal/logging"
)

// Source yields the raw bytes of each image in a batch, in order.
type Source interface {
	// Len returns the number of images in the batch.
	Len() int

	// Image returns the raw bytes of the i-th image.
	Image(ctx context.Context, i int) ([]byte, error)
}

// FetchError reports a failed image retrieval. It aborts the whole batch;
// there is no per-item isolation or retry.
type FetchError struct {
	Index int
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch image %d: %v", e.Index, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ChannelSource fetches images from a channel URL using the fixed
// per-index pattern {BaseURL}/image_{i}.jpg.
type ChannelSource struct {
	BaseURL string
	Count   int
	Client  *http.Client
}

// Len returns the fixed batch size of the source.
func (s *ChannelSource) Len() int { return s.Count }

// Image issues a GET for the i-th image and returns the response body.
// A non-2xx status is treated as a failed fetch.
func (s *ChannelSource) Image(ctx context.Context, i int) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	url := fmt.Sprintf("%s/image_%d.jpg", s.BaseURL, i)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Fetcher downloads a source's batch into a directory.
type Fetcher struct {
	source Source
	log    *logging.Logger
}

// New creates a Fetcher over the given source.
func New(source Source, log *logging.Logger) *Fetcher {
	return &Fetcher{source: source, log: log}
}

// Download creates dir if absent and writes every image of the batch to
// {dir}/image_{i}.jpg, returning the written paths. The first failure
// aborts the batch with a *FetchError; files already written stay on disk.
func (f *Fetcher) Download(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &FetchError{Index: -1, Err: err}
	}

	paths := make([]string, 0, f.source.Len())
	for i := 0; i < f.source.Len(); i++ {
		data, err := f.source.Image(ctx, i)
		if err != nil {
			return nil, &FetchError{Index: i, Err: err}
		}

		path := filepath.Join(dir, fmt.Sprintf("image_%d.jpg", i))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, &FetchError{Index: i, Err: err}
		}

		f.log.Info("image %d downloaded to %s", i, path)
		paths = append(paths, path)
	}

	return paths, nil
}
