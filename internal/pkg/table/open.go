package table

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Opener reads sources, fetching remote ones with retries.
type Opener struct {
	Client  *http.Client
	Retries uint64
}

func NewOpener(retries uint64, timeout time.Duration) *Opener {
	return &Opener{Client: &http.Client{Timeout: timeout}, Retries: retries}
}

// Open loads src as a table named name.
func (o *Opener) Open(ctx context.Context, name string, src Source) (*Table, error) {
	format, err := src.ResolvedFormat()
	if err != nil {
		return nil, err
	}

	body, err := o.ReadAll(ctx, src.Path)
	if err != nil {
		return nil, err
	}

	return Decode(name, bytes.NewReader(body), format, src)
}

// ReadAll returns the bytes at path, a local file or an http(s) URL.
func (o *Opener) ReadAll(ctx context.Context, path string) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if (Source{Path: path}).IsRemote() {
		body, err = o.fetch(ctx, path)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}

// Decode parses r according to format.
func Decode(name string, r io.Reader, format Format, src Source) (*Table, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(name, r, src.Sheet, src.HeaderRow)
	case FormatCSV:
		return ReadCSV(name, r, src.Encoding, src.Delimiter, src.HeaderRow)
	case FormatHTML:
		return ReadHTML(name, r, src.HeaderRow)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func (o *Opener) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return backoff.Permanent(err)
			}

			resp, err := o.Client.Do(req)
			if err != nil {
				return fmt.Errorf("http.Get: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status))
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), o.Retries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return body, nil
}
