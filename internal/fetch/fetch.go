package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/blackwell-systems/binctl/internal/util"
)

// Checksum sidecars are small; anything bigger is not one.
const maxTextSize = 1 << 20

// Progress receives running byte counts during a download. total is -1
// when the server does not announce a length.
type Progress func(written, total int64)

// DownloadError reports a failed transfer.
type DownloadError struct {
	URL    string
	Status int   // 0 when the failure happened before any response
	Err    error // underlying transport error, if any
}

func (e *DownloadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download failed (HTTP %d): %s", e.Status, e.URL)
	}
	return fmt.Sprintf("download failed: %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Client downloads release artifacts. Transient network failures and
// 5xx responses are retried with backoff; anything still failing after
// that surfaces as a DownloadError.
type Client struct {
	retry *retryablehttp.Client
}

func New() *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 5 * time.Minute
	return &Client{retry: rc}
}

// File downloads url into dir under name, reporting progress as bytes
// arrive. The body streams straight to disk through a temp file that is
// renamed into place on completion, so partial downloads never survive.
func (c *Client) File(url, dir, name string, progress Progress) (string, error) {
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	resp, err := c.get(url)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", &DownloadError{URL: url, Status: resp.StatusCode}
	}

	dest := filepath.Join(dir, filepath.Base(name))
	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}

	src := &countingReader{r: resp.Body, total: resp.ContentLength, progress: progress}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", &DownloadError{URL: url, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return dest, nil
}

// Text fetches a small text resource, best-effort. Missing or failing
// URLs yield ok=false rather than an error: checksum sidecars are
// optional and their absence must not sink an install.
func (c *Client) Text(url string) (string, bool) {
	resp, err := c.get(url)
	if err != nil {
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxTextSize))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (c *Client) get(url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.retry.Do(req)
}

// countingReader reports cumulative progress as the body is consumed.
type countingReader struct {
	r        io.Reader
	written  int64
	total    int64
	progress Progress
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.written += int64(n)
		if cr.progress != nil {
			cr.progress(cr.written, cr.total)
		}
	}
	return n, err
}
