package fetch_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/binctl/internal/fetch"
)

func TestFile_DownloadsAndReportsProgress(t *testing.T) {
	payload := []byte("pretend this is a tarball of a very useful tool")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	var written []int64
	var lastTotal int64
	path, err := fetch.New().File(srv.URL+"/tool.tar.gz", dir, "tool.tar.gz", func(w, total int64) {
		written = append(written, w)
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if path != filepath.Join(dir, "tool.tar.gz") {
		t.Errorf("path = %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("content mismatch: %q", got)
	}

	if len(written) == 0 {
		t.Fatal("progress never called")
	}
	for i := 1; i < len(written); i++ {
		if written[i] < written[i-1] {
			t.Errorf("progress went backwards: %v", written)
		}
	}
	if written[len(written)-1] != int64(len(payload)) {
		t.Errorf("final progress = %d, want %d", written[len(written)-1], len(payload))
	}
	if lastTotal != int64(len(payload)) {
		t.Errorf("total = %d, want %d", lastTotal, len(payload))
	}
}

func TestFile_NoTempFileLeftBehind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data")
	}))
	defer srv.Close()

	dir := t.TempDir()
	if _, err := fetch.New().File(srv.URL, dir, "f.bin", nil); err != nil {
		t.Fatalf("File: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFile_HTTPErrorIsDownloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fetch.New().File(srv.URL+"/missing.tar.gz", t.TempDir(), "missing.tar.gz", nil)
	var dlErr *fetch.DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("err = %v, want *DownloadError", err)
	}
	if dlErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", dlErr.Status)
	}
}

func TestFile_UnknownLengthReportsMinusOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fl := w.(http.Flusher)
		fmt.Fprint(w, "chunk one ")
		fl.Flush()
		fmt.Fprint(w, "chunk two")
	}))
	defer srv.Close()

	var total int64
	_, err := fetch.New().File(srv.URL, t.TempDir(), "chunked.bin", func(w, tot int64) {
		total = tot
	})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if total != -1 {
		t.Errorf("total = %d, want -1 for chunked response", total)
	}
}

func TestFile_BaseNameOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "x")
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, err := fetch.New().File(srv.URL, dir, "../escape.bin", nil)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("download escaped its directory: %s", path)
	}
}

func TestText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "abc123  tool.tar.gz\n")
	}))
	defer srv.Close()

	body, ok := fetch.New().Text(srv.URL)
	if !ok {
		t.Fatal("Text returned not-ok")
	}
	if body != "abc123  tool.tar.gz\n" {
		t.Errorf("body = %q", body)
	}
}

func TestText_MissingIsNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, ok := fetch.New().Text(srv.URL); ok {
		t.Error("Text should report not-ok on 404")
	}
}
