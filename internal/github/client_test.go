package github_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blackwell-systems/binctl/internal/github"
)

func TestLatestRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/junegunn/fzf/releases/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"tag_name": "v0.46.0",
			"name": "0.46.0",
			"tarball_url": "https://api.github.com/repos/junegunn/fzf/tarball/v0.46.0",
			"assets": [
				{"name": "fzf-0.46.0-linux_amd64.tar.gz", "browser_download_url": "https://example.com/a", "size": 1234}
			]
		}`)
	}))
	defer srv.Close()

	c := github.New("", srv.URL)
	rel, err := c.LatestRelease("junegunn", "fzf")
	if err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
	if rel.TagName != "v0.46.0" {
		t.Errorf("TagName = %q, want v0.46.0", rel.TagName)
	}
	if rel.Version() != "0.46.0" {
		t.Errorf("Version() = %q, want 0.46.0", rel.Version())
	}
	if len(rel.Assets) != 1 || rel.Assets[0].Size != 1234 {
		t.Errorf("Assets = %+v", rel.Assets)
	}
}

func TestLatestRelease_FallbackToStable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/releases/latest":
			w.WriteHeader(http.StatusNotFound)
		case "/repos/o/r/releases":
			fmt.Fprint(w, `[
				{"tag_name": "v2.0.0-rc1", "prerelease": true},
				{"tag_name": "v1.9.0", "draft": true},
				{"tag_name": "v1.8.0"}
			]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	rel, err := github.New("", srv.URL).LatestRelease("o", "r")
	if err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
	if rel.TagName != "v1.8.0" {
		t.Errorf("TagName = %q, want the first stable release v1.8.0", rel.TagName)
	}
}

func TestLatestRelease_FallbackAllPrereleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/releases/latest":
			w.WriteHeader(http.StatusNotFound)
		case "/repos/o/r/releases":
			fmt.Fprint(w, `[
				{"tag_name": "v0.2.0-beta", "prerelease": true},
				{"tag_name": "v0.1.0-beta", "prerelease": true}
			]`)
		}
	}))
	defer srv.Close()

	rel, err := github.New("", srv.URL).LatestRelease("o", "r")
	if err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
	if rel.TagName != "v0.2.0-beta" {
		t.Errorf("TagName = %q, want newest prerelease", rel.TagName)
	}
}

func TestLatestRelease_NoReleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/releases/latest":
			w.WriteHeader(http.StatusNotFound)
		case "/repos/o/r/releases":
			fmt.Fprint(w, `[]`)
		}
	}))
	defer srv.Close()

	_, err := github.New("", srv.URL).LatestRelease("o", "r")
	if !errors.Is(err, github.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestReleases_DropsDrafts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "5" {
			t.Errorf("per_page = %q, want 5", got)
		}
		fmt.Fprint(w, `[
			{"tag_name": "v1.2.0"},
			{"tag_name": "v1.1.0", "draft": true},
			{"tag_name": "v1.0.0"}
		]`)
	}))
	defer srv.Close()

	rels, err := github.New("", srv.URL).Releases("o", "r", 5)
	if err != nil {
		t.Fatalf("Releases: %v", err)
	}
	if len(rels) != 2 {
		t.Fatalf("len = %d, want 2 (draft dropped)", len(rels))
	}
	if rels[0].TagName != "v1.2.0" || rels[1].TagName != "v1.0.0" {
		t.Errorf("tags = %s, %s", rels[0].TagName, rels[1].TagName)
	}
}

func TestReleaseByTag_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := github.New("", srv.URL).ReleaseByTag("o", "r", "v9.9.9")
	if !errors.Is(err, github.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStatusMapping_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := github.New("", srv.URL).LatestRelease("o", "r")
	if !errors.Is(err, github.ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestStatusMapping_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := github.New("", srv.URL).LatestRelease("o", "r")
	var apiErr *github.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", apiErr.Status)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotVersion = r.Header.Get("X-GitHub-Api-Version")
		fmt.Fprint(w, `{"tag_name": "v1.0.0"}`)
	}))
	defer srv.Close()

	if _, err := github.New("tok123", srv.URL).LatestRelease("o", "r"); err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotVersion != "2022-11-28" {
		t.Errorf("X-GitHub-Api-Version = %q", gotVersion)
	}
}

func TestRequestHeaders_NoTokenNoAuth(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		fmt.Fprint(w, `{"tag_name": "v1.0.0"}`)
	}))
	defer srv.Close()

	if _, err := github.New("", srv.URL).LatestRelease("o", "r"); err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
	if sawAuth {
		t.Error("Authorization header sent without a token")
	}
}

func TestSearchRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "fuzzy finder" || q.Get("sort") != "stars" || q.Get("order") != "desc" {
			t.Errorf("query = %v", q)
		}
		fmt.Fprint(w, `{
			"total_count": 2,
			"items": [
				{"full_name": "junegunn/fzf", "description": "A command-line fuzzy finder", "stargazers_count": 60000, "html_url": "https://github.com/junegunn/fzf"},
				{"full_name": "lotabout/skim", "description": "Fuzzy Finder in rust!", "stargazers_count": 5000, "html_url": "https://github.com/lotabout/skim"}
			]
		}`)
	}))
	defer srv.Close()

	repos, err := github.New("", srv.URL).SearchRepos("fuzzy finder", 10)
	if err != nil {
		t.Fatalf("SearchRepos: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("len = %d, want 2", len(repos))
	}
	if repos[0].FullName != "junegunn/fzf" || repos[0].Stars != 60000 {
		t.Errorf("first hit = %+v", repos[0])
	}
}

func TestVersion_NoPrefix(t *testing.T) {
	r := github.Release{TagName: "1.2.3"}
	if got := r.Version(); got != "1.2.3" {
		t.Errorf("Version() = %q, want 1.2.3", got)
	}
}
