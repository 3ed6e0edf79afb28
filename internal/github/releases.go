package github

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Release is a GitHub release with its attached assets.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Prerelease  bool      `json:"prerelease"`
	Draft       bool      `json:"draft"`
	PublishedAt time.Time `json:"published_at"`
	TarballURL  string    `json:"tarball_url"`
	HTMLURL     string    `json:"html_url"`
	Assets      []Asset   `json:"assets"`
}

// Version is the tag without a leading "v": v1.2.3 and 1.2.3 both report
// 1.2.3.
func (r *Release) Version() string {
	return strings.TrimPrefix(r.TagName, "v")
}

// Releases lists up to limit releases, newest first. Drafts are dropped;
// prereleases are kept.
func (c *Client) Releases(owner, repo string, limit int) ([]Release, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	q := url.Values{"per_page": {strconv.Itoa(limit)}}
	var raw []Release
	if err := c.getJSON(withQuery(c.url("repos", owner, repo, "releases"), q), &raw); err != nil {
		return nil, fmt.Errorf("listing releases for %s/%s: %w", owner, repo, err)
	}
	releases := make([]Release, 0, len(raw))
	for _, r := range raw {
		if !r.Draft {
			releases = append(releases, r)
		}
	}
	return releases, nil
}

// LatestRelease resolves the most recent stable release. Repos that only
// ever published prereleases get the newest prerelease instead.
func (c *Client) LatestRelease(owner, repo string) (*Release, error) {
	var rel Release
	err := c.getJSON(c.url("repos", owner, repo, "releases", "latest"), &rel)
	if err == nil {
		return &rel, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("fetching latest release for %s/%s: %w", owner, repo, err)
	}

	// The latest endpoint 404s when every release is a draft or a
	// prerelease. Scan the list before giving up.
	releases, err := c.Releases(owner, repo, defaultPageSize)
	if err != nil {
		return nil, err
	}
	for i := range releases {
		if !releases[i].Prerelease {
			return &releases[i], nil
		}
	}
	if len(releases) > 0 {
		return &releases[0], nil
	}
	return nil, fmt.Errorf("no releases for %s/%s: %w", owner, repo, ErrNotFound)
}

// ReleaseByTag fetches the release for an exact tag.
func (c *Client) ReleaseByTag(owner, repo, tag string) (*Release, error) {
	var rel Release
	if err := c.getJSON(c.url("repos", owner, repo, "releases", "tags", tag), &rel); err != nil {
		return nil, fmt.Errorf("fetching release %s for %s/%s: %w", tag, owner, repo, err)
	}
	return &rel, nil
}
