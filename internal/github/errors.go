package github

import (
	"errors"
	"fmt"
)

// Common GitHub API errors.
var (
	// ErrNotFound is returned when a repo, release or tag does not exist.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited is returned on 403 responses. Anonymous clients hit
	// the limit quickly; a token raises it.
	ErrRateLimited = errors.New("rate limited — set GITHUB_TOKEN to raise the limit")
	// ErrInvalidSpec is returned for repo specs that are neither
	// owner/repo nor a github.com URL.
	ErrInvalidSpec = errors.New("invalid repository spec")
)

// APIError covers any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github API error %d", e.Status)
	}
	return fmt.Sprintf("github API error %d: %s", e.Status, e.Message)
}
