package github

import (
	"fmt"
	"regexp"
	"strings"
)

var urlSpecRE = regexp.MustCompile(`^(?:https?://)?github\.com/([^/\s]+)/([^/\s]+?)(?:\.git)?/?$`)

// ParseRepoSpec extracts owner and repo from a user-supplied spec.
// Accepted forms:
//
//	owner/repo
//	https://github.com/owner/repo
//	github.com/owner/repo.git
func ParseRepoSpec(spec string) (owner, repo string, err error) {
	spec = strings.TrimSpace(spec)
	if m := urlSpecRE.FindStringSubmatch(spec); m != nil {
		return m[1], m[2], nil
	}
	parts := strings.Split(spec, "/")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return parts[0], parts[1], nil
	}
	return "", "", fmt.Errorf("%w: %q (expected owner/repo or a github.com URL)", ErrInvalidSpec, spec)
}
