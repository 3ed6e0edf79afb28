package github

import (
	"fmt"
	"net/url"
	"strconv"
)

// Repo is a repository search hit.
type Repo struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	HTMLURL     string `json:"html_url"`
}

// SearchRepos queries the repository search API, most-starred first.
func (c *Client) SearchRepos(query string, limit int) ([]Repo, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {strconv.Itoa(limit)},
	}
	var result struct {
		Items []Repo `json:"items"`
	}
	if err := c.getJSON(withQuery(c.url("search", "repositories"), q), &result); err != nil {
		return nil, fmt.Errorf("searching repositories: %w", err)
	}
	return result.Items, nil
}
