package github

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// Ensure StargazerLister implements the interface.
var _ driven.StargazerLister = (*StargazerLister)(nil)

// userSelectors are tried in order against a listing page. GitHub has
// shipped several stargazer layouts; the first selector with matches wins.
var userSelectors = []string{
	".follow-list-item",
	`a[data-hovercard-type="user"]`,
	"li.mb-2.mr-3.ml-0",
	`div.d-inline-block a[href^="/"]`,
}

// StargazerLister fetches and parses pages of the HTML stargazers listing.
type StargazerLister struct {
	http    *resty.Client
	baseURL string // overridden in tests
	retry   RetryConfig
}

// NewStargazerLister creates a lister over the shared HTML client.
func NewStargazerLister(http *resty.Client, retry RetryConfig) *StargazerLister {
	return &StargazerLister{
		http:    http,
		baseURL: "https://github.com",
		retry:   retry,
	}
}

// FetchPage fetches and parses one listing page (1-indexed).
func (l *StargazerLister) FetchPage(ctx context.Context, repo domain.RepoRef, page int) (*driven.StargazerPage, error) {
	url := fmt.Sprintf("%s/%s/%s/stargazers?page=%d", l.baseURL, repo.Owner, repo.Name, page)

	var body []byte
	err := withRetries(ctx, l.retry, fmt.Sprintf("fetch stargazers page %d", page), func() error {
		resp, err := l.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return &APIError{StatusCode: resp.StatusCode(), Message: "unexpected listing status", URL: url}
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ParseStargazersPage(body)
}

// ParseStargazersPage extracts stargazers and the next-page hint from a
// listing page.
func ParseStargazersPage(body []byte) (*driven.StargazerPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	page := &driven.StargazerPage{
		HasNext: hasNextLink(doc),
	}

	seen := make(map[string]bool)
	for _, selector := range userSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		logger.Debug("stargazers: selector %q matched %d elements", selector, sel.Length())

		sel.Each(func(_ int, el *goquery.Selection) {
			username := extractUsername(el)
			if username == "" || seen[username] {
				return
			}
			s := domain.NewStargazer(username)
			if s.Validate() != nil {
				return
			}
			seen[username] = true
			page.Users = append(page.Users, s)
		})
		break
	}

	return page, nil
}

// extractUsername pulls a username out of a matched element: the element
// itself when it is a profile link, otherwise the first profile link
// inside it.
func extractUsername(el *goquery.Selection) string {
	if goquery.NodeName(el) == "a" {
		if href, ok := el.Attr("href"); ok {
			return usernameFromHref(href)
		}
	}

	link := el.Find(`a[href^="/"]`).First()
	if href, ok := link.Attr("href"); ok {
		if u := usernameFromHref(href); u != "" {
			return u
		}
	}

	return strings.TrimSpace(el.Text())
}

// usernameFromHref turns "/octocat" into "octocat". Paths with further
// segments are repositories or app routes, not users.
func usernameFromHref(href string) string {
	trimmed := strings.Trim(href, "/")
	if trimmed == "" || strings.Contains(trimmed, "/") {
		return ""
	}
	return trimmed
}

// hasNextLink reports whether the page advertises a following page.
func hasNextLink(doc *goquery.Document) bool {
	next := doc.Find(`a.next_page, a[rel="next"]`).First()
	if next.Length() == 0 {
		next = doc.Find("div.pagination a").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.TrimSpace(s.Text()) == "Next"
		}).First()
	}
	if next.Length() == 0 {
		return false
	}
	class, _ := next.Attr("class")
	return !strings.Contains(class, "disabled")
}
