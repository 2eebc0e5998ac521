// Package github talks to GitHub's public read surfaces: the REST API
// for profile, repository, commit and event lookups, and the HTML
// stargazers listing for repositories.
//
// The API client wraps go-github behind a dual-strategy rate limiter
// (proactive token bucket plus reactive X-RateLimit-* tracking). The
// HTML lister uses a browser-profiled resty client and goquery, since
// the stargazers listing has no API equivalent that preserves listing
// order without authentication.
package github
