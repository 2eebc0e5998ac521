package github

import (
	"github.com/go-resty/resty/v2"
)

// browserUserAgent is sent on HTML requests. The listing and patch
// pages serve a stripped-down page to unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// NewHTMLClient creates a resty client profiled like a browser for the
// HTML surfaces (stargazers listing, commit patches).
func NewHTMLClient() *resty.Client {
	return resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", browserUserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
}
