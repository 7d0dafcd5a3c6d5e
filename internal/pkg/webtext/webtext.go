// Package webtext fetches a web page and strips it down to readable text
// for URL-imported study materials.
package webtext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const maxBodyBytes = 5 * 1024 * 1024

var (
	scriptRe = regexp.MustCompile(`(?is)<(script|style|noscript|head)[^>]*>.*?</(script|style|noscript|head)>`)
	blockRe  = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|section|article)>`)
	breakRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]+>`)
	blankRe  = regexp.MustCompile(`\n{3,}`)
	spaceRe  = regexp.MustCompile(`[ \t]+`)
)

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads the page and returns its visible text content.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; StudyMateBot/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := StripHTML(string(body))
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("fetch %s: no extractable text", url)
	}
	return text, nil
}

// StripHTML removes markup and collapses whitespace. Block-level tags become
// newlines so paragraph structure survives for the chunker.
func StripHTML(html string) string {
	html = scriptRe.ReplaceAllString(html, "")
	html = blockRe.ReplaceAllString(html, "\n\n")
	html = breakRe.ReplaceAllString(html, "\n")
	html = tagRe.ReplaceAllString(html, " ")

	html = strings.NewReplacer(
		"&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">",
		"&quot;", `"`, "&#39;", "'",
	).Replace(html)

	html = spaceRe.ReplaceAllString(html, " ")
	lines := strings.Split(html, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	html = strings.Join(lines, "\n")
	html = blankRe.ReplaceAllString(html, "\n\n")
	return strings.TrimSpace(html)
}
