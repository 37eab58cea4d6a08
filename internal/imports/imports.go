package imports

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/seoscribe/seoscribe/internal/article"
	"github.com/seoscribe/seoscribe/internal/seo"
)

// Importer turns a live page into an article draft snapshot: readability
// extracts the main content, then the readable HTML is mined for the
// structural fields the scoring engine reads.
type Importer struct {
	client    *http.Client
	stopWords map[string]struct{}
}

// New creates an Importer.
func New(timeout time.Duration, stopWords []string) *Importer {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	words := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		words[w] = struct{}{}
	}
	return &Importer{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		stopWords: words,
	}
}

// ImportURL fetches a page and builds a draft snapshot from it.
func (im *Importer) ImportURL(ctx context.Context, rawURL string) (*article.Snapshot, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; seoscribe/1.0)")

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", rawURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("not an HTML page: %s", contentType)
	}

	art, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}

	snap := im.buildSnapshot(art, pageURL)
	log.Printf("Imported %q from %s (%d words)", snap.Step1.Title, pageURL.Host, seo.WordCount(snap.Content))
	return snap, nil
}

func (im *Importer) buildSnapshot(art readability.Article, pageURL *url.URL) *article.Snapshot {
	snap := &article.Snapshot{}
	snap.Step1.Title = strings.TrimSpace(art.Title)
	snap.Step1.MetaDescription = strings.TrimSpace(art.Excerpt)
	snap.Step1.URLSlug = slugFromPath(pageURL.Path)
	if snap.Step1.URLSlug == "" {
		snap.Step1.URLSlug = seo.Slugify(snap.Step1.Title, im.stopWords)
	}
	snap.Content = strings.TrimSpace(art.TextContent)

	st, err := ExtractStructure(art.Content, pageURL)
	if err != nil {
		log.Printf("Could not mine page structure: %v", err)
		return snap
	}

	snap.TableOfContents = st.Headings
	for _, h := range st.Headings {
		snap.Sections = append(snap.Sections, article.Section{Heading: h})
	}
	snap.Step2.InternalLinks = st.InternalLinks
	snap.Step2.ExternalLinks = st.ExternalLinks
	for _, img := range st.Images {
		snap.Images = append(snap.Images, article.Image{URL: img})
	}
	return snap
}

// ExtractStructure mines headings, links, and images out of readable HTML.
// Links sharing a host with pageURL count as internal.
func ExtractStructure(html string, pageURL *url.URL) (article.Structure, error) {
	var st article.Structure

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return st, fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		heading := strings.TrimSpace(sel.Text())
		if heading != "" {
			st.Headings = append(st.Headings, heading)
		}
	})

	baseHost := strings.ToLower(pageURL.Host)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		if u.Host == "" || strings.ToLower(u.Host) == baseHost {
			st.InternalLinks = append(st.InternalLinks, href)
		} else {
			st.ExternalLinks = append(st.ExternalLinks, href)
		}
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && strings.TrimSpace(src) != "" {
			st.Images = append(st.Images, src)
		}
	})

	return st, nil
}

// slugFromPath pulls the last non-empty path segment as the slug.
func slugFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		seg = strings.TrimSuffix(seg, ".html")
		seg = strings.TrimSuffix(seg, ".htm")
		if seg != "" {
			return seg
		}
	}
	return ""
}
