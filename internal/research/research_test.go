package research

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestFilterEntries(t *testing.T) {
	entries := []Entry{
		{URL: "https://a.com/1", Title: "Link Building in 2026", Summary: ""},
		{URL: "https://a.com/2", Title: "Something else", Summary: "A deep dive into link building tactics."},
		{URL: "https://a.com/3", Title: "Linkedin tips", Summary: "Nothing relevant."},
		{URL: "https://a.com/4", Title: "Unrelated", Summary: "Unrelated."},
	}

	got := FilterEntries(entries, "link building")
	if len(got) != 2 {
		t.Fatalf("FilterEntries() kept %d entries, want 2", len(got))
	}
	if got[0].URL != "https://a.com/1" || got[1].URL != "https://a.com/2" {
		t.Errorf("kept wrong entries: %v", got)
	}
}

func TestParseItem(t *testing.T) {
	published := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "  SEO News  ",
		Link:            "https://example.com/news",
		Description:     "<p>Some &amp; summary</p>",
		PublishedParsed: &published,
	}

	entry := parseItem(item, "Moz")
	if entry == nil {
		t.Fatal("parseItem() = nil, want entry")
	}
	if entry.Title != "SEO News" {
		t.Errorf("Title = %q", entry.Title)
	}
	if entry.PublishedDate != "2026-08-20" {
		t.Errorf("PublishedDate = %q", entry.PublishedDate)
	}
	if entry.Summary != "Some & summary" {
		t.Errorf("Summary = %q", entry.Summary)
	}
	if entry.Source != "Moz" {
		t.Errorf("Source = %q", entry.Source)
	}
}

func TestParseItemSkipsIncomplete(t *testing.T) {
	if got := parseItem(&gofeed.Item{Title: "No link"}, "X"); got != nil {
		t.Errorf("item without URL: got %v, want nil", got)
	}
	if got := parseItem(&gofeed.Item{Link: "https://a.com"}, "X"); got != nil {
		t.Errorf("item without title: got %v, want nil", got)
	}
}

func TestIsWithinWindow(t *testing.T) {
	cutoff := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"recent", "2026-08-28", true},
		{"on cutoff", "2026-08-24", true},
		{"too old", "2026-08-20", false},
		{"missing date passes", "", true},
		{"unparseable date passes", "yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWithinWindow(tt.date, cutoff); got != tt.want {
				t.Errorf("isWithinWindow(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"Plain text", "Plain text"},
		{"a &lt; b &amp; c &gt; d", "a < b & c > d"},
		{"  spaced\n\nout  ", "spaced out"},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSourceNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://moz.com/posts/rss/blog", "Moz"},
		{"https://feeds.searchengineland.com/feed", "Searchengineland"},
		{"https://www.example.co.uk/rss", "Co"},
	}
	for _, tt := range tests {
		if got := sourceNameFromURL(tt.url); got != tt.want {
			t.Errorf("sourceNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
