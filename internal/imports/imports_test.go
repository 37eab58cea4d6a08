package imports

import (
	"net/url"
	"testing"
)

const samplePage = `
<article>
  <h1>Keyword Research Done Right</h1>
  <p>Intro with a <a href="/blog/other-post">related post</a> and
     an <a href="https://research.example.org/study">external study</a>.</p>
  <h2>Tools</h2>
  <p>A fragment <a href="#tools">anchor</a> and a
     <a href="javascript:void(0)">junk link</a>.</p>
  <img src="https://cdn.example.com/chart.png" alt="chart">
  <h3>Summary</h3>
</article>`

func TestExtractStructure(t *testing.T) {
	pageURL, _ := url.Parse("https://example.com/blog/keyword-research")

	st, err := ExtractStructure(samplePage, pageURL)
	if err != nil {
		t.Fatalf("ExtractStructure() error = %v", err)
	}

	wantHeadings := []string{"Keyword Research Done Right", "Tools", "Summary"}
	if len(st.Headings) != len(wantHeadings) {
		t.Fatalf("Headings = %v, want %v", st.Headings, wantHeadings)
	}
	for i := range wantHeadings {
		if st.Headings[i] != wantHeadings[i] {
			t.Errorf("heading %d = %q, want %q", i, st.Headings[i], wantHeadings[i])
		}
	}

	// Relative link is internal; fragment and javascript links are dropped.
	if len(st.InternalLinks) != 1 || st.InternalLinks[0] != "/blog/other-post" {
		t.Errorf("InternalLinks = %v", st.InternalLinks)
	}
	if len(st.ExternalLinks) != 1 || st.ExternalLinks[0] != "https://research.example.org/study" {
		t.Errorf("ExternalLinks = %v", st.ExternalLinks)
	}
	if len(st.Images) != 1 || st.Images[0] != "https://cdn.example.com/chart.png" {
		t.Errorf("Images = %v", st.Images)
	}
}

func TestExtractStructureSameHostIsInternal(t *testing.T) {
	pageURL, _ := url.Parse("https://example.com/post")
	html := `<a href="https://example.com/about">about</a><a href="https://other.com/x">other</a>`

	st, err := ExtractStructure(html, pageURL)
	if err != nil {
		t.Fatalf("ExtractStructure() error = %v", err)
	}
	if len(st.InternalLinks) != 1 || len(st.ExternalLinks) != 1 {
		t.Errorf("links = %v / %v, want one of each", st.InternalLinks, st.ExternalLinks)
	}
}

func TestSlugFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/blog/keyword-research", "keyword-research"},
		{"/blog/keyword-research/", "keyword-research"},
		{"/posts/article.html", "article"},
		{"/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := slugFromPath(tt.path); got != tt.want {
			t.Errorf("slugFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
