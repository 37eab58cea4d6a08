package seo

import (
	"strings"
	"testing"
)

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   bool
	}{
		{"exact match", "seo tips", "seo tips", true},
		{"case insensitive", "Best SEO Tips Ever", "seo tips", true},
		{"word boundaries", "paste optimization", "seo", false},
		{"punctuation split", "Learn SEO, tips included", "seo tips", false},
		{"multi word inside", "a guide to link building today", "link building", true},
		{"empty phrase", "some text", "", false},
		{"empty text", "", "seo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsPhrase(tt.text, tt.phrase); got != tt.want {
				t.Errorf("ContainsPhrase(%q, %q) = %v, want %v", tt.text, tt.phrase, got, tt.want)
			}
		})
	}
}

func TestCountPhraseNonOverlapping(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   int
	}{
		{"single", "seo is fun", "seo", 1},
		{"multiple", "seo here, seo there, and seo everywhere", "seo", 3},
		{"phrase twice", "link building and more link building", "link building", 2},
		{"no overlap", "go go go", "go go", 1},
		{"absent", "nothing here", "seo", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountPhrase(tt.text, tt.phrase); got != tt.want {
				t.Errorf("CountPhrase(%q, %q) = %d, want %d", tt.text, tt.phrase, got, tt.want)
			}
		})
	}
}

func TestPhraseWordOffset(t *testing.T) {
	if got := PhraseWordOffset("SEO Tips for Beginners", "seo tips"); got != 0 {
		t.Errorf("offset = %d, want 0", got)
	}
	if got := PhraseWordOffset("Beginners Guide to SEO Tips", "seo tips"); got != 3 {
		t.Errorf("offset = %d, want 3", got)
	}
	if got := PhraseWordOffset("no match here", "seo"); got != -1 {
		t.Errorf("offset = %d, want -1", got)
	}
}

func TestDensity(t *testing.T) {
	// 10 occurrences in 1000 words = 1.0%
	text := strings.Repeat("word ", 990) + strings.Repeat("seo ", 10)
	if got := Density(text, "seo"); got != 1.0 {
		t.Errorf("Density = %f, want 1.0", got)
	}
	if got := Density("", "seo"); got != 0 {
		t.Errorf("Density on empty text = %f, want 0", got)
	}
}

func TestParagraphsSkipsHeadings(t *testing.T) {
	content := "# Heading\n\nFirst paragraph.\n\n## Another heading\n\nSecond paragraph.\n\n"
	got := Paragraphs(content)
	want := []string{"First paragraph.", "Second paragraph."}
	if len(got) != len(want) {
		t.Fatalf("Paragraphs() returned %d blocks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		name      string
		paragraph string
		want      int
	}{
		{"simple", "One. Two. Three.", 3},
		{"ellipsis counts once", "Wait... what?", 2},
		{"no terminator", "a fragment without punctuation", 1},
		{"exclamations", "Wow! Really? Yes.", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SentenceCount(tt.paragraph); got != tt.want {
				t.Errorf("SentenceCount(%q) = %d, want %d", tt.paragraph, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	stop := map[string]struct{}{"the": {}, "for": {}, "a": {}}
	if got := Slugify("The Best Guide for SEO", stop); got != "best-guide-seo" {
		t.Errorf("Slugify = %q, want %q", got, "best-guide-seo")
	}
}

func TestSlugContainsKeyword(t *testing.T) {
	stop := map[string]struct{}{"the": {}, "for": {}}
	tests := []struct {
		name    string
		slug    string
		keyword string
		want    bool
	}{
		{"exact", "seo-tips", "seo tips", true},
		{"order ignored", "tips-seo-guide", "seo tips", true},
		{"stop words ignored", "seo-tips", "the seo tips", true},
		{"missing token", "seo-guide", "seo tips", false},
		{"empty slug", "", "seo", false},
		{"only stop words", "seo-tips", "the for", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugContainsKeyword(tt.slug, tt.keyword, stop); got != tt.want {
				t.Errorf("SlugContainsKeyword(%q, %q) = %v, want %v", tt.slug, tt.keyword, got, tt.want)
			}
		})
	}
}

func TestCountListTerms(t *testing.T) {
	terms := []string{"ultimate", "proven", "step by step"}
	if got := CountListTerms("The Ultimate Step by Step Guide", terms); got != 2 {
		t.Errorf("CountListTerms = %d, want 2", got)
	}
	if got := CountListTerms("A plain title", terms); got != 0 {
		t.Errorf("CountListTerms = %d, want 0", got)
	}
}
