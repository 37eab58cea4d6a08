package seo

import (
	"strings"
	"testing"

	"github.com/seoscribe/seoscribe/internal/article"
)

func TestImproveIdentityFallback(t *testing.T) {
	r := DefaultRegistry()

	// ContentLength has no improvement function; the current content must
	// come back unchanged.
	snap := snapshotWith("A Title", "seo", "The current content body.")
	if got := r.Improve(ContentLength, snap); got != snap.Content {
		t.Errorf("Improve(ContentLength) = %q, want the unchanged content", got)
	}

	if r.CanImprove(ContentLength) {
		t.Error("CanImprove(ContentLength) = true, want false")
	}
	if !r.CanImprove(KeywordInTitle) {
		t.Error("CanImprove(KeywordInTitle) = false, want true")
	}
}

func TestImproveNilSnapshot(t *testing.T) {
	r := DefaultRegistry()
	if got := r.Improve(KeywordInTitle, nil); got != "" {
		t.Errorf("Improve with nil snapshot = %q, want empty", got)
	}
}

func TestImproveTitleKeyword(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		name    string
		title   string
		keyword string
		want    string
	}{
		{"prepends keyword", "A Guide for Newcomers", "link building", "Link Building: A Guide for Newcomers"},
		{"already present", "Link Building Basics", "link building", "Link Building Basics"},
		{"empty title", "", "link building", "Link Building"},
		{"no keyword", "A Guide", "", "A Guide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Improve(KeywordInTitle, snapshotWith(tt.title, tt.keyword, ""))
			if got != tt.want {
				t.Errorf("Improve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImproveTitleStart(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		name    string
		title   string
		keyword string
		want    string
	}{
		{"moves keyword to front", "Beginners Guide to SEO Tips", "seo tips", "Seo Tips: Beginners Guide to"},
		{"already early", "SEO Tips for Beginners", "seo tips", "SEO Tips for Beginners"},
		{"keyword absent", "A Plain Guide", "seo tips", "Seo Tips: A Plain Guide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Improve(KeywordAtTitleStart, snapshotWith(tt.title, tt.keyword, ""))
			if got != tt.want {
				t.Errorf("Improve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImproveMetaKeyword(t *testing.T) {
	r := DefaultRegistry()

	snap := snapshotWith("", "seo tips", "")
	snap.Step1.MetaDescription = "Learn how to rank higher."
	got := r.Improve(KeywordInMeta, snap)
	if !ContainsPhrase(got, "seo tips") {
		t.Errorf("improved meta %q does not mention the keyword", got)
	}
	if !strings.Contains(got, "Learn how to rank higher.") {
		t.Errorf("improved meta %q lost the original text", got)
	}

	// Already satisfied: unchanged.
	snap.Step1.MetaDescription = "The best seo tips around."
	if got := r.Improve(KeywordInMeta, snap); got != snap.Step1.MetaDescription {
		t.Errorf("Improve changed a satisfying meta: %q", got)
	}
}

func TestImproveMetaLengthTrimsLongMeta(t *testing.T) {
	r := DefaultRegistry()

	snap := &article.Snapshot{}
	snap.Step1.MetaDescription = strings.Repeat("wordy ", 50) // 300 chars
	got := r.Improve(MetaLength, snap)
	if n := len([]rune(got)); n > DefaultThresholds().MetaMaxChars {
		t.Errorf("trimmed meta is %d chars, want at most %d", n, DefaultThresholds().MetaMaxChars)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("trimmed meta %q has trailing space", got)
	}
}

func TestImproveMetaLengthExtendsShortMeta(t *testing.T) {
	r := DefaultRegistry()

	snap := &article.Snapshot{}
	snap.Step1.MetaDescription = "Too short."
	snap.Step1.ContentDescription = "A deep dive into keyword research, on-page optimization, and content strategy for growing organic traffic."
	got := r.Improve(MetaLength, snap)
	if len(got) <= len(snap.Step1.MetaDescription) {
		t.Errorf("short meta was not extended: %q", got)
	}
}

func TestImproveSlug(t *testing.T) {
	r := DefaultRegistry()

	snap := snapshotWith("The Ultimate Guide to Ranking Higher in Search Engines", "link building", "")
	got := r.Improve(KeywordInSlug, snap)

	if !strings.HasPrefix(got, "link-building") {
		t.Errorf("slug %q does not lead with the keyword", got)
	}
	if parts := strings.Split(got, "-"); len(parts) > 6 {
		t.Errorf("slug %q has %d parts, want at most 6", got, len(parts))
	}
	if !SlugContainsKeyword(got, "link building", r.stopWords) {
		t.Errorf("improved slug %q fails its own criterion", got)
	}
}

func TestImproveKeywordEarly(t *testing.T) {
	r := DefaultRegistry()

	late := strings.Repeat("word ", 500) + "finally some seo tips here"
	snap := snapshotWith("", "seo tips", late)
	got := r.Improve(KeywordEarly, snap)

	if offset := PhraseWordOffset(got, "seo tips"); offset < 0 || offset >= 15 {
		t.Errorf("keyword offset after improvement = %d, want early", offset)
	}
	if !strings.Contains(got, late) {
		t.Error("improvement dropped the original content")
	}

	// Already early: unchanged.
	early := "Great seo tips follow. " + strings.Repeat("word ", 100)
	snap = snapshotWith("", "seo tips", early)
	if got := r.Improve(KeywordEarly, snap); got != early {
		t.Error("Improve changed content that already satisfies the criterion")
	}
}

func TestImprovedField(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		id   CriterionID
		want string
	}{
		{KeywordInTitle, "title"},
		{KeywordInMeta, "metaDescription"},
		{KeywordInSlug, "urlSlug"},
		{KeywordEarly, "content"},
		{999, ""},
	}
	for _, tt := range tests {
		if got := r.ImprovedField(tt.id); got != tt.want {
			t.Errorf("ImprovedField(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
