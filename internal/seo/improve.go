package seo

import (
	"strings"
	"unicode"

	"github.com/seoscribe/seoscribe/internal/article"
)

// Improve returns a suggested replacement value for the field governed by
// the given criterion. When no improvement function is registered the
// current field value is returned unchanged, never an empty fallback.
// Suggestions are deterministic; the AI optimization path lives behind the
// ContentImprover interface in the optimize package.
func (r *Registry) Improve(id CriterionID, snap *article.Snapshot) string {
	if snap == nil {
		snap = &article.Snapshot{}
	}

	fn, ok := r.improves[id]
	if !ok {
		return r.currentValue(id, snap)
	}
	return fn(snap)
}

// CanImprove reports whether a deterministic improvement is registered
// for the criterion.
func (r *Registry) CanImprove(id CriterionID) bool {
	_, ok := r.improves[id]
	return ok
}

// ImprovedField returns the snapshot field an improvement for the
// criterion should be written to.
func (r *Registry) ImprovedField(id CriterionID) string {
	c, ok := r.byID[id]
	if !ok || len(c.InputKeys) == 0 {
		return ""
	}
	return c.InputKeys[0]
}

func (r *Registry) currentValue(id CriterionID, snap *article.Snapshot) string {
	key := r.ImprovedField(id)
	if key == "" {
		return ""
	}
	return snap.FieldString(key)
}

func (r *Registry) improveTitleKeyword(snap *article.Snapshot) string {
	title := strings.TrimSpace(snap.Step1.Title)
	kw := strings.TrimSpace(snap.Step1.PrimaryKeyword)
	if kw == "" {
		return title
	}
	if ContainsPhrase(title, kw) {
		return title
	}
	if title == "" {
		return titleCase(kw)
	}
	return titleCase(kw) + ": " + title
}

func (r *Registry) improveTitleStart(snap *article.Snapshot) string {
	title := strings.TrimSpace(snap.Step1.Title)
	kw := strings.TrimSpace(snap.Step1.PrimaryKeyword)
	if kw == "" || title == "" {
		return title
	}
	if PhraseWordOffset(title, kw) >= 0 && PhraseWordOffset(title, kw) < r.th.TitleKeywordWindow {
		return title
	}

	remainder := removePhrase(title, kw)
	if remainder == "" {
		return titleCase(kw)
	}
	return titleCase(kw) + ": " + remainder
}

func (r *Registry) improveMetaKeyword(snap *article.Snapshot) string {
	meta := strings.TrimSpace(snap.Step1.MetaDescription)
	kw := strings.TrimSpace(snap.Step1.PrimaryKeyword)
	if kw == "" || ContainsPhrase(meta, kw) {
		return meta
	}

	lead := "Discover " + strings.ToLower(kw) + "."
	if meta == "" {
		desc := strings.TrimSpace(snap.Step1.ContentDescription)
		if desc != "" {
			return lead + " " + desc
		}
		return lead
	}
	return lead + " " + meta
}

func (r *Registry) improveMetaLength(snap *article.Snapshot) string {
	meta := strings.TrimSpace(snap.Step1.MetaDescription)
	max := r.th.MetaMaxChars

	if len([]rune(meta)) > max {
		return trimAtWord(meta, max)
	}
	if len([]rune(meta)) >= r.th.MetaMinChars {
		return meta
	}

	// Too short: extend with the content description when available.
	desc := strings.TrimSpace(snap.Step1.ContentDescription)
	if desc == "" {
		return meta
	}
	combined := strings.TrimSpace(meta + " " + desc)
	if len([]rune(combined)) > max {
		combined = trimAtWord(combined, max)
	}
	return combined
}

func (r *Registry) improveSlug(snap *article.Snapshot) string {
	kw := strings.TrimSpace(snap.Step1.PrimaryKeyword)
	title := strings.TrimSpace(snap.Step1.Title)
	if kw == "" {
		if snap.Step1.URLSlug != "" {
			return snap.Step1.URLSlug
		}
		return Slugify(title, r.stopWords)
	}

	kwSlug := Slugify(kw, r.stopWords)
	titleSlug := Slugify(title, r.stopWords)

	// Keyword tokens lead; drop duplicates coming from the title.
	seen := make(map[string]struct{})
	var parts []string
	for _, t := range strings.Split(kwSlug, "-") {
		if t == "" {
			continue
		}
		seen[t] = struct{}{}
		parts = append(parts, t)
	}
	for _, t := range strings.Split(titleSlug, "-") {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		parts = append(parts, t)
		if len(parts) >= 6 {
			break
		}
	}
	return strings.Join(parts, "-")
}

func (r *Registry) improveKeywordEarly(snap *article.Snapshot) string {
	content := snap.Content
	kw := strings.TrimSpace(snap.Step1.PrimaryKeyword)
	if kw == "" || strings.TrimSpace(content) == "" {
		return content
	}

	total := WordCount(content)
	window := int(float64(total) * r.th.EarlyContentFraction)
	if window < 1 {
		window = 1
	}
	if offset := PhraseWordOffset(content, kw); offset >= 0 && offset < window {
		return content
	}

	intro := "This guide covers everything you need to know about " + strings.ToLower(kw) + "."
	return intro + "\n\n" + content
}

// titleCase uppercases the first letter of every word in the phrase.
func titleCase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// removePhrase removes the first word-boundary occurrence of phrase from
// text, preserving the remaining words.
func removePhrase(text, phrase string) string {
	words := strings.Fields(text)
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.Join(Tokenize(w), "")
	}
	target := Tokenize(phrase)

	at := phraseIndex(lower, target)
	if at < 0 {
		return strings.TrimSpace(text)
	}
	remaining := append([]string{}, words[:at]...)
	remaining = append(remaining, words[at+len(target):]...)
	return strings.TrimSpace(strings.Join(remaining, " "))
}

// trimAtWord cuts s to at most max runes, backing up to the last word
// boundary.
func trimAtWord(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
