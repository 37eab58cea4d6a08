package seo

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// WordCount returns the number of word tokens in text.
func WordCount(text string) int {
	return len(Tokenize(text))
}

// ContainsPhrase reports whether the keyword phrase occurs in text on word
// boundaries, case-insensitively.
func ContainsPhrase(text, phrase string) bool {
	return phraseIndex(Tokenize(text), Tokenize(phrase)) >= 0
}

// CountPhrase counts non-overlapping occurrences of the keyword phrase in
// text, matching on word boundaries.
func CountPhrase(text, phrase string) int {
	tokens := Tokenize(text)
	target := Tokenize(phrase)
	if len(target) == 0 || len(tokens) < len(target) {
		return 0
	}

	count := 0
	for i := 0; i+len(target) <= len(tokens); {
		if matchAt(tokens, target, i) {
			count++
			i += len(target)
		} else {
			i++
		}
	}
	return count
}

// PhraseWordOffset returns the word offset of the first occurrence of the
// phrase in text, or -1 when absent.
func PhraseWordOffset(text, phrase string) int {
	return phraseIndex(Tokenize(text), Tokenize(phrase))
}

// Density returns the keyword density of phrase in text as a percentage:
// phrase occurrences divided by total word count.
func Density(text, phrase string) float64 {
	total := WordCount(text)
	if total == 0 {
		return 0
	}
	return float64(CountPhrase(text, phrase)) / float64(total) * 100
}

func phraseIndex(tokens, target []string) int {
	if len(target) == 0 || len(tokens) < len(target) {
		return -1
	}
	for i := 0; i+len(target) <= len(tokens); i++ {
		if matchAt(tokens, target, i) {
			return i
		}
	}
	return -1
}

func matchAt(tokens, target []string, at int) bool {
	for j, w := range target {
		if tokens[at+j] != w {
			return false
		}
	}
	return true
}

// Paragraphs splits markdown content into paragraph blocks, skipping
// heading lines.
func Paragraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(content, "\n\n")

	var paragraphs []string
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" || strings.HasPrefix(block, "#") {
			continue
		}
		paragraphs = append(paragraphs, block)
	}
	return paragraphs
}

// SentenceCount counts sentences in a paragraph by terminal punctuation.
// A paragraph without terminal punctuation counts as one sentence.
func SentenceCount(paragraph string) int {
	count := 0
	inTerminator := false
	for _, r := range paragraph {
		if r == '.' || r == '!' || r == '?' {
			if !inTerminator {
				count++
			}
			inTerminator = true
		} else {
			inTerminator = false
		}
	}
	if count == 0 && strings.TrimSpace(paragraph) != "" {
		return 1
	}
	return count
}

// Slugify turns a title into a URL slug, dropping stop words.
func Slugify(title string, stopWords map[string]struct{}) string {
	var kept []string
	for _, tok := range Tokenize(title) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, "-")
}

// SlugContainsKeyword reports whether every non-stop-word token of the
// keyword appears among the slug's tokens. The slug match is fuzzy: token
// order does not matter and stop words are ignored on both sides.
func SlugContainsKeyword(slug, keyword string, stopWords map[string]struct{}) bool {
	slugTokens := make(map[string]struct{})
	for _, tok := range strings.Split(strings.ToLower(slug), "-") {
		for _, t := range Tokenize(tok) {
			slugTokens[t] = struct{}{}
		}
	}

	matched := false
	for _, tok := range Tokenize(keyword) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, ok := slugTokens[tok]; !ok {
			return false
		}
		matched = true
	}
	return matched
}

// CountListTerms counts how many distinct terms from the list occur in
// text on word boundaries.
func CountListTerms(text string, terms []string) int {
	tokens := Tokenize(text)
	present := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		present[t] = struct{}{}
	}

	count := 0
	for _, term := range terms {
		target := Tokenize(term)
		if len(target) == 1 {
			if _, ok := present[target[0]]; ok {
				count++
			}
			continue
		}
		if phraseIndex(tokens, target) >= 0 {
			count++
		}
	}
	return count
}
