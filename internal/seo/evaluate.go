package seo

import (
	"fmt"
	"log"

	"github.com/seoscribe/seoscribe/internal/article"
)

// Evaluate runs the evaluation function for one criterion against a
// snapshot. Unknown ids yield a pending zero-score result, never an error.
// Evaluation is pure: the same snapshot always produces the same result.
func (r *Registry) Evaluate(id CriterionID, snap *article.Snapshot) Result {
	fn, ok := r.evals[id]
	if !ok {
		return Result{Status: StatusPending, Score: 0, Message: fmt.Sprintf("No rule registered for criterion %d", id)}
	}
	if snap == nil {
		snap = &article.Snapshot{}
	}
	return fn(snap)
}

// Report aggregates the results of evaluating every registered criterion.
type Report struct {
	Results    map[CriterionID]Result
	Order      []CriterionID
	TotalScore int
	MaxScore   int
	Categories map[Category]CategoryScore
}

// CategoryScore is the score rollup for one id-hundred group.
type CategoryScore struct {
	Score int
	Max   int
}

// Percent returns the overall score as a 0-100 percentage.
func (rep *Report) Percent() int {
	if rep.MaxScore == 0 {
		return 0
	}
	return rep.TotalScore * 100 / rep.MaxScore
}

// EvaluateAll evaluates every registered criterion in id order. A panic in
// one evaluation function is isolated: that criterion reports an error
// result and the remaining criteria still run.
func (r *Registry) EvaluateAll(snap *article.Snapshot) *Report {
	if snap == nil {
		snap = &article.Snapshot{}
	}

	rep := &Report{
		Results:    make(map[CriterionID]Result, len(r.criteria)),
		Categories: make(map[Category]CategoryScore),
	}

	for _, c := range r.criteria {
		result := r.safeEvaluate(c.ID, snap)
		rep.Results[c.ID] = result
		rep.Order = append(rep.Order, c.ID)
		rep.TotalScore += result.Score
		rep.MaxScore += c.Weight

		cat := rep.Categories[c.ID.Category()]
		cat.Score += result.Score
		cat.Max += c.Weight
		rep.Categories[c.ID.Category()] = cat
	}

	return rep
}

func (r *Registry) safeEvaluate(id CriterionID, snap *article.Snapshot) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Criterion %d evaluation panicked: %v", id, rec)
			result = Result{Status: StatusError, Score: 0, Message: "Evaluation failed unexpectedly"}
		}
	}()
	return r.Evaluate(id, snap)
}

// result derives the status from the score against the criterion weight:
// full weight is success, zero is error, anything between is warning.
func (r *Registry) result(id CriterionID, score int, message string) Result {
	weight := r.byID[id].Weight
	if score < 0 {
		score = 0
	}
	if score > weight {
		score = weight
	}

	status := StatusWarning
	switch {
	case score == weight:
		status = StatusSuccess
	case score == 0:
		status = StatusError
	}
	return Result{Status: status, Score: score, Message: message}
}

func (r *Registry) partial(id CriterionID) int {
	return r.byID[id].Weight / 2
}

// --- Title & meta (100s) ---

func (r *Registry) evalKeywordInTitle(snap *article.Snapshot) Result {
	kw := snap.Step1.PrimaryKeyword
	if kw == "" {
		return r.result(KeywordInTitle, 0, "Set a primary keyword first")
	}
	if ContainsPhrase(snap.Step1.Title, kw) {
		return r.result(KeywordInTitle, r.byID[KeywordInTitle].Weight, "Primary keyword found in the title")
	}
	return r.result(KeywordInTitle, 0, "Title does not contain the primary keyword")
}

func (r *Registry) evalKeywordInMeta(snap *article.Snapshot) Result {
	kw := snap.Step1.PrimaryKeyword
	if kw == "" {
		return r.result(KeywordInMeta, 0, "Set a primary keyword first")
	}
	if ContainsPhrase(snap.Step1.MetaDescription, kw) {
		return r.result(KeywordInMeta, r.byID[KeywordInMeta].Weight, "Primary keyword found in the meta description")
	}
	return r.result(KeywordInMeta, 0, "Meta description does not contain the primary keyword")
}

func (r *Registry) evalKeywordInSlug(snap *article.Snapshot) Result {
	kw := snap.Step1.PrimaryKeyword
	if kw == "" {
		return r.result(KeywordInSlug, 0, "Set a primary keyword first")
	}
	if SlugContainsKeyword(snap.Step1.URLSlug, kw, r.stopWords) {
		return r.result(KeywordInSlug, r.byID[KeywordInSlug].Weight, "URL slug contains the primary keyword")
	}
	return r.result(KeywordInSlug, 0, "URL slug does not contain the primary keyword")
}

func (r *Registry) evalTitleLength(snap *article.Snapshot) Result {
	n := len([]rune(snap.Step1.Title))
	min, max := r.th.TitleMinChars, r.th.TitleMaxChars
	switch {
	case n == 0:
		return r.result(TitleLength, 0, "Title is empty")
	case n >= min && n <= max:
		return r.result(TitleLength, r.byID[TitleLength].Weight, fmt.Sprintf("Title length %d is within %d-%d characters", n, min, max))
	case n < min:
		return r.result(TitleLength, r.partial(TitleLength), fmt.Sprintf("Title is short: %d characters, aim for at least %d", n, min))
	default:
		return r.result(TitleLength, r.partial(TitleLength), fmt.Sprintf("Title is long: %d characters, aim for at most %d", n, max))
	}
}

func (r *Registry) evalMetaLength(snap *article.Snapshot) Result {
	n := len([]rune(snap.Step1.MetaDescription))
	min, max := r.th.MetaMinChars, r.th.MetaMaxChars
	switch {
	case n == 0:
		return r.result(MetaLength, 0, "Meta description is empty")
	case n >= min && n <= max:
		return r.result(MetaLength, r.byID[MetaLength].Weight, fmt.Sprintf("Meta description length %d is within %d-%d characters", n, min, max))
	case n < min:
		return r.result(MetaLength, r.partial(MetaLength), fmt.Sprintf("Meta description is short: %d characters, aim for at least %d", n, min))
	default:
		return r.result(MetaLength, r.partial(MetaLength), fmt.Sprintf("Meta description is long: %d characters, aim for at most %d", n, max))
	}
}

func (r *Registry) evalSecondaryKeywords(snap *article.Snapshot) Result {
	keywords := snap.Step1.SecondaryKeywords
	if len(keywords) == 0 {
		return r.result(SecondaryKeywordUsage, 0, "No secondary keywords defined")
	}

	used := 0
	for _, kw := range keywords {
		if ContainsPhrase(snap.Content, kw) {
			used++
		}
	}
	switch {
	case used*2 >= len(keywords):
		return r.result(SecondaryKeywordUsage, r.byID[SecondaryKeywordUsage].Weight, fmt.Sprintf("%d of %d secondary keywords used in the content", used, len(keywords)))
	case used > 0:
		return r.result(SecondaryKeywordUsage, r.partial(SecondaryKeywordUsage), fmt.Sprintf("Only %d of %d secondary keywords used in the content", used, len(keywords)))
	default:
		return r.result(SecondaryKeywordUsage, 0, "None of the secondary keywords appear in the content")
	}
}

// --- Content structure (200s) ---

func (r *Registry) evalTOCHasKeyword(snap *article.Snapshot) Result {
	toc := snap.TableOfContents
	if len(toc) == 0 {
		return r.result(TOCHasKeyword, 0, "No table of contents")
	}
	kw := snap.Step1.PrimaryKeyword
	if kw == "" {
		return r.result(TOCHasKeyword, r.partial(TOCHasKeyword), "Table of contents exists, but no primary keyword is set")
	}
	for _, entry := range toc {
		if ContainsPhrase(entry, kw) {
			return r.result(TOCHasKeyword, r.byID[TOCHasKeyword].Weight, "Table of contents mentions the primary keyword")
		}
	}
	return r.result(TOCHasKeyword, r.partial(TOCHasKeyword), "No table of contents entry mentions the primary keyword")
}

func (r *Registry) evalKeywordDensity(snap *article.Snapshot) Result {
	kw := snap.Step1.PrimaryKeyword
	if kw == "" || WordCount(snap.Content) == 0 {
		return r.result(KeywordDensity, 0, "Needs content and a primary keyword")
	}

	d := Density(snap.Content, kw)
	th := r.th
	switch {
	case d >= th.DensityMin && d <= th.DensityMax:
		return r.result(KeywordDensity, r.byID[KeywordDensity].Weight, fmt.Sprintf("Keyword density %.1f%% is within the %.1f-%.1f%% target", d, th.DensityMin, th.DensityMax))
	case d >= th.DensityPartialMin && d < th.DensityMin:
		return r.result(KeywordDensity, r.partial(KeywordDensity), fmt.Sprintf("Keyword density %.1f%% is slightly below the %.1f%% target", d, th.DensityMin))
	case d > th.DensityMax && d <= th.DensityPartialMax:
		return r.result(KeywordDensity, r.partial(KeywordDensity), fmt.Sprintf("Keyword density %.1f%% is slightly above the %.1f%% target", d, th.DensityMax))
	case d > th.DensityPartialMax:
		return r.result(KeywordDensity, 0, fmt.Sprintf("Keyword density %.1f%% reads as keyword stuffing", d))
	default:
		return r.result(KeywordDensity, 0, fmt.Sprintf("Keyword density %.1f%% is too low", d))
	}
}

func (r *Registry) evalContentLength(snap *article.Snapshot) Result {
	words := WordCount(snap.Content)
	switch {
	case words >= r.th.MinWords:
		return r.result(ContentLength, r.byID[ContentLength].Weight, fmt.Sprintf("Content has %d words", words))
	case words >= r.th.PartialWords:
		return r.result(ContentLength, r.partial(ContentLength), fmt.Sprintf("Content has %d words, aim for at least %d", words, r.th.MinWords))
	default:
		return r.result(ContentLength, 0, fmt.Sprintf("Content is too short: %d words, aim for at least %d", words, r.th.MinWords))
	}
}

func (r *Registry) evalKeywordEarly(snap *article.Snapshot) Result {
	kw := snap.Step1.PrimaryKeyword
	total := WordCount(snap.Content)
	if kw == "" || total == 0 {
		return r.result(KeywordEarly, 0, "Needs content and a primary keyword")
	}

	offset := PhraseWordOffset(snap.Content, kw)
	if offset < 0 {
		return r.result(KeywordEarly, 0, "Primary keyword does not appear in the content")
	}

	window := int(float64(total) * r.th.EarlyContentFraction)
	if window < 1 {
		window = 1
	}
	if offset < window {
		return r.result(KeywordEarly, r.byID[KeywordEarly].Weight, "Primary keyword appears early in the content")
	}
	return r.result(KeywordEarly, r.partial(KeywordEarly), "Primary keyword appears too late in the content")
}

func (r *Registry) evalParagraphLength(snap *article.Snapshot) Result {
	paragraphs := Paragraphs(snap.Content)
	if len(paragraphs) == 0 {
		return r.result(ParagraphLength, 0, "No paragraphs to check")
	}

	over := 0
	for _, p := range paragraphs {
		if SentenceCount(p) > r.th.MaxSentencesPerParagraph {
			over++
		}
	}
	switch {
	case over == 0:
		return r.result(ParagraphLength, r.byID[ParagraphLength].Weight, fmt.Sprintf("All paragraphs stay within %d sentences", r.th.MaxSentencesPerParagraph))
	case over == 1:
		return r.result(ParagraphLength, r.partial(ParagraphLength), "One paragraph runs too long, split it up")
	default:
		return r.result(ParagraphLength, 0, fmt.Sprintf("%d paragraphs run longer than %d sentences", over, r.th.MaxSentencesPerParagraph))
	}
}

func (r *Registry) evalKeywordInHeadings(snap *article.Snapshot) Result {
	if len(snap.Sections) == 0 {
		return r.result(KeywordInHeadings, 0, "No section headings")
	}
	kw := snap.Step1.PrimaryKeyword
	if kw == "" {
		return r.result(KeywordInHeadings, 0, "Set a primary keyword first")
	}
	for _, s := range snap.Sections {
		if ContainsPhrase(s.Heading, kw) {
			return r.result(KeywordInHeadings, r.byID[KeywordInHeadings].Weight, "A section heading mentions the primary keyword")
		}
	}
	return r.result(KeywordInHeadings, 0, "No section heading mentions the primary keyword")
}

// --- Title quality (300s) ---

func (r *Registry) evalKeywordAtTitleStart(snap *article.Snapshot) Result {
	kw := snap.Step1.PrimaryKeyword
	if kw == "" || snap.Step1.Title == "" {
		return r.result(KeywordAtTitleStart, 0, "Needs a title and a primary keyword")
	}

	offset := PhraseWordOffset(snap.Step1.Title, kw)
	switch {
	case offset < 0:
		return r.result(KeywordAtTitleStart, 0, "Title does not contain the primary keyword")
	case offset < r.th.TitleKeywordWindow:
		return r.result(KeywordAtTitleStart, r.byID[KeywordAtTitleStart].Weight, "Primary keyword is at the start of the title")
	default:
		return r.result(KeywordAtTitleStart, r.partial(KeywordAtTitleStart), fmt.Sprintf("Move the primary keyword into the first %d words of the title", r.th.TitleKeywordWindow))
	}
}

func (r *Registry) evalTitlePowerWords(snap *article.Snapshot) Result {
	count := CountListTerms(snap.Step1.Title, r.th.PowerWords)
	switch {
	case count >= 2:
		return r.result(TitlePowerWords, r.byID[TitlePowerWords].Weight, fmt.Sprintf("Title uses %d power words", count))
	case count == 1:
		return r.result(TitlePowerWords, r.partial(TitlePowerWords), "Title uses one power word, add another")
	default:
		return r.result(TitlePowerWords, 0, "Title uses no power words")
	}
}

func (r *Registry) evalTitleSentiment(snap *article.Snapshot) Result {
	positive := CountListTerms(snap.Step1.Title, r.th.PositiveWords)
	negative := CountListTerms(snap.Step1.Title, r.th.NegativeWords)
	if positive > 0 || negative > 0 {
		return r.result(TitleSentiment, r.byID[TitleSentiment].Weight, "Title carries an emotional hook")
	}
	return r.result(TitleSentiment, 0, "Title is emotionally neutral, add a sentiment word")
}

// --- Media & links (400s) ---

func (r *Registry) evalTOCDepth(snap *article.Snapshot) Result {
	n := len(snap.TableOfContents)
	switch {
	case n == 0:
		return r.result(TOCDepth, 0, "No table of contents")
	case n >= r.th.MinTOCEntries:
		return r.result(TOCDepth, r.byID[TOCDepth].Weight, fmt.Sprintf("Table of contents has %d entries", n))
	default:
		return r.result(TOCDepth, r.partial(TOCDepth), fmt.Sprintf("Table of contents has only %d entries, aim for %d", n, r.th.MinTOCEntries))
	}
}

func (r *Registry) evalHasImage(snap *article.Snapshot) Result {
	if len(snap.Images) > 0 {
		return r.result(HasImage, r.byID[HasImage].Weight, fmt.Sprintf("Article has %d images", len(snap.Images)))
	}
	return r.result(HasImage, 0, "Article has no images")
}

func (r *Registry) evalLinkCoverage(snap *article.Snapshot) Result {
	internal := len(snap.Step2.InternalLinks)
	external := len(snap.Step2.ExternalLinks)
	switch {
	case internal > 0 && external > 0:
		return r.result(LinkCoverage, r.byID[LinkCoverage].Weight, fmt.Sprintf("Article links out (%d internal, %d external)", internal, external))
	case internal > 0:
		return r.result(LinkCoverage, r.partial(LinkCoverage), "Add at least one external link")
	case external > 0:
		return r.result(LinkCoverage, r.partial(LinkCoverage), "Add at least one internal link")
	default:
		return r.result(LinkCoverage, 0, "Article has no internal or external links")
	}
}
