package seo

import (
	"sort"

	"github.com/seoscribe/seoscribe/internal/article"
)

// CriterionID identifies a single scoring rule. IDs are grouped by
// hundreds into categories.
type CriterionID int

// The closed set of scoring rules.
const (
	KeywordInTitle        CriterionID = 101
	KeywordInMeta         CriterionID = 102
	KeywordInSlug         CriterionID = 103
	TitleLength           CriterionID = 104
	MetaLength            CriterionID = 105
	SecondaryKeywordUsage CriterionID = 106

	TOCHasKeyword     CriterionID = 201
	KeywordDensity    CriterionID = 202
	ContentLength     CriterionID = 203
	KeywordEarly      CriterionID = 204
	ParagraphLength   CriterionID = 205
	KeywordInHeadings CriterionID = 206

	KeywordAtTitleStart CriterionID = 301
	TitlePowerWords     CriterionID = 302
	TitleSentiment      CriterionID = 303

	TOCDepth     CriterionID = 401
	HasImage     CriterionID = 402
	LinkCoverage CriterionID = 403
)

// Category groups criteria by their id-hundred block.
type Category int

const (
	CategoryTitleMeta    Category = 100
	CategoryContent      Category = 200
	CategoryTitleQuality Category = 300
	CategoryStructure    Category = 400
)

// Category returns the category a criterion belongs to.
func (id CriterionID) Category() Category {
	return Category(int(id) / 100 * 100)
}

// Name returns a human-readable category name.
func (c Category) Name() string {
	switch c {
	case CategoryTitleMeta:
		return "Title & Meta"
	case CategoryContent:
		return "Content Structure"
	case CategoryTitleQuality:
		return "Title Quality"
	case CategoryStructure:
		return "Media & Links"
	}
	return "Other"
}

// Status classifies an evaluation result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusPending Status = "pending"
)

// Criterion is the static metadata for one scoring rule.
type Criterion struct {
	ID          CriterionID
	Description string // opaque translation key, resolved by the caller
	Weight      int
	InputKeys   []string // snapshot fields the rule reads, primary first
}

// Result is the outcome of evaluating one criterion. Status is derived
// from Score against the criterion weight and never set independently.
type Result struct {
	Status  Status
	Score   int
	Message string
}

// Thresholds carries every tunable boundary and word list the evaluation
// functions use. Zero values are filled from DefaultThresholds, so a
// partially populated struct is safe to pass to NewRegistry.
type Thresholds struct {
	// Keyword density band, in percent. Full credit inside
	// [DensityMin, DensityMax] (both inclusive); half credit inside
	// [DensityPartialMin, DensityMin) and (DensityMax, DensityPartialMax].
	DensityMin        float64
	DensityMax        float64
	DensityPartialMin float64
	DensityPartialMax float64

	TitleMinChars int
	TitleMaxChars int
	MetaMinChars  int
	MetaMaxChars  int

	MinWords     int
	PartialWords int

	MaxSentencesPerParagraph int
	TitleKeywordWindow       int
	MinTOCEntries            int
	EarlyContentFraction     float64

	StopWords     []string
	PowerWords    []string
	PositiveWords []string
	NegativeWords []string
}

// DefaultThresholds returns the stock boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DensityMin:               1.0,
		DensityMax:               3.0,
		DensityPartialMin:        0.5,
		DensityPartialMax:        4.0,
		TitleMinChars:            30,
		TitleMaxChars:            60,
		MetaMinChars:             120,
		MetaMaxChars:             160,
		MinWords:                 900,
		PartialWords:             600,
		MaxSentencesPerParagraph: 5,
		TitleKeywordWindow:       3,
		MinTOCEntries:            3,
		EarlyContentFraction:     0.1,
		StopWords:                defaultStopWords,
		PowerWords:               defaultPowerWords,
		PositiveWords:            defaultPositiveWords,
		NegativeWords:            defaultNegativeWords,
	}
}

type evalFunc func(*article.Snapshot) Result

type improveFunc func(*article.Snapshot) string

// Registry is the immutable criterion table plus the evaluation and
// improvement function tables. Build one with NewRegistry and pass it by
// reference; there is no ambient global registry.
type Registry struct {
	criteria []Criterion
	byID     map[CriterionID]Criterion
	evals    map[CriterionID]evalFunc
	improves map[CriterionID]improveFunc

	th        Thresholds
	stopWords map[string]struct{}
}

// NewRegistry builds a registry with the given thresholds. Unset numeric
// thresholds and empty word lists fall back to the defaults.
func NewRegistry(th Thresholds) *Registry {
	def := DefaultThresholds()
	if th.DensityMin == 0 && th.DensityMax == 0 {
		th.DensityMin, th.DensityMax = def.DensityMin, def.DensityMax
	}
	if th.DensityPartialMin == 0 {
		th.DensityPartialMin = def.DensityPartialMin
	}
	if th.DensityPartialMax == 0 {
		th.DensityPartialMax = def.DensityPartialMax
	}
	if th.TitleMinChars == 0 {
		th.TitleMinChars = def.TitleMinChars
	}
	if th.TitleMaxChars == 0 {
		th.TitleMaxChars = def.TitleMaxChars
	}
	if th.MetaMinChars == 0 {
		th.MetaMinChars = def.MetaMinChars
	}
	if th.MetaMaxChars == 0 {
		th.MetaMaxChars = def.MetaMaxChars
	}
	if th.MinWords == 0 {
		th.MinWords = def.MinWords
	}
	if th.PartialWords == 0 {
		th.PartialWords = def.PartialWords
	}
	if th.MaxSentencesPerParagraph == 0 {
		th.MaxSentencesPerParagraph = def.MaxSentencesPerParagraph
	}
	if th.TitleKeywordWindow == 0 {
		th.TitleKeywordWindow = def.TitleKeywordWindow
	}
	if th.MinTOCEntries == 0 {
		th.MinTOCEntries = def.MinTOCEntries
	}
	if th.EarlyContentFraction == 0 {
		th.EarlyContentFraction = def.EarlyContentFraction
	}
	if len(th.StopWords) == 0 {
		th.StopWords = def.StopWords
	}
	if len(th.PowerWords) == 0 {
		th.PowerWords = def.PowerWords
	}
	if len(th.PositiveWords) == 0 {
		th.PositiveWords = def.PositiveWords
	}
	if len(th.NegativeWords) == 0 {
		th.NegativeWords = def.NegativeWords
	}

	r := &Registry{
		byID:      make(map[CriterionID]Criterion),
		evals:     make(map[CriterionID]evalFunc),
		improves:  make(map[CriterionID]improveFunc),
		th:        th,
		stopWords: make(map[string]struct{}, len(th.StopWords)),
	}
	for _, w := range th.StopWords {
		r.stopWords[w] = struct{}{}
	}

	r.register(Criterion{KeywordInTitle, "criteria.keyword_in_title", 10, []string{"title", "primaryKeyword"}}, r.evalKeywordInTitle)
	r.register(Criterion{KeywordInMeta, "criteria.keyword_in_meta", 8, []string{"metaDescription", "primaryKeyword"}}, r.evalKeywordInMeta)
	r.register(Criterion{KeywordInSlug, "criteria.keyword_in_slug", 6, []string{"urlSlug", "primaryKeyword"}}, r.evalKeywordInSlug)
	r.register(Criterion{TitleLength, "criteria.title_length", 6, []string{"title"}}, r.evalTitleLength)
	r.register(Criterion{MetaLength, "criteria.meta_length", 6, []string{"metaDescription"}}, r.evalMetaLength)
	r.register(Criterion{SecondaryKeywordUsage, "criteria.secondary_keywords", 6, []string{"content", "secondaryKeywords"}}, r.evalSecondaryKeywords)

	r.register(Criterion{TOCHasKeyword, "criteria.toc_keyword", 8, []string{"tableOfContents", "primaryKeyword"}}, r.evalTOCHasKeyword)
	r.register(Criterion{KeywordDensity, "criteria.keyword_density", 10, []string{"content", "primaryKeyword"}}, r.evalKeywordDensity)
	r.register(Criterion{ContentLength, "criteria.content_length", 10, []string{"content"}}, r.evalContentLength)
	r.register(Criterion{KeywordEarly, "criteria.keyword_early", 6, []string{"content", "primaryKeyword"}}, r.evalKeywordEarly)
	r.register(Criterion{ParagraphLength, "criteria.paragraph_length", 6, []string{"content"}}, r.evalParagraphLength)
	r.register(Criterion{KeywordInHeadings, "criteria.keyword_in_headings", 6, []string{"sections", "primaryKeyword"}}, r.evalKeywordInHeadings)

	r.register(Criterion{KeywordAtTitleStart, "criteria.keyword_at_title_start", 6, []string{"title", "primaryKeyword"}}, r.evalKeywordAtTitleStart)
	r.register(Criterion{TitlePowerWords, "criteria.title_power_words", 4, []string{"title"}}, r.evalTitlePowerWords)
	r.register(Criterion{TitleSentiment, "criteria.title_sentiment", 4, []string{"title"}}, r.evalTitleSentiment)

	r.register(Criterion{TOCDepth, "criteria.toc_depth", 6, []string{"tableOfContents"}}, r.evalTOCDepth)
	r.register(Criterion{HasImage, "criteria.has_image", 6, []string{"images"}}, r.evalHasImage)
	r.register(Criterion{LinkCoverage, "criteria.link_coverage", 8, []string{"internalLinks", "externalLinks"}}, r.evalLinkCoverage)

	r.improves[KeywordInTitle] = r.improveTitleKeyword
	r.improves[KeywordInMeta] = r.improveMetaKeyword
	r.improves[KeywordInSlug] = r.improveSlug
	r.improves[MetaLength] = r.improveMetaLength
	r.improves[KeywordEarly] = r.improveKeywordEarly
	r.improves[KeywordAtTitleStart] = r.improveTitleStart

	sort.Slice(r.criteria, func(i, j int) bool { return r.criteria[i].ID < r.criteria[j].ID })
	return r
}

// DefaultRegistry builds a registry with stock thresholds.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultThresholds())
}

func (r *Registry) register(c Criterion, fn evalFunc) {
	r.criteria = append(r.criteria, c)
	r.byID[c.ID] = c
	r.evals[c.ID] = fn
}

// Criterion looks up a criterion by id.
func (r *Registry) Criterion(id CriterionID) (Criterion, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Criteria returns all registered criteria in id order.
func (r *Registry) Criteria() []Criterion {
	out := make([]Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// MaxScore returns the sum of all criterion weights.
func (r *Registry) MaxScore() int {
	total := 0
	for _, c := range r.criteria {
		total += c.Weight
	}
	return total
}
