package database

// Draft represents a stored article draft. Snapshot holds the serialized
// form snapshot the scoring engine evaluates.
type Draft struct {
	ID             int64
	Title          string
	Slug           *string
	PrimaryKeyword *string
	Snapshot       string
	SourceURL      *string
	CreatedAt      *string
	UpdatedAt      *string
}

// ScoreRun is one full evaluation of a draft.
type ScoreRun struct {
	ID         int64
	RunToken   string
	DraftID    int64
	TotalScore int
	MaxScore   int
	CreatedAt  *string
}

// ScoreResult is a single criterion outcome within a run.
type ScoreResult struct {
	RunID       int64
	CriterionID int
	Status      string // success, warning, error, or pending
	Score       int
	Message     *string
}

// DraftListing is a draft joined with its most recent score run.
type DraftListing struct {
	Draft
	LatestRun *ScoreRun
}

// ReferenceArticle is a competitor article collected during keyword research.
type ReferenceArticle struct {
	ID            int64
	Keyword       string
	URL           string
	Title         string
	Source        *string
	PublishedDate *string
	CollectedAt   *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	TotalDrafts       int
	ScoredDrafts      int
	ScoreRuns         int
	ReferenceArticles int
}
