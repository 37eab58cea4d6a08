package scorer

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/seoscribe/seoscribe/internal/article"
	"github.com/seoscribe/seoscribe/internal/database"
	"github.com/seoscribe/seoscribe/internal/seo"
)

// Scorer evaluates drafts against the criterion registry and records each
// run in the score history.
type Scorer struct {
	db       *database.DB
	registry *seo.Registry
	baseURL  string
}

// New creates a Scorer. baseURL is used to classify links when deriving
// structure from markdown content.
func New(db *database.DB, registry *seo.Registry, baseURL string) *Scorer {
	return &Scorer{db: db, registry: registry, baseURL: baseURL}
}

// RunSummary is the outcome of scoring one draft.
type RunSummary struct {
	RunID    int64
	RunToken string
	DraftID  int64
	Report   *seo.Report
}

// ScoreDraft evaluates a stored draft and persists the run.
func (s *Scorer) ScoreDraft(draftID int64) (*RunSummary, error) {
	draft, err := s.db.GetDraft(draftID)
	if err != nil {
		return nil, fmt.Errorf("loading draft %d: %w", draftID, err)
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %d not found", draftID)
	}

	snap, err := article.ParseSnapshot([]byte(draft.Snapshot))
	if err != nil {
		return nil, fmt.Errorf("draft %d: %w", draftID, err)
	}

	report := s.ScoreSnapshot(snap)

	token := uuid.NewString()
	results := make([]database.ScoreResult, 0, len(report.Order))
	for _, id := range report.Order {
		r := report.Results[id]
		msg := r.Message
		results = append(results, database.ScoreResult{
			CriterionID: int(id),
			Status:      string(r.Status),
			Score:       r.Score,
			Message:     &msg,
		})
	}

	runID, err := s.db.InsertScoreRun(token, draftID, report.TotalScore, report.MaxScore, results)
	if err != nil {
		return nil, fmt.Errorf("storing score run: %w", err)
	}

	log.Printf("Scored draft %d: %d/%d (%d%%)", draftID, report.TotalScore, report.MaxScore, report.Percent())
	return &RunSummary{RunID: runID, RunToken: token, DraftID: draftID, Report: report}, nil
}

// ScoreSnapshot evaluates a snapshot without persisting anything. The
// snapshot is normalized first so structure implied by the markdown body
// counts toward the structural criteria.
func (s *Scorer) ScoreSnapshot(snap *article.Snapshot) *seo.Report {
	if snap == nil {
		snap = &article.Snapshot{}
	}
	snap.Normalize(s.baseURL)
	return s.registry.EvaluateAll(snap)
}
