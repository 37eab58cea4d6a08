package scorer

import (
	"path/filepath"
	"testing"

	"github.com/seoscribe/seoscribe/internal/article"
	"github.com/seoscribe/seoscribe/internal/database"
	"github.com/seoscribe/seoscribe/internal/seo"
)

func newTestScorer(t *testing.T) (*Scorer, *database.DB) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(db, seo.DefaultRegistry(), "https://example.com"), db
}

func storeDraft(t *testing.T, db *database.DB, snap *article.Snapshot) int64 {
	t.Helper()

	encoded, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	id, err := db.InsertDraft(snap.Step1.Title, nil, nil, string(encoded), nil)
	if err != nil {
		t.Fatalf("InsertDraft() error = %v", err)
	}
	return id
}

func TestScoreDraftPersistsRun(t *testing.T) {
	sc, db := newTestScorer(t)

	snap := &article.Snapshot{}
	snap.Step1.Title = "SEO Tips for Beginners"
	snap.Step1.PrimaryKeyword = "seo tips"
	snap.Content = "# SEO Tips\n\nA short article about seo tips."
	id := storeDraft(t, db, snap)

	summary, err := sc.ScoreDraft(id)
	if err != nil {
		t.Fatalf("ScoreDraft() error = %v", err)
	}
	if summary.RunToken == "" {
		t.Error("summary missing run token")
	}
	if summary.Report.MaxScore != seo.DefaultRegistry().MaxScore() {
		t.Errorf("MaxScore = %d, want %d", summary.Report.MaxScore, seo.DefaultRegistry().MaxScore())
	}

	run, err := db.GetLatestRun(id)
	if err != nil {
		t.Fatalf("GetLatestRun() error = %v", err)
	}
	if run == nil {
		t.Fatal("no run persisted")
	}
	if run.RunToken != summary.RunToken {
		t.Errorf("stored token = %q, want %q", run.RunToken, summary.RunToken)
	}
	if run.TotalScore != summary.Report.TotalScore {
		t.Errorf("stored total = %d, want %d", run.TotalScore, summary.Report.TotalScore)
	}

	results, err := db.GetRunResults(run.ID)
	if err != nil {
		t.Fatalf("GetRunResults() error = %v", err)
	}
	if len(results) != len(seo.DefaultRegistry().Criteria()) {
		t.Errorf("persisted %d results, want one per criterion (%d)",
			len(results), len(seo.DefaultRegistry().Criteria()))
	}
}

func TestScoreDraftUnknownDraft(t *testing.T) {
	sc, _ := newTestScorer(t)
	if _, err := sc.ScoreDraft(999); err == nil {
		t.Error("ScoreDraft(999) error = nil, want not-found error")
	}
}

func TestScoreSnapshotNormalizesStructure(t *testing.T) {
	sc, _ := newTestScorer(t)

	// Headings only exist in the markdown; normalization must surface them
	// so the structural criteria see a table of contents.
	snap := &article.Snapshot{}
	snap.Step1.PrimaryKeyword = "seo tips"
	snap.Content = "# SEO Tips\n\nIntro.\n\n## More SEO Tips\n\nBody.\n\n## Summary\n\nEnd."

	report := sc.ScoreSnapshot(snap)

	toc := report.Results[seo.TOCDepth]
	if toc.Status != seo.StatusSuccess {
		t.Errorf("TOCDepth status = %q, want success after normalization", toc.Status)
	}
	headings := report.Results[seo.KeywordInHeadings]
	if headings.Status != seo.StatusSuccess {
		t.Errorf("KeywordInHeadings status = %q, want success", headings.Status)
	}
}

func TestScoreSnapshotNilSnapshot(t *testing.T) {
	sc, _ := newTestScorer(t)
	report := sc.ScoreSnapshot(nil)
	if report == nil {
		t.Fatal("ScoreSnapshot(nil) = nil report")
	}
	if len(report.Order) != len(seo.DefaultRegistry().Criteria()) {
		t.Errorf("report has %d entries, want %d", len(report.Order), len(seo.DefaultRegistry().Criteria()))
	}
}
