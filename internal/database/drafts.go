package database

import (
	"database/sql"
)

// InsertDraft inserts a draft and returns its ID.
func (db *DB) InsertDraft(title string, slug, primaryKeyword *string, snapshot string, sourceURL *string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO drafts (title, slug, primary_keyword, snapshot, source_url)
		VALUES (?, ?, ?, ?, ?)`,
		title, slug, primaryKeyword, snapshot, sourceURL,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateDraftSnapshot replaces a draft's snapshot and denormalized fields.
func (db *DB) UpdateDraftSnapshot(draftID int64, title string, slug, primaryKeyword *string, snapshot string) error {
	_, err := db.conn.Exec(
		`UPDATE drafts SET title = ?, slug = ?, primary_keyword = ?, snapshot = ?,
		updated_at = datetime('now') WHERE id = ?`,
		title, slug, primaryKeyword, snapshot, draftID,
	)
	return err
}

// GetDraft returns a single draft by ID, or nil when absent.
func (db *DB) GetDraft(draftID int64) (*Draft, error) {
	row := db.conn.QueryRow(
		`SELECT id, title, slug, primary_keyword, snapshot, source_url, created_at, updated_at
		FROM drafts WHERE id = ?`, draftID,
	)
	d, err := scanDraft(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetAllDrafts returns all drafts, newest first.
func (db *DB) GetAllDrafts() ([]Draft, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, slug, primary_keyword, snapshot, source_url, created_at, updated_at
		FROM drafts ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *d)
	}
	return drafts, rows.Err()
}

// GetDraftListings returns all drafts joined with their latest score run.
func (db *DB) GetDraftListings() ([]DraftListing, error) {
	drafts, err := db.GetAllDrafts()
	if err != nil {
		return nil, err
	}

	listings := make([]DraftListing, 0, len(drafts))
	for _, d := range drafts {
		run, err := db.GetLatestRun(d.ID)
		if err != nil {
			return nil, err
		}
		listings = append(listings, DraftListing{Draft: d, LatestRun: run})
	}
	return listings, nil
}

// DeleteDraft removes a draft and its score history.
func (db *DB) DeleteDraft(draftID int64) error {
	if _, err := db.conn.Exec(
		`DELETE FROM score_results WHERE run_id IN (SELECT id FROM score_runs WHERE draft_id = ?)`,
		draftID,
	); err != nil {
		return err
	}
	if _, err := db.conn.Exec(`DELETE FROM score_runs WHERE draft_id = ?`, draftID); err != nil {
		return err
	}
	_, err := db.conn.Exec(`DELETE FROM drafts WHERE id = ?`, draftID)
	return err
}

// GetStats returns aggregate counts for the status command.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM drafts`).Scan(&stats.TotalDrafts); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow(
		`SELECT COUNT(DISTINCT draft_id) FROM score_runs`,
	).Scan(&stats.ScoredDrafts); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM score_runs`).Scan(&stats.ScoreRuns); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM reference_articles`).Scan(&stats.ReferenceArticles); err != nil {
		return nil, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (*Draft, error) {
	var d Draft
	err := row.Scan(&d.ID, &d.Title, &d.Slug, &d.PrimaryKeyword, &d.Snapshot,
		&d.SourceURL, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
