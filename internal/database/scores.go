package database

import (
	"database/sql"
	"fmt"
)

// InsertScoreRun stores a full evaluation of a draft with its per-criterion
// results in one transaction.
func (db *DB) InsertScoreRun(runToken string, draftID int64, totalScore, maxScore int, results []ScoreResult) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin score run: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO score_runs (run_token, draft_id, total_score, max_score)
		VALUES (?, ?, ?, ?)`,
		runToken, draftID, totalScore, maxScore,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("inserting score run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, r := range results {
		if _, err := tx.Exec(
			`INSERT INTO score_results (run_id, criterion_id, status, score, message)
			VALUES (?, ?, ?, ?, ?)`,
			runID, r.CriterionID, r.Status, r.Score, r.Message,
		); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting result for criterion %d: %w", r.CriterionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit score run: %w", err)
	}
	return runID, nil
}

// GetLatestRun returns the most recent score run for a draft, or nil.
func (db *DB) GetLatestRun(draftID int64) (*ScoreRun, error) {
	row := db.conn.QueryRow(
		`SELECT id, run_token, draft_id, total_score, max_score, created_at
		FROM score_runs WHERE draft_id = ? ORDER BY id DESC LIMIT 1`, draftID,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRunHistory returns all score runs for a draft, newest first.
func (db *DB) GetRunHistory(draftID int64) ([]ScoreRun, error) {
	rows, err := db.conn.Query(
		`SELECT id, run_token, draft_id, total_score, max_score, created_at
		FROM score_runs WHERE draft_id = ? ORDER BY id DESC`, draftID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ScoreRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRunResults returns the per-criterion results of a run in criterion order.
func (db *DB) GetRunResults(runID int64) ([]ScoreResult, error) {
	rows, err := db.conn.Query(
		`SELECT run_id, criterion_id, status, score, message
		FROM score_results WHERE run_id = ? ORDER BY criterion_id`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ScoreResult
	for rows.Next() {
		var r ScoreResult
		if err := rows.Scan(&r.RunID, &r.CriterionID, &r.Status, &r.Score, &r.Message); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanRun(row rowScanner) (*ScoreRun, error) {
	var run ScoreRun
	err := row.Scan(&run.ID, &run.RunToken, &run.DraftID, &run.TotalScore, &run.MaxScore, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
