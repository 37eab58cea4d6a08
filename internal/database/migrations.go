package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS drafts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT,
    primary_keyword TEXT,
    snapshot TEXT NOT NULL,
    source_url TEXT,
    created_at TEXT DEFAULT (datetime('now')),
    updated_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS score_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_token TEXT UNIQUE NOT NULL,
    draft_id INTEGER NOT NULL REFERENCES drafts(id),
    total_score INTEGER NOT NULL,
    max_score INTEGER NOT NULL,
    created_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS score_results (
    run_id INTEGER NOT NULL REFERENCES score_runs(id),
    criterion_id INTEGER NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('success', 'warning', 'error', 'pending')),
    score INTEGER NOT NULL,
    message TEXT,
    PRIMARY KEY (run_id, criterion_id)
);

CREATE TABLE IF NOT EXISTS reference_articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    keyword TEXT NOT NULL,
    url TEXT UNIQUE NOT NULL,
    title TEXT NOT NULL,
    source TEXT,
    published_date TEXT,
    collected_at TEXT DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_score_runs_draft ON score_runs(draft_id);
CREATE INDEX IF NOT EXISTS idx_score_results_run ON score_results(run_id);
CREATE INDEX IF NOT EXISTS idx_reference_articles_keyword ON reference_articles(keyword);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	latest := 0
	for _, m := range migrations {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}
