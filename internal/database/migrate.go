package database

import (
	"database/sql"
	"fmt"
	"log"
)

// schemaVersion reads PRAGMA user_version.
func schemaVersion(conn *sql.DB) (int, error) {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// hasDraftsTable reports whether a drafts table already exists. A database
// with tables but user_version 0 predates the migration system and gets
// stamped as version 1.
func hasDraftsTable(conn *sql.DB) (bool, error) {
	var count int
	err := conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='drafts'",
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for existing tables: %w", err)
	}
	return count > 0, nil
}

// migrate brings the schema up to the latest version, tracking progress in
// PRAGMA user_version.
func migrate(conn *sql.DB) error {
	current, err := schemaVersion(conn)
	if err != nil {
		return err
	}

	if current == 0 {
		legacy, err := hasDraftsTable(conn)
		if err != nil {
			return err
		}
		if legacy {
			log.Printf("detected pre-migration database, stamping as version 1")
			if _, err := conn.Exec("PRAGMA user_version = 1"); err != nil {
				return fmt.Errorf("stamping legacy version: %w", err)
			}
			current = 1
		}
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(conn, m); err != nil {
			return err
		}
		current = m.Version
	}

	return nil
}

func applyMigration(conn *sql.DB, m Migration) error {
	log.Printf("applying migration %d: %s", m.Version, m.Description)

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	if err := m.Up(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.Version, err)
	}

	// user_version cannot change inside the transaction with modernc/sqlite.
	// A crash between commit and stamp is harmless: the DDL is idempotent.
	if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("setting version %d: %w", m.Version, err)
	}
	return nil
}
