package store

import (
	"database/sql"

	"github.com/llehouerou/sift/internal/db"
)

const currentSchemaVersion = 2

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS track_meta (
			path TEXT PRIMARY KEY,
			rating INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS track_tags (
			path TEXT NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (path, tag)
		);
	`)
	if err != nil {
		return err
	}

	// Version 2: verdicts.
	has, err := db.HasColumn(conn, "track_meta", "verdict")
	if err != nil {
		return err
	}
	if !has {
		if _, err := conn.Exec(`ALTER TABLE track_meta ADD COLUMN verdict INTEGER NOT NULL DEFAULT 0`); err != nil {
			return err
		}
	}
	if _, err := conn.Exec(`CREATE INDEX IF NOT EXISTS idx_track_meta_verdict ON track_meta(verdict)`); err != nil {
		return err
	}

	_, err = conn.Exec(`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
