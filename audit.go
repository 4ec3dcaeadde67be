package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// AuditStore records every tag write to Postgres so a run can be
// reviewed or diffed against remote state afterwards. Optional: the
// reconciler works with a nil store.
type AuditStore struct {
	db *sql.DB
}

func OpenAuditStore(connStr string) (*AuditStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to audit database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tag_updates (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			run_name TEXT,
			group_name TEXT NOT NULL,
			host_id TEXT NOT NULL,
			host_name TEXT,
			old_tags TEXT NOT NULL,
			new_tags TEXT NOT NULL,
			updated TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tag_updates table: %w", err)
	}

	return &AuditStore{db: db}, nil
}

// RecordUpdate inserts one row per successful host.update.
func (s *AuditStore) RecordUpdate(runID, runName, groupName string, host Host, newTags []Tag) error {
	oldJSON, err := json.Marshal(host.Tags)
	if err != nil {
		return err
	}
	newJSON, err := json.Marshal(newTags)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		"INSERT INTO tag_updates (run_id, run_name, group_name, host_id, host_name, old_tags, new_tags, updated) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		runID, runName, groupName, host.HostID, host.Name, string(oldJSON), string(newJSON), time.Now(),
	)
	return err
}

func (s *AuditStore) Close() error {
	return s.db.Close()
}
