package store

import (
	"database/sql"
	"time"

	"github.com/blackwell-systems/repolens/internal/engine"
	"github.com/blackwell-systems/repolens/internal/health"
)

// Snapshot is one recorded analysis run.
type Snapshot struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Root    string    `json:"root"`
	Version string    `json:"version"`
}

// SaveSnapshot records a health report and its module statuses for a root,
// returning the new snapshot ID.
func (db *DB) SaveSnapshot(root, version string, report *health.Report, modules []engine.ModuleStatus) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO snapshots (taken_at, root, version) VALUES (?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), root, version,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = db.conn.Exec(
		`INSERT INTO health_reports
		(snapshot_id, total, claude_md, module_docs, freshness, skills, context, enforcement, risk)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.Total,
		report.Components.ClaudeMd, report.Components.ModuleDocs,
		report.Components.Freshness, report.Components.Skills,
		report.Components.Context, report.Components.Enforcement,
		string(report.Risk),
	)
	if err != nil {
		return 0, err
	}

	for _, m := range modules {
		if _, err := db.conn.Exec(
			"INSERT INTO module_statuses (snapshot_id, rel_path, status, score) VALUES (?, ?, ?, ?)",
			id, m.RelPath, string(m.Status), m.Score,
		); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// LatestSnapshot returns the most recent snapshot for a root, or nil when
// none exists.
func (db *DB) LatestSnapshot(root string) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, root, version FROM snapshots WHERE root = ? ORDER BY id DESC LIMIT 1",
		root,
	)
	return scanSnapshot(row)
}

// PreviousSnapshot returns the snapshot before the given ID for the same
// root, or nil when the given one is the first.
func (db *DB) PreviousSnapshot(root string, beforeID int64) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, root, version FROM snapshots WHERE root = ? AND id < ? ORDER BY id DESC LIMIT 1",
		root, beforeID,
	)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Root, &s.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// HealthFor returns the stored report components for a snapshot, or nil.
func (db *DB) HealthFor(snapshotID int64) (*health.Report, error) {
	row := db.conn.QueryRow(
		`SELECT total, claude_md, module_docs, freshness, skills, context, enforcement, risk
		 FROM health_reports WHERE snapshot_id = ?`,
		snapshotID,
	)
	var r health.Report
	var risk string
	err := row.Scan(
		&r.Total,
		&r.Components.ClaudeMd, &r.Components.ModuleDocs, &r.Components.Freshness,
		&r.Components.Skills, &r.Components.Context, &r.Components.Enforcement,
		&risk,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Risk = health.Risk(risk)
	return &r, nil
}

// ModuleScores returns rel_path -> score for a snapshot.
func (db *DB) ModuleScores(snapshotID int64) (map[string]int, error) {
	rows, err := db.conn.Query(
		"SELECT rel_path, score FROM module_statuses WHERE snapshot_id = ?",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	scores := make(map[string]int)
	for rows.Next() {
		var rel string
		var score int
		if err := rows.Scan(&rel, &score); err != nil {
			return nil, err
		}
		scores[rel] = score
	}
	return scores, rows.Err()
}
