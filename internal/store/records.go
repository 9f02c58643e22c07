// Package store persists parsed digest records in SQLite and exports
// the jobs.json snapshot consumed by the static frontend.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jobdigest-engine/internal/digest"
)

const listCap = 500

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  fingerprint TEXT NOT NULL DEFAULT '',
  subject TEXT NOT NULL,
  sender TEXT NOT NULL,
  date TEXT NOT NULL,
  organization TEXT NOT NULL,
  deadline TEXT NOT NULL,
  position_type TEXT NOT NULL,
  links TEXT NOT NULL DEFAULT '[]',
  snippet TEXT NOT NULL DEFAULT '',
  is_job INTEGER NOT NULL DEFAULT 0,
  is_fit INTEGER NOT NULL DEFAULT 0,
  score INTEGER NOT NULL DEFAULT 0,
  matched TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_records_fingerprint
ON records(fingerprint)
WHERE fingerprint != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_records_created_at
ON records(created_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertRecordIgnore inserts one record, deduped by fingerprint via the
// partial unique index. Returns whether a new row was actually added.
func InsertRecordIgnore(ctx context.Context, db *sql.DB, r digest.Record) (added bool, err error) {
	linksB, _ := json.Marshal(r.Links)
	matchedB, _ := json.Marshal(r.DsPolicyMatchedKeywords)

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO records
  (fingerprint, subject, sender, date, organization, deadline, position_type,
   links, snippet, is_job, is_fit, score, matched, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		r.ID, r.Subject, r.From, r.Date, r.Organization, r.Deadline, r.PositionType,
		string(linksB), r.Snippet, boolInt(r.IsJob), boolInt(r.IsDsPolicyFit),
		r.DsPolicyScore, string(matchedB), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert record: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

type ListRecordsOpts struct {
	OnlyJobs bool
	OnlyFit  bool
	Window   string // 24h | 7d | all
	Sort     string // date | score | subject
	Limit    int
}

func ListRecords(ctx context.Context, db *sql.DB, opts ListRecordsOpts) ([]digest.Record, error) {
	if opts.Sort == "" {
		opts.Sort = "date"
	}
	if opts.Window == "" {
		opts.Window = "all"
	}
	if opts.Limit <= 0 || opts.Limit > listCap {
		opts.Limit = listCap
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol, order := "created_at", "DESC"
	switch opts.Sort {
	case "score":
		sortCol, order = "score", "DESC"
	case "subject":
		sortCol, order = "subject", "ASC"
	}

	where := "WHERE 1=1"
	switch opts.Window {
	case "24h":
		where += " AND created_at >= datetime('now','-24 hours')"
	case "7d":
		where += " AND created_at >= datetime('now','-7 days')"
	}
	if opts.OnlyJobs {
		where += " AND is_job = 1"
	}
	if opts.OnlyFit {
		where += " AND is_fit = 1"
	}

	query := fmt.Sprintf(`
SELECT fingerprint, subject, sender, date, organization, deadline, position_type,
       links, snippet, is_job, is_fit, score, matched
FROM records
%s
ORDER BY %s %s
LIMIT ?;
`, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []digest.Record
	idx := 0
	for rows.Next() {
		var r digest.Record
		var linksJSON, matchedJSON string
		var isJob, isFit int
		if err := rows.Scan(
			&r.ID, &r.Subject, &r.From, &r.Date, &r.Organization, &r.Deadline,
			&r.PositionType, &linksJSON, &r.Snippet, &isJob, &isFit,
			&r.DsPolicyScore, &matchedJSON,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(linksJSON), &r.Links)
		_ = json.Unmarshal([]byte(matchedJSON), &r.DsPolicyMatchedKeywords)
		r.IsJob = isJob == 1
		r.IsDsPolicyFit = isFit == 1
		idx++
		r.Index = idx
		out = append(out, r)
	}
	return out, rows.Err()
}

// CleanupOldRecords drops rows older than three months.
func CleanupOldRecords(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM records
WHERE created_at < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old records: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
