package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const snapshotColumns = "id, run_id, taken_at, command, version, source, first_day, last_day, events"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (db *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateSnapshot inserts a new snapshot, filling in its run ID and time.
func (db *DB) CreateSnapshot(s *Snapshot) error {
	return createSnapshot(db.conn, s)
}

func createSnapshot(ex execer, s *Snapshot) error {
	if s.RunID == "" {
		s.RunID = uuid.NewString()
	}
	if s.TakenAt.IsZero() {
		s.TakenAt = time.Now().UTC()
	}
	result, err := ex.Exec(
		`INSERT INTO snapshots (run_id, taken_at, command, version, source, first_day, last_day, events)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.TakenAt.UTC().Format(time.RFC3339), s.Command, s.Version, s.Source,
		s.FirstDay, s.LastDay, s.Events,
	)
	if err != nil {
		return err
	}
	s.ID, err = result.LastInsertId()
	return err
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	return db.GetSnapshotN(1)
}

// GetSnapshot returns a snapshot by ID, or nil if it does not exist.
func (db *DB) GetSnapshot(id int64) (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", id)
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous, etc.).
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	if n < 1 {
		return nil, nil
	}
	row := db.conn.QueryRow(
		"SELECT "+snapshotColumns+" FROM snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanSnapshot(row)
}

// ListSnapshots returns up to limit snapshots, newest first.
func (db *DB) ListSnapshots(limit int) ([]Snapshot, error) {
	rows, err := db.conn.Query(
		"SELECT "+snapshotColumns+" FROM snapshots ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	var firstDay, lastDay sql.NullString
	err := row.Scan(&s.ID, &s.RunID, &takenAt, &s.Command, &s.Version, &s.Source,
		&firstDay, &lastDay, &s.Events)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	s.FirstDay = firstDay.String
	s.LastDay = lastDay.String
	return &s, nil
}

// InsertMetrics stores metric values for a snapshot in one transaction.
func (db *DB) InsertMetrics(snapshotID int64, metrics []MetricRow) error {
	return db.withTx(func(tx *sql.Tx) error { return insertMetrics(tx, snapshotID, metrics) })
}

func insertMetrics(ex execer, snapshotID int64, metrics []MetricRow) error {
	for _, m := range metrics {
		if _, err := ex.Exec(
			"INSERT INTO snapshot_metrics (snapshot_id, metric_name, metric_value) VALUES (?, ?, ?)",
			snapshotID, m.Name, m.Value,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetMetrics returns a snapshot's metrics in insertion order.
func (db *DB) GetMetrics(snapshotID int64) ([]MetricRow, error) {
	rows, err := db.conn.Query(
		"SELECT metric_name, metric_value FROM snapshot_metrics WHERE snapshot_id = ? ORDER BY id",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []MetricRow
	for rows.Next() {
		var m MetricRow
		if err := rows.Scan(&m.Name, &m.Value); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// InsertCategoryTotals stores category hours for a snapshot.
func (db *DB) InsertCategoryTotals(snapshotID int64, totals []CategoryRow) error {
	return db.withTx(func(tx *sql.Tx) error { return insertCategoryTotals(tx, snapshotID, totals) })
}

func insertCategoryTotals(ex execer, snapshotID int64, totals []CategoryRow) error {
	for _, c := range totals {
		if _, err := ex.Exec(
			"INSERT INTO category_totals (snapshot_id, category, hours) VALUES (?, ?, ?)",
			snapshotID, c.Category, c.Hours,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetCategoryTotals returns a snapshot's category hours, largest first.
func (db *DB) GetCategoryTotals(snapshotID int64) ([]CategoryRow, error) {
	rows, err := db.conn.Query(
		"SELECT category, hours FROM category_totals WHERE snapshot_id = ? ORDER BY hours DESC, id",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []CategoryRow
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.Category, &c.Hours); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertDeathLoops stores death loops for a snapshot.
func (db *DB) InsertDeathLoops(snapshotID int64, loops []LoopRow) error {
	return db.withTx(func(tx *sql.Tx) error { return insertDeathLoops(tx, snapshotID, loops) })
}

func insertDeathLoops(ex execer, snapshotID int64, loops []LoopRow) error {
	for _, l := range loops {
		if _, err := ex.Exec(
			`INSERT INTO death_loops (snapshot_id, app_a, app_b, count, ai_switches, verdict)
			VALUES (?, ?, ?, ?, ?, ?)`,
			snapshotID, l.AppA, l.AppB, l.Count, l.AISwitches, l.Verdict,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetDeathLoops returns a snapshot's death loops in their recorded order.
func (db *DB) GetDeathLoops(snapshotID int64) ([]LoopRow, error) {
	rows, err := db.conn.Query(
		"SELECT app_a, app_b, count, ai_switches, verdict FROM death_loops WHERE snapshot_id = ? ORDER BY id",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []LoopRow
	for rows.Next() {
		var l LoopRow
		if err := rows.Scan(&l.AppA, &l.AppB, &l.Count, &l.AISwitches, &l.Verdict); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
