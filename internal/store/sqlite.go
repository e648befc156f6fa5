// Package store keeps plan revisions in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"wallsketch/internal/logging"
	"wallsketch/internal/plan"
)

var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS plans (
    id          TEXT PRIMARY KEY,
    created_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS revisions (
    plan_id     TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    reason      TEXT NOT NULL,
    body        TEXT NOT NULL,
    created_at  INTEGER NOT NULL,
    PRIMARY KEY (plan_id, seq)
);
`

// Revision is one stored state of a plan. Seq starts at 0 and grows by one
// per append.
type Revision struct {
	PlanID    string
	Seq       int
	Reason    string
	Plan      plan.Plan
	CreatedAt time.Time
}

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init creates the tables when they do not exist yet.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// AppendRevision stores p as the next revision of planID, creating the plan
// row on first use, and returns the new sequence number.
func (r *Repository) AppendRevision(ctx context.Context, planID, reason string, p plan.Plan) (int, error) {
	body, err := plan.Encode(p)
	if err != nil {
		return 0, fmt.Errorf("encode plan: %w", err)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := r.now().UnixNano()
	if _, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO plans (id, created_at) VALUES (?, ?)
    `, planID, now); err != nil {
		return 0, fmt.Errorf("insert plan: %w", err)
	}
	var seq int
	if err := tx.QueryRowContext(ctx, `
        SELECT COALESCE(MAX(seq), -1) + 1 FROM revisions WHERE plan_id = ?
    `, planID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO revisions (plan_id, seq, reason, body, created_at)
        VALUES (?, ?, ?, ?, ?)
    `, planID, seq, reason, string(body), now); err != nil {
		return 0, fmt.Errorf("insert revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logging.L().Debug("revision stored", "plan", planID, "seq", seq, "reason", reason)
	return seq, nil
}

// Latest returns the newest revision of planID.
func (r *Repository) Latest(ctx context.Context, planID string) (Revision, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT plan_id, seq, reason, body, created_at
        FROM revisions
        WHERE plan_id = ?
        ORDER BY seq DESC
        LIMIT 1
    `, planID)
	return scanRevision(row)
}

// Revision returns revision seq of planID.
func (r *Repository) Revision(ctx context.Context, planID string, seq int) (Revision, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT plan_id, seq, reason, body, created_at
        FROM revisions
        WHERE plan_id = ? AND seq = ?
    `, planID, seq)
	return scanRevision(row)
}

// Count returns how many revisions planID has.
func (r *Repository) Count(ctx context.Context, planID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM revisions WHERE plan_id = ?
    `, planID).Scan(&n)
	return n, err
}

// DeletePlan removes planID and all its revisions.
func (r *Repository) DeletePlan(ctx context.Context, planID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE plan_id = ?`, planID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, planID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (Revision, error) {
	var (
		rev  Revision
		body string
		ts   int64
	)
	if err := row.Scan(&rev.PlanID, &rev.Seq, &rev.Reason, &body, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Revision{}, ErrNotFound
		}
		return Revision{}, err
	}
	p, err := plan.Decode([]byte(body), "")
	if err != nil {
		return Revision{}, fmt.Errorf("decode revision %s/%d: %w", rev.PlanID, rev.Seq, err)
	}
	rev.Plan = p
	rev.CreatedAt = time.Unix(0, ts)
	return rev, nil
}

// OpenSQLite opens (creating if needed) the database at dbPath.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
