// Package catalog is a small sqlite-backed registry of named form
// scripts, adapted from the teacher's internal/database package: the
// same migration-table-then-prepared-queries shape, repurposed from
// ship/sector data to form-script text. It persists script *source*
// only — never in-flight form state (ledger/pending/answers) — so it
// does not reintroduce the resumable-persistence Non-goal the form
// engine itself excludes.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/mrdon/birocrat/internal/formlog"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Script is one catalog entry.
type Script struct {
	Name      string
	Source    string
	CreatedAt time.Time
}

// Catalog wraps a sqlite database holding named form scripts.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at filename
// and ensures the catalog schema exists.
func Open(filename string) (*Catalog, error) {
	db, err := sql.Open("sqlite", filename+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog database: %w", err)
	}
	formlog.Info("catalog opened", "file", filename)
	return c, nil
}

func (c *Catalog) migrate() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS form_scripts (
	name TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
INSERT OR IGNORE INTO schema_version (version) VALUES (1);
`)
	return err
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add registers (or replaces) a named script.
func (c *Catalog) Add(name, source string) error {
	query, args, err := psql.Insert("form_scripts").
		Columns("name", "source").
		Values(name, source).
		Suffix("ON CONFLICT(name) DO UPDATE SET source = excluded.source").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	if _, err := c.db.Exec(query, args...); err != nil {
		return fmt.Errorf("save script %q: %w", name, err)
	}
	formlog.Debug("catalog script saved", "name", name)
	return nil
}

// Get fetches a script by name.
func (c *Catalog) Get(name string) (Script, error) {
	query, args, err := psql.Select("name", "source", "created_at").
		From("form_scripts").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return Script{}, fmt.Errorf("build select query: %w", err)
	}

	var s Script
	row := c.db.QueryRow(query, args...)
	if err := row.Scan(&s.Name, &s.Source, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Script{}, fmt.Errorf("script %q not found", name)
		}
		return Script{}, fmt.Errorf("load script %q: %w", name, err)
	}
	return s, nil
}

// List returns every registered script, ordered by name.
func (c *Catalog) List() ([]Script, error) {
	query, args, err := psql.Select("name", "source", "created_at").
		From("form_scripts").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	var out []Script
	for rows.Next() {
		var s Script
		if err := rows.Scan(&s.Name, &s.Source, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan script row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
