package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matsen/expense-tracker/internal/expense"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Index is an ephemeral SQLite copy of the CSV store used for reports.
// The CSV file stays the source of truth; the index can be deleted and rebuilt at any time.
type Index struct {
	db   *sql.DB
	path string
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string
	Count    int
	Total    decimal.Decimal
}

// IndexPath returns the index location for a store: the CSV path with a .db extension.
func IndexPath(storePath string) string {
	ext := filepath.Ext(storePath)
	return strings.TrimSuffix(storePath, ext) + ".db"
}

// OpenIndex opens or creates the index database and applies migrations.
func OpenIndex(path string) (*Index, error) {
	if err := RunMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping index: %w", err)
	}

	return &Index{db: db, path: path}, nil
}

// Close closes the database connection.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Path returns the location of the index database.
func (ix *Index) Path() string {
	return ix.path
}

// ComputeFileHash computes a SHA256 hash of a file's contents.
// A missing file hashes like an empty one.
func ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// NeedsSync reports whether the index is older than the CSV at csvPath.
func (ix *Index) NeedsSync(csvPath string) (bool, error) {
	current, err := ComputeFileHash(csvPath)
	if err != nil {
		return true, err
	}
	stored, err := ix.getMeta("csv_hash")
	if err != nil {
		return true, err
	}
	return current != stored, nil
}

// Rebuild replaces the index contents with expenses and records the hash of
// csvPath. Returns the number of rows indexed.
func (ix *Index) Rebuild(csvPath string, expenses []expense.Expense) (int, error) {
	hash, err := ComputeFileHash(csvPath)
	if err != nil {
		return 0, fmt.Errorf("computing hash: %w", err)
	}

	tx, err := ix.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM expenses"); err != nil {
		return 0, fmt.Errorf("clearing expenses table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO expenses (position, id, description, amount, month, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		amount, _ := e.Amount.Float64()
		if _, err := stmt.Exec(i+1, e.ID, e.Description, amount, int(e.Month), e.Category); err != nil {
			return 0, fmt.Errorf("inserting expense %d: %w", e.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('csv_hash', ?)`, hash); err != nil {
		return 0, fmt.Errorf("updating hash: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('last_sync', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(expenses), nil
}

// LastSync returns when the index was last rebuilt, or the zero time if never.
func (ix *Index) LastSync() (time.Time, error) {
	value, err := ix.getMeta("last_sync")
	if err != nil || value == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

// Count returns the number of indexed expenses.
func (ix *Index) Count() (int, error) {
	var n int
	if err := ix.db.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting expenses: %w", err)
	}
	return n, nil
}

// CategoryTotals groups expenses by category, ignoring case, largest total first.
// A zero month includes every month.
func (ix *Index) CategoryTotals(month time.Month) ([]CategoryTotal, error) {
	rows, err := ix.db.Query(`
		SELECT MIN(category), COUNT(*), SUM(amount)
		FROM expenses
		WHERE ? = 0 OR month = ?
		GROUP BY lower(category)
		ORDER BY SUM(amount) DESC, lower(category) ASC
	`, int(month), int(month))
	if err != nil {
		return nil, fmt.Errorf("querying category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		var sum float64
		if err := rows.Scan(&ct.Category, &ct.Count, &sum); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}
		ct.Total = decimal.NewFromFloat(sum)
		totals = append(totals, ct)
	}

	return totals, rows.Err()
}

// getMeta reads a value from the _meta table; missing keys return "".
func (ix *Index) getMeta(key string) (string, error) {
	var value sql.NullString
	err := ix.db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}
