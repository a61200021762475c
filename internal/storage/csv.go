// Package storage handles persistence of expenses in CSV and the SQLite query index.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matsen/expense-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

// Header is the column order of the CSV store.
var Header = []string{"id", "description", "amount", "month", "category"}

// ErrMalformed marks store contents that cannot be decoded.
var ErrMalformed = errors.New("malformed store")

// Store is a CSV-backed expense store. It holds no state between calls:
// every Load reads the file and every Save rewrites it.
type Store struct {
	path string
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the CSV file.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the CSV file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates the store with only the header if it does not exist.
// An existing store is never truncated. Reports whether the file was created.
func (s *Store) Initialize() (bool, error) {
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking store file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("creating store directory: %w", err)
		}
	}

	if err := s.Save(nil); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads all expenses in file order. A missing file yields no records.
func (s *Store) Load() ([]expense.Expense, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening store file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Save replaces the store contents with the header followed by expenses.
// Writes go to a temp file in the same directory that is renamed into place.
func (s *Store) Save(expenses []expense.Expense) error {
	dir := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := Encode(tmpFile, expenses); err != nil {
		tmpFile.Close()
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	// CreateTemp uses 0600; match a normally created file.
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting store permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Encode writes the header and one row per expense.
func Encode(w io.Writer, expenses []expense.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range expenses {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Description,
			expense.FormatNumber(e.Amount),
			e.Month.String(),
			e.Category,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing expense %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing store: %w", err)
	}
	return nil
}

// Decode reads expenses from CSV. Columns are located by header name,
// so a reordered header still decodes. Empty input yields no records.
func Decode(r io.Reader) ([]expense.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformed, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, name)
		}
	}

	var expenses []expense.Expense
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		e, err := decodeRow(row, cols)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

// decodeRow converts one CSV row to an expense.
func decodeRow(row []string, cols map[string]int) (expense.Expense, error) {
	field := func(name string) string {
		if i := cols[name]; i < len(row) {
			return row[i]
		}
		return ""
	}

	id, err := strconv.ParseInt(strings.TrimSpace(field("id")), 10, 64)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("invalid id %q", field("id"))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(field("amount")))
	if err != nil {
		return expense.Expense{}, fmt.Errorf("invalid amount %q", field("amount"))
	}

	month, err := expense.ParseMonth(field("month"))
	if err != nil {
		return expense.Expense{}, fmt.Errorf("invalid month %q", field("month"))
	}

	return expense.Expense{
		ID:          id,
		Description: field("description"),
		Amount:      amount,
		Month:       month,
		Category:    field("category"),
	}, nil
}
