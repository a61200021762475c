package tracker

import (
	"fmt"
	"io"
	"time"

	"github.com/matsen/expense-tracker/internal/expense"
	applog "github.com/matsen/expense-tracker/internal/log"
	"github.com/matsen/expense-tracker/internal/storage"
	"github.com/shopspring/decimal"
)

// ReportRow is one category line of a report.
type ReportRow struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Total    string `json:"total"`
}

// ReportResult is the JSON form of a report.
type ReportResult struct {
	Month      string      `json:"month,omitempty"`
	Categories []ReportRow `json:"categories"`
	Count      int         `json:"count"`
	Total      string      `json:"total"`
}

// RebuildResult is the JSON form of a rebuild.
type RebuildResult struct {
	Status   string `json:"status"`
	Expenses int    `json:"expenses"`
	Index    string `json:"index"`
	LastSync string `json:"last_sync"`
}

// openIndex opens the SQLite index beside the store and rebuilds it when the
// CSV has changed since the last sync (or force is set).
func (h *Handler) openIndex(force bool) (*storage.Index, int, error) {
	ix, err := storage.OpenIndex(storage.IndexPath(h.Store.Path()))
	if err != nil {
		return nil, 0, err
	}

	stale := force
	if !stale {
		stale, err = ix.NeedsSync(h.Store.Path())
		if err != nil {
			ix.Close()
			return nil, 0, fmt.Errorf("checking index: %w", err)
		}
	}
	if !stale {
		return ix, 0, nil
	}

	expenses, err := h.load()
	if err != nil {
		ix.Close()
		return nil, 0, err
	}
	n, err := ix.Rebuild(h.Store.Path(), expenses)
	if err != nil {
		ix.Close()
		return nil, 0, fmt.Errorf("rebuilding index: %w", err)
	}
	h.log().Debug("rebuilt index", applog.FieldPath, ix.Path(), applog.FieldCount, n)
	return ix, n, nil
}

// Rebuild recreates the SQLite index from the store and prints how many
// expenses were indexed.
func (h *Handler) Rebuild() (int, error) {
	ix, n, err := h.openIndex(true)
	if err != nil {
		return 0, err
	}
	defer ix.Close()

	if h.JSON {
		lastSync, err := ix.LastSync()
		if err != nil {
			return n, fmt.Errorf("reading sync time: %w", err)
		}
		return n, writeJSON(h.Out, RebuildResult{
			Status:   "rebuilt",
			Expenses: n,
			Index:    ix.Path(),
			LastSync: lastSync.Format(time.RFC3339),
		})
	}
	return n, h.println(fmt.Sprintf("Rebuilt index with %d expenses", n))
}

// Report prints per-category counts and totals, largest first.
// A zero month covers the whole store.
func (h *Handler) Report(month time.Month) error {
	ix, _, err := h.openIndex(false)
	if err != nil {
		return err
	}
	defer ix.Close()

	totals, err := ix.CategoryTotals(month)
	if err != nil {
		return err
	}
	h.log().Debug("report", applog.FieldOperation, applog.OpReport, applog.FieldCount, len(totals))

	result := buildReport(month, totals, h.Currency)
	if h.JSON {
		return writeJSON(h.Out, result)
	}
	if len(totals) == 0 {
		return h.println(MsgNoExpenses)
	}
	return writeReportTable(h.Out, result)
}

func buildReport(month time.Month, totals []storage.CategoryTotal, currency string) ReportResult {
	result := ReportResult{Categories: []ReportRow{}}
	if month != 0 {
		result.Month = month.String()
	}

	grand := decimal.Zero
	for _, ct := range totals {
		result.Categories = append(result.Categories, ReportRow{
			Category: ct.Category,
			Count:    ct.Count,
			Total:    expense.FormatAmount(ct.Total, currency),
		})
		result.Count += ct.Count
		grand = grand.Add(ct.Total)
	}
	result.Total = expense.FormatAmount(grand, currency)
	return result
}

func writeReportTable(w io.Writer, result ReportResult) error {
	row := fmt.Sprintf("%%-%ds %%6s %%%ds\n", categoryWidth, amountWidth)

	if result.Month != "" {
		if _, err := fmt.Fprintf(w, "Report for %s\n\n", result.Month); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, row, "Category", "Count", "Total"); err != nil {
		return err
	}
	for _, r := range result.Categories {
		if _, err := fmt.Fprintf(w, row, truncateString(r.Category, categoryWidth), fmt.Sprintf("%d", r.Count), r.Total); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, row, "Total", fmt.Sprintf("%d", result.Count), result.Total)
	return err
}
