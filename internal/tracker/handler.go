// Package tracker executes expense commands against a store.
//
// Every operation is a full read-modify-write of the store file. Validation
// failures are reported to the output writer as a single line and leave the
// store untouched; only I/O and data errors are returned.
package tracker

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/matsen/expense-tracker/internal/expense"
	applog "github.com/matsen/expense-tracker/internal/log"
	"github.com/matsen/expense-tracker/internal/storage"
	"github.com/shopspring/decimal"
)

// User-facing messages.
const (
	MsgAmountTooLow = "Amount cannot be lower than 1"
	MsgInvalidID    = "Invalid ID"
	MsgUpdated      = "Expense updated successfully"
	MsgDeleted      = "Expense deleted successfully"
	MsgNoExpenses   = "No expenses found."
)

// Handler applies one command per call to the expense store.
type Handler struct {
	Store    *storage.Store
	Out      io.Writer
	Now      func() time.Time
	Currency string
	JSON     bool
	Logger   *slog.Logger
}

// New creates a handler writing to out, stamping with the wall clock and
// displaying amounts in the default currency.
func New(store *storage.Store, out io.Writer) *Handler {
	return &Handler{
		Store:    store,
		Out:      out,
		Now:      time.Now,
		Currency: expense.DefaultCurrency,
		Logger:   applog.Discard(),
	}
}

func (h *Handler) log() *slog.Logger {
	if h.Logger == nil {
		return applog.Discard()
	}
	return h.Logger
}

func (h *Handler) println(msg string) error {
	_, err := fmt.Fprintln(h.Out, msg)
	return err
}

func (h *Handler) load() ([]expense.Expense, error) {
	expenses, err := h.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	h.log().Debug("loaded store", applog.FieldPath, h.Store.Path(), applog.FieldCount, len(expenses))
	return expenses, nil
}

func (h *Handler) save(expenses []expense.Expense) error {
	if err := h.Store.Save(expenses); err != nil {
		return fmt.Errorf("saving expenses: %w", err)
	}
	h.log().Debug("saved store", applog.FieldPath, h.Store.Path(), applog.FieldCount, len(expenses))
	return nil
}

// Add records a new expense stamped with the current month.
func (h *Handler) Add(description, category string, amount decimal.Decimal) error {
	if err := expense.ValidateAmount(amount); err != nil {
		h.log().Debug("rejected", applog.FieldOperation, applog.OpAdd, applog.FieldAmount, amount.String())
		return h.println(MsgAmountTooLow)
	}

	expenses, err := h.load()
	if err != nil {
		return err
	}

	e := expense.Expense{
		ID:          storage.NextID(expenses),
		Description: description,
		Amount:      amount,
		Month:       h.Now().Month(),
		Category:    category,
	}
	expenses = append(expenses, e)

	if err := h.save(expenses); err != nil {
		return err
	}
	h.log().Debug("assigned id", applog.FieldOperation, applog.OpAdd, applog.FieldID, e.ID, applog.FieldMonth, e.Month.String())
	return h.println(fmt.Sprintf("Expense added (ID-%d)", e.ID))
}

// Update replaces the description, category and amount of an existing expense.
// The ID and month never change.
func (h *Handler) Update(id int64, description, category string, amount decimal.Decimal) error {
	expenses, err := h.load()
	if err != nil {
		return err
	}

	idx, found := storage.FindByID(expenses, id)
	if !found {
		h.log().Debug("rejected", applog.FieldOperation, applog.OpUpdate, applog.FieldID, id, applog.FieldError, expense.ErrNotFound)
		return h.println(MsgInvalidID)
	}
	if err := expense.ValidateAmount(amount); err != nil {
		h.log().Debug("rejected", applog.FieldOperation, applog.OpUpdate, applog.FieldAmount, amount.String())
		return h.println(MsgAmountTooLow)
	}

	expenses[idx].Description = description
	expenses[idx].Category = category
	expenses[idx].Amount = amount

	if err := h.save(expenses); err != nil {
		return err
	}
	return h.println(MsgUpdated)
}

// Delete removes the first expense with the given ID.
func (h *Handler) Delete(id int64) error {
	expenses, err := h.load()
	if err != nil {
		return err
	}

	remaining, deleted := storage.DeleteFromSlice(expenses, id)
	if !deleted {
		h.log().Debug("rejected", applog.FieldOperation, applog.OpDelete, applog.FieldID, id, applog.FieldError, expense.ErrNotFound)
		return h.println(MsgInvalidID)
	}

	if err := h.save(remaining); err != nil {
		return err
	}
	return h.println(MsgDeleted)
}

// List prints the expenses matching f as a table, or as JSON when h.JSON is set.
func (h *Handler) List(f expense.Filter) error {
	expenses, err := h.load()
	if err != nil {
		return err
	}
	matched := expenses
	if !f.IsEmpty() {
		matched = f.Apply(expenses)
		h.log().Debug("filtered", applog.FieldOperation, applog.OpList,
			applog.FieldMonth, f.Month, applog.FieldCategory, f.Category, applog.FieldCount, len(matched))
	}

	if h.JSON {
		return writeJSON(h.Out, toExpenseViews(matched))
	}
	if len(matched) == 0 {
		return h.println(MsgNoExpenses)
	}
	return writeExpenseTable(h.Out, matched, h.Currency)
}

// Summary prints the total of the expenses matching f.
func (h *Handler) Summary(f expense.Filter) error {
	expenses, err := h.load()
	if err != nil {
		return err
	}
	total := expense.Total(f.Apply(expenses))
	return h.println(SummaryLine(f, total))
}

// SummaryLine renders a total as "Total[ for <Month>][ and][ for <Category> category]: <n>".
func SummaryLine(f expense.Filter, total decimal.Decimal) string {
	line := "Total"
	if f.Month != "" {
		month := f.Month
		if m, err := expense.ParseMonth(f.Month); err == nil {
			month = m.String()
		}
		line += " for " + month
	}
	if f.Month != "" && f.Category != "" {
		line += " and"
	}
	if f.Category != "" {
		line += " for " + f.Category + " category"
	}
	return line + ": " + expense.FormatNumber(total)
}
