package tracker

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matsen/expense-tracker/internal/expense"
	"github.com/matsen/expense-tracker/internal/storage"
	"github.com/shopspring/decimal"
)

// setupHandler returns a handler over an initialized store in a temp dir,
// with the clock fixed in March.
func setupHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	store := storage.New(filepath.Join(t.TempDir(), "expenses.csv"))
	if _, err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	var out bytes.Buffer
	h := New(store, &out)
	h.Now = func() time.Time { return time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC) }
	return h, &out
}

// seed writes expenses directly to the handler's store.
func seed(t *testing.T, h *Handler, expenses []expense.Expense) {
	t.Helper()
	if err := h.Store.Save(expenses); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func sampleExpenses() []expense.Expense {
	return []expense.Expense{
		{ID: 1, Description: "Lunch", Amount: dec("12.5"), Month: time.March, Category: "Food"},
		{ID: 2, Description: "Bus pass", Amount: dec("30"), Month: time.March, Category: "Transport"},
		{ID: 3, Description: "Groceries", Amount: dec("45.25"), Month: time.April, Category: "food"},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func readStore(t *testing.T, h *Handler) []byte {
	t.Helper()
	data, err := os.ReadFile(h.Store.Path())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	return data
}

func loadAll(t *testing.T, h *Handler) []expense.Expense {
	t.Helper()
	expenses, err := h.Store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return expenses
}

func TestAdd_FirstExpense(t *testing.T) {
	h, out := setupHandler(t)

	if err := h.Add("Lunch", "Food", dec("12.5")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := out.String(); got != "Expense added (ID-1)\n" {
		t.Errorf("output = %q, want %q", got, "Expense added (ID-1)\n")
	}

	expenses := loadAll(t, h)
	if len(expenses) != 1 {
		t.Fatalf("store has %d expenses, want 1", len(expenses))
	}
	e := expenses[0]
	if e.ID != 1 || e.Description != "Lunch" || e.Category != "Food" || !e.Amount.Equal(dec("12.5")) {
		t.Errorf("stored expense = %+v", e)
	}
	if e.Month != time.March {
		t.Errorf("Month = %v, want March from the clock", e.Month)
	}
}

func TestAdd_AssignsMaxPlusOne(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, []expense.Expense{
		{ID: 7, Description: "a", Amount: dec("5"), Month: time.January, Category: "x"},
		{ID: 2, Description: "b", Amount: dec("5"), Month: time.January, Category: "x"},
	})

	if err := h.Add("Coffee", "Food", dec("3")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !strings.Contains(out.String(), "ID-8") {
		t.Errorf("output = %q, want ID-8", out.String())
	}

	expenses := loadAll(t, h)
	if last := expenses[len(expenses)-1]; last.ID != 8 || last.Description != "Coffee" {
		t.Errorf("appended expense = %+v, want ID 8 Coffee at the end", last)
	}
}

func TestAdd_AmountTooLow(t *testing.T) {
	tests := []string{"0.5", "0", "-3", "0.99"}
	for _, amount := range tests {
		t.Run(amount, func(t *testing.T) {
			h, out := setupHandler(t)
			before := readStore(t, h)

			if err := h.Add("Gum", "Food", dec(amount)); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if got := out.String(); got != MsgAmountTooLow+"\n" {
				t.Errorf("output = %q, want %q", got, MsgAmountTooLow)
			}
			if !bytes.Equal(readStore(t, h), before) {
				t.Error("store changed after rejected add")
			}
		})
	}
}

func TestAdd_MinimumAccepted(t *testing.T) {
	h, out := setupHandler(t)
	if err := h.Add("Gum", "Food", dec("1")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := out.String(); got != "Expense added (ID-1)\n" {
		t.Errorf("output = %q", got)
	}
}

func TestUpdate_ChangesOnlyMutableFields(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, sampleExpenses())

	if err := h.Update(2, "Monthly pass", "Commute", dec("55")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := out.String(); got != MsgUpdated+"\n" {
		t.Errorf("output = %q, want %q", got, MsgUpdated)
	}

	expenses := loadAll(t, h)
	want := sampleExpenses()
	want[1].Description = "Monthly pass"
	want[1].Category = "Commute"
	want[1].Amount = dec("55")

	if len(expenses) != len(want) {
		t.Fatalf("len = %d, want %d", len(expenses), len(want))
	}
	for i := range want {
		got := expenses[i]
		if got.ID != want[i].ID || got.Description != want[i].Description || got.Category != want[i].Category ||
			got.Month != want[i].Month || !got.Amount.Equal(want[i].Amount) {
			t.Errorf("expenses[%d] = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestUpdate_InvalidID(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, sampleExpenses())
	before := readStore(t, h)

	// Unknown ID is reported before the amount is checked
	if err := h.Update(99, "x", "y", dec("0.5")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := out.String(); got != MsgInvalidID+"\n" {
		t.Errorf("output = %q, want %q", got, MsgInvalidID)
	}
	if !bytes.Equal(readStore(t, h), before) {
		t.Error("store changed after update of unknown ID")
	}
}

func TestUpdate_AmountTooLow(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, sampleExpenses())
	before := readStore(t, h)

	if err := h.Update(1, "Lunch", "Food", dec("0.5")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := out.String(); got != MsgAmountTooLow+"\n" {
		t.Errorf("output = %q, want %q", got, MsgAmountTooLow)
	}
	if !bytes.Equal(readStore(t, h), before) {
		t.Error("store changed after rejected update")
	}
}

func TestDelete(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, sampleExpenses())

	if err := h.Delete(2); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := out.String(); got != MsgDeleted+"\n" {
		t.Errorf("output = %q, want %q", got, MsgDeleted)
	}

	expenses := loadAll(t, h)
	if len(expenses) != 2 || expenses[0].ID != 1 || expenses[1].ID != 3 {
		t.Errorf("remaining = %+v, want IDs 1 and 3 in order", expenses)
	}
	if expenses[1].Description != "Groceries" {
		t.Errorf("remaining record changed: %+v", expenses[1])
	}
}

func TestDelete_InvalidID(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, sampleExpenses())
	before := readStore(t, h)

	if err := h.Delete(99); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := out.String(); got != MsgInvalidID+"\n" {
		t.Errorf("output = %q, want %q", got, MsgInvalidID)
	}
	if !bytes.Equal(readStore(t, h), before) {
		t.Error("store changed after delete of unknown ID")
	}
}

func TestList_Empty(t *testing.T) {
	h, out := setupHandler(t)
	if err := h.List(expense.Filter{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := out.String(); got != MsgNoExpenses+"\n" {
		t.Errorf("output = %q, want %q", got, MsgNoExpenses)
	}
}

func TestList_Table(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, sampleExpenses())

	if err := h.List(expense.Filter{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), out.String())
	}
	for _, col := range []string{"ID", "Month", "Description", "Category", "Amount"} {
		if !strings.Contains(lines[0], col) {
			t.Errorf("header %q missing column %s", lines[0], col)
		}
	}
	if !strings.HasPrefix(lines[1], "1 ") || !strings.Contains(lines[1], "Lunch") || !strings.HasSuffix(lines[1], "$12.50") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "$30.00") {
		t.Errorf("row 2 = %q, want amount $30.00", lines[2])
	}
	// Fixed-width columns: all rows are the same length
	for _, line := range lines[1:] {
		if len(line) != len(lines[0]) {
			t.Errorf("row %q has width %d, header has %d", line, len(line), len(lines[0]))
		}
	}
}

func TestList_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter expense.Filter
		want   []string
	}{
		{"month", expense.Filter{Month: "march"}, []string{"Lunch", "Bus pass"}},
		{"category ignores case", expense.Filter{Category: "FOOD"}, []string{"Lunch", "Groceries"}},
		{"both", expense.Filter{Month: "April", Category: "Food"}, []string{"Groceries"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, out := setupHandler(t)
			seed(t, h, sampleExpenses())
			h.JSON = true

			if err := h.List(tt.filter); err != nil {
				t.Fatalf("List() error = %v", err)
			}
			var views []ExpenseView
			if err := json.Unmarshal(out.Bytes(), &views); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out.String())
			}
			if len(views) != len(tt.want) {
				t.Fatalf("got %d expenses, want %d", len(views), len(tt.want))
			}
			for i, desc := range tt.want {
				if views[i].Description != desc {
					t.Errorf("views[%d] = %q, want %q", i, views[i].Description, desc)
				}
			}
		})
	}
}

func TestList_CustomCurrency(t *testing.T) {
	h, out := setupHandler(t)
	seed(t, h, sampleExpenses()[:1])
	h.Currency = "EUR"

	if err := h.List(expense.Filter{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !strings.Contains(out.String(), "€") {
		t.Errorf("output %q missing euro symbol", out.String())
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		filter expense.Filter
		want   string
	}{
		{"all", expense.Filter{}, "Total: 87.75"},
		{"month", expense.Filter{Month: "March"}, "Total for March: 42.5"},
		{"month lower case", expense.Filter{Month: "march"}, "Total for March: 42.5"},
		{"category", expense.Filter{Category: "Food"}, "Total for Food category: 57.75"},
		{"both", expense.Filter{Month: "March", Category: "Food"}, "Total for March and for Food category: 12.5"},
		{"no match", expense.Filter{Month: "December"}, "Total for December: 0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, out := setupHandler(t)
			seed(t, h, sampleExpenses())

			if err := h.Summary(tt.filter); err != nil {
				t.Fatalf("Summary() error = %v", err)
			}
			if got := strings.TrimSuffix(out.String(), "\n"); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummary_WholeNumberTotal(t *testing.T) {
	if got := SummaryLine(expense.Filter{}, dec("123")); got != "Total: 123.0" {
		t.Errorf("SummaryLine() = %q, want %q", got, "Total: 123.0")
	}
}

func TestHandler_ScenarioSequence(t *testing.T) {
	h, out := setupHandler(t)

	steps := []func() error{
		func() error { return h.Add("Lunch", "Food", dec("12.5")) },
		func() error { return h.Add("Gum", "Food", dec("0.5")) },
		func() error { return h.Add("Taxi", "Transport", dec("20")) },
		func() error { return h.Summary(expense.Filter{Month: "March"}) },
		func() error { return h.Delete(99) },
		func() error { return h.Delete(1) },
		func() error { return h.Add("Dinner", "Food", dec("30")) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	want := strings.Join([]string{
		"Expense added (ID-1)",
		MsgAmountTooLow,
		"Expense added (ID-2)",
		"Total for March: 32.5",
		MsgInvalidID,
		MsgDeleted,
		"Expense added (ID-3)",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestHandler_MalformedStore(t *testing.T) {
	h, _ := setupHandler(t)
	if err := os.WriteFile(h.Store.Path(), []byte("id,description,amount,month,category\nx,Lunch,1.0,March,Food\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := h.List(expense.Filter{}); err == nil {
		t.Error("List() expected error for malformed store")
	}
	if err := h.Add("a", "b", dec("2")); err == nil {
		t.Error("Add() expected error for malformed store")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a long description", 10, "a long ..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
