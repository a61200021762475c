package tracker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/expense-tracker/internal/storage"
)

// Issue types reported by Check.
const (
	IssueDuplicateID   = "duplicate_id"
	IssueInvalidRecord = "invalid_record"
)

// CheckResult is the outcome of a store integrity check.
type CheckResult struct {
	Status   string       `json:"status"`
	Expenses int          `json:"expenses"`
	Issues   []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type   string `json:"type"`
	ID     int64  `json:"id"`
	Count  int    `json:"count,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Check inspects the store for duplicate IDs and records that would not be
// accepted by add today, and prints the findings. Issues are warnings, not errors.
func (h *Handler) Check() (*CheckResult, error) {
	expenses, err := h.load()
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int)
	for _, e := range expenses {
		counts[e.ID]++
	}

	issues := []CheckIssue{}
	for _, id := range storage.DuplicateIDs(expenses) {
		issues = append(issues, CheckIssue{Type: IssueDuplicateID, ID: id, Count: counts[id]})
	}
	for _, e := range expenses {
		if err := e.Validate(); err != nil {
			issues = append(issues, CheckIssue{Type: IssueInvalidRecord, ID: e.ID, Detail: err.Error()})
		}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].ID < issues[j].ID })

	result := &CheckResult{Status: "ok", Expenses: len(expenses), Issues: issues}
	if len(issues) > 0 {
		result.Status = "issues"
	}

	if h.JSON {
		return result, writeJSON(h.Out, result)
	}
	return result, h.println(formatCheck(result))
}

func formatCheck(r *CheckResult) string {
	var b strings.Builder
	if len(r.Issues) == 0 {
		fmt.Fprintf(&b, "Store check: OK\n\n%d expenses checked", r.Expenses)
		return b.String()
	}

	fmt.Fprintf(&b, "Store check: %d issues found\n\n", len(r.Issues))
	for _, issue := range r.Issues {
		switch issue.Type {
		case IssueDuplicateID:
			fmt.Fprintf(&b, "  [WARN] Duplicate ID %d (%d records)\n", issue.ID, issue.Count)
		case IssueInvalidRecord:
			fmt.Fprintf(&b, "  [WARN] Expense %d: %s\n", issue.ID, issue.Detail)
		}
	}
	fmt.Fprintf(&b, "\n%d expenses checked", r.Expenses)
	return b.String()
}
