// Package budget holds the spend aggregation and budget warning logic.
// Everything here is a pure function over data the services read for one
// user; nothing touches the database or keeps state between calls.
package budget

import "strconv"

// Level classifies spend against a budget threshold.
type Level string

const (
	LevelNone     Level = "none"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Line is a budget row as the evaluator sees it. Amounts are cents.
type Line struct {
	CategoryID    uint
	MonthlyBudget int64
}

// Expense is an expense row as the aggregator sees it. Amount is cents.
type Expense struct {
	CategoryID uint
	Amount     int64
}

// Warning is the single at-risk budget surfaced to the caller.
type Warning struct {
	CategoryName  string `json:"category_name"`
	MonthlyBudget int64  `json:"monthly_budget"`
	CurrentSpend  int64  `json:"current_spend"`
	Level         Level  `json:"level"`
}

// Aggregate sums expense amounts per category. Categories without any
// expense are absent from the result; an empty input yields an empty map.
func Aggregate(expenses []Expense) map[uint]int64 {
	totals := make(map[uint]int64, len(expenses))
	for _, e := range expenses {
		totals[e.CategoryID] += e.Amount
	}
	return totals
}

// Classify returns the warning level for the given spend and budget,
// both in cents. Critical means the budget is met or exceeded; warning
// starts at 80% of the budget. The threshold comparison is done in
// integers (5*spend >= 4*budget) so no float rounding is involved.
func Classify(spend, monthlyBudget int64) Level {
	if monthlyBudget <= 0 {
		return LevelNone
	}
	switch {
	case spend >= monthlyBudget:
		return LevelCritical
	case 5*spend >= 4*monthlyBudget:
		return LevelWarning
	default:
		return LevelNone
	}
}

// Evaluate scans budgets in the supplied order and returns a warning for
// the first one whose level is warning or critical, or nil when no budget
// qualifies. A category absent from spend counts as zero spend; a category
// absent from names is rendered as its numeric id.
//
// First qualifying match wins even when a later budget is more severe;
// EvaluateMostSevere provides the severity-ordered alternative.
func Evaluate(budgets []Line, spend map[uint]int64, names map[uint]string) *Warning {
	for _, b := range budgets {
		if w := check(b, spend, names); w != nil {
			return w
		}
	}
	return nil
}

// EvaluateMostSevere returns the worst qualifying budget instead of the
// first: critical beats warning, and within a level the higher
// spend-to-budget ratio wins. Ties keep the earlier budget.
func EvaluateMostSevere(budgets []Line, spend map[uint]int64, names map[uint]string) *Warning {
	var worst *Warning
	for _, b := range budgets {
		w := check(b, spend, names)
		if w == nil {
			continue
		}
		if worst == nil || moreSevere(w, worst) {
			worst = w
		}
	}
	return worst
}

func check(b Line, spend map[uint]int64, names map[uint]string) *Warning {
	current := spend[b.CategoryID]
	level := Classify(current, b.MonthlyBudget)
	if level == LevelNone {
		return nil
	}

	name, ok := names[b.CategoryID]
	if !ok {
		name = strconv.FormatUint(uint64(b.CategoryID), 10)
	}

	return &Warning{
		CategoryName:  name,
		MonthlyBudget: b.MonthlyBudget,
		CurrentSpend:  current,
		Level:         level,
	}
}

// moreSevere reports whether a outranks b. Ratios are compared by
// cross-multiplication to stay in integer arithmetic.
func moreSevere(a, b *Warning) bool {
	if a.Level != b.Level {
		return a.Level == LevelCritical
	}
	return a.CurrentSpend*b.MonthlyBudget > b.CurrentSpend*a.MonthlyBudget
}
