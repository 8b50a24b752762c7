package harness

import (
	"github.com/roach88/stockroom/internal/inventory"
)

// Trace outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq     int64          `json:"seq"`
	Op      string         `json:"op"`
	Args    map[string]any `json:"args,omitempty"`
	Outcome string         `json:"outcome"`
	Error   string         `json:"error,omitempty"`
	Result  map[string]any `json:"result,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the catalog after the last step, ordered by SKU.
	Final []inventory.Item `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func itemMap(it inventory.Item) map[string]any {
	return map[string]any{
		"sku":        it.SKU,
		"quantity":   it.Quantity,
		"unit_price": inventory.FormatPrice(it.UnitPrice),
	}
}

func skuList(items []inventory.Item) []any {
	skus := make([]any, len(items))
	for i, it := range items {
		skus[i] = it.SKU
	}
	return skus
}
