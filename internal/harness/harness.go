package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/stockroom/internal/inventory"
)

// Harness executes the steps of one scenario.
type Harness struct {
	sys     *inventory.System
	workDir string
	clock   clock
}

// Run executes a scenario and returns the result.
//
// Each run gets a fresh System and its own temporary work directory, so runs
// are independent. An error is returned only when the scenario cannot be
// executed at all (work directory or seed file problems); expectation
// failures are reported through Result.
func Run(scenario *Scenario) (*Result, error) {
	workDir, err := os.MkdirTemp("", "stockroom-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	h := &Harness{
		sys:     inventory.New(inventory.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))),
		workDir: workDir,
	}

	if scenario.Seed != "" {
		if err := h.sys.Load(scenario.seedPath()); err != nil {
			return nil, fmt.Errorf("failed to load seed: %w", err)
		}
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.execute(i, step, result)
	}

	result.Final = slices.Collect(h.sys.ListItems())
	if scenario.Final != nil && !slices.Equal(scenario.Final, result.Final) {
		result.AddError(fmt.Sprintf("final catalog mismatch: expected %v, got %v", scenario.Final, result.Final))
	}

	return result, nil
}

// execute runs one step, appends its trace event and checks its expectation.
func (h *Harness) execute(index int, step Step, result *Result) {
	ev := TraceEvent{Seq: h.clock.Next(), Op: step.Op, Args: map[string]any{}}

	var (
		item  *inventory.Item
		items []inventory.Item
		err   error
	)

	switch step.Op {
	case OpAdd:
		ev.Args["sku"] = step.SKU
		ev.Args["quantity"] = step.Quantity
		ev.Args["unit_price"] = inventory.FormatPrice(step.UnitPrice)
		var it inventory.Item
		if it, err = h.sys.AddItem(step.SKU, step.Quantity, step.UnitPrice); err == nil {
			item = &it
		}
	case OpRemove:
		ev.Args["sku"] = step.SKU
		err = h.sys.RemoveItem(step.SKU)
	case OpAdjust:
		ev.Args["sku"] = step.SKU
		ev.Args["delta"] = step.Delta
		var it inventory.Item
		if it, err = h.sys.AdjustQuantity(step.SKU, step.Delta); err == nil {
			item = &it
		}
	case OpGet:
		ev.Args["sku"] = step.SKU
		var it inventory.Item
		if it, err = h.sys.GetItem(step.SKU); err == nil {
			item = &it
		}
	case OpList:
		items = slices.Collect(h.sys.ListItems())
	case OpLow:
		ev.Args["threshold"] = step.Threshold
		items, err = h.sys.LowStock(step.Threshold)
	case OpSave:
		ev.Args["path"] = step.Path
		err = h.sys.Save(filepath.Join(h.workDir, step.Path))
	case OpLoad:
		ev.Args["path"] = step.Path
		err = h.sys.Load(filepath.Join(h.workDir, step.Path))
	}

	if len(ev.Args) == 0 {
		ev.Args = nil
	}
	if err != nil {
		ev.Outcome = OutcomeError
		ev.Error = string(inventory.CodeOf(err))
	} else {
		ev.Outcome = OutcomeOK
		switch {
		case item != nil:
			ev.Result = itemMap(*item)
		case step.Op == OpList || step.Op == OpLow:
			ev.Result = map[string]any{"skus": skuList(items)}
		}
	}
	result.Trace = append(result.Trace, ev)

	checkExpect(index, step, ev, item, items, result)
}

func checkExpect(index int, step Step, ev TraceEvent, item *inventory.Item, items []inventory.Item, result *Result) {
	label := fmt.Sprintf("steps[%d] %s", index, step.Op)
	exp := step.Expect
	if exp == nil {
		exp = &Expect{}
	}

	if exp.Error == "" {
		if ev.Outcome == OutcomeError {
			result.AddError(fmt.Sprintf("%s: unexpected %s error", label, ev.Error))
		}
	} else if ev.Error != exp.Error {
		got := ev.Error
		if got == "" {
			got = "success"
		}
		result.AddError(fmt.Sprintf("%s: expected %s error, got %s", label, exp.Error, got))
	}

	if exp.Quantity != nil {
		if item == nil {
			result.AddError(fmt.Sprintf("%s: expected quantity %d, got no item", label, *exp.Quantity))
		} else if item.Quantity != *exp.Quantity {
			result.AddError(fmt.Sprintf("%s: expected quantity %d, got %d", label, *exp.Quantity, item.Quantity))
		}
	}

	if exp.SKUs != nil {
		got := make([]string, len(items))
		for i, it := range items {
			got[i] = it.SKU
		}
		if !slices.Equal(exp.SKUs, got) {
			result.AddError(fmt.Sprintf("%s: expected skus %v, got %v", label, exp.SKUs, got))
		}
	}

	if exp.Count != nil && len(items) != *exp.Count {
		result.AddError(fmt.Sprintf("%s: expected %d items, got %d", label, *exp.Count, len(items)))
	}
}
