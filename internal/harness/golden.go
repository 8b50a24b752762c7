package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/stockroom/internal/canonical"
)

// Snapshot serialises a run as canonical JSON: the scenario name, the trace
// and the final catalog. Identical runs produce identical bytes.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, ev := range result.Trace {
		m := map[string]any{
			"seq":     ev.Seq,
			"op":      ev.Op,
			"outcome": ev.Outcome,
		}
		if ev.Args != nil {
			m["args"] = ev.Args
		}
		if ev.Error != "" {
			m["error"] = ev.Error
		}
		if ev.Result != nil {
			m["result"] = ev.Result
		}
		trace[i] = m
	}

	final := make([]any, len(result.Final))
	for i, it := range result.Final {
		final[i] = itemMap(it)
	}

	return canonical.Marshal(map[string]any{
		"scenario_name": scenarioName,
		"trace":         trace,
		"final":         final,
	})
}

// AssertGolden compares the result's snapshot against
// testdata/golden/{scenarioName}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

// RunWithGolden runs a scenario and compares its snapshot with the golden
// file named after the scenario.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}
