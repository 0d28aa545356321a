package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ctpsync/internal/draft"
)

// Snapshot is the part of a result that golden files pin down.
//
// Content hashes are left out: they change with any payload change and add
// nothing the payloads do not already show.
type Snapshot struct {
	ScenarioName string
	RunID        string
	Result       *Result
}

// toCanonicalMap converts a Snapshot to plain maps for canonical JSON.
func (s *Snapshot) toCanonicalMap() map[string]any {
	stats := make([]any, len(s.Result.Statistics))
	for i, st := range s.Result.Statistics {
		stats[i] = map[string]any{
			"resource":  st.Resource,
			"processed": st.Processed,
			"created":   st.Created,
			"updated":   st.Updated,
			"failed":    st.Failed,
		}
	}

	failures := make([]any, len(s.Result.Failures))
	for i, f := range s.Result.Failures {
		failures[i] = map[string]any{"code": f.Code, "message": f.Message}
	}

	resources := make([]any, len(s.Result.Resources))
	for i, r := range s.Result.Resources {
		resources[i] = map[string]any{
			"type":    r.ResourceType,
			"id":      r.ID,
			"key":     r.Key,
			"payload": json.RawMessage(r.Payload),
		}
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"statistics":    stats,
		"failures":      failures,
		"warnings":      s.Result.Warnings,
		"resources":     resources,
	}
	if s.RunID != "" {
		result["run_id"] = s.RunID
	}
	return result
}

// MarshalSnapshot renders the canonical JSON snapshot of a scenario result,
// byte-identical to what golden files hold.
func MarshalSnapshot(scenario *Scenario, result *Result) ([]byte, error) {
	s := Snapshot{ScenarioName: scenario.Name, RunID: scenario.RunID, Result: result}
	return draft.MarshalCanonical(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(t.Context(), scenario)
	if err != nil {
		return nil, err
	}

	data, err := MarshalSnapshot(scenario, result)
	if err != nil {
		return nil, err
	}
	assertGolden(t, scenario.Name, data)
	return result, nil
}

// AssertGolden compares an already computed result against a golden file.
// The snapshot carries no run id.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(&Scenario{Name: scenarioName}, result)
	if err != nil {
		return err
	}
	assertGolden(t, scenarioName, data)
	return nil
}

func assertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
