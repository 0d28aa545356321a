package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/ctpsync/internal/draft"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Context  []string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if len(e.Context) > 0 {
		fmt.Fprintf(&buf, "\nReported:\n")
		for i, line := range e.Context {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, line)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against the result and returns
// the messages of those that failed, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failed []string
	for _, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failed = append(failed, err.Error())
		}
	}
	return failed
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertStatistics:
		return assertStatistics(result, a)
	case AssertErrorContains:
		return assertErrorContains(result, a)
	case AssertWarningContains:
		return assertWarningContains(result, a)
	case AssertErrorCount:
		return assertErrorCount(result, a)
	case AssertStoredField:
		return assertStoredField(result, a)
	case AssertResourceCount:
		return assertResourceCount(result, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertStatistics(result *Result, a Assertion) error {
	stats, ok := result.statisticsFor(a.Resource)
	if !ok {
		return &AssertionError{
			Type:     AssertStatistics,
			Expected: fmt.Sprintf("statistics for %s", a.Resource),
			Actual:   "resource was not synced",
		}
	}

	var mismatches []string
	check := func(name string, want *int64, got int64) {
		if want != nil && *want != got {
			mismatches = append(mismatches, fmt.Sprintf("%s=%d (want %d)", name, got, *want))
		}
	}
	check("processed", a.Processed, stats.Processed)
	check("created", a.Created, stats.Created)
	check("updated", a.Updated, stats.Updated)
	check("failed", a.Failed, stats.Failed)
	if len(mismatches) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertStatistics,
		Expected: fmt.Sprintf("%s counters to match", a.Resource),
		Actual:   strings.Join(mismatches, ", "),
		Context:  []string{stats.ReportMessage()},
	}
}

func assertErrorContains(result *Result, a Assertion) error {
	messages := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		messages = append(messages, f.Message)
		if a.Code != "" && f.Code != a.Code {
			continue
		}
		if strings.Contains(f.Message, a.Contains) {
			return nil
		}
	}

	expected := fmt.Sprintf("a failure containing %q", a.Contains)
	if a.Code != "" {
		expected = fmt.Sprintf("a %s failure containing %q", a.Code, a.Contains)
	}
	return &AssertionError{
		Type:     AssertErrorContains,
		Expected: expected,
		Actual:   fmt.Sprintf("%d failures, none matching", len(result.Failures)),
		Context:  messages,
	}
}

func assertWarningContains(result *Result, a Assertion) error {
	for _, w := range result.Warnings {
		if strings.Contains(w, a.Contains) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertWarningContains,
		Expected: fmt.Sprintf("a warning containing %q", a.Contains),
		Actual:   fmt.Sprintf("%d warnings, none matching", len(result.Warnings)),
		Context:  result.Warnings,
	}
}

func assertErrorCount(result *Result, a Assertion) error {
	if len(result.Failures) == *a.Count {
		return nil
	}
	messages := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		messages = append(messages, f.Message)
	}
	return &AssertionError{
		Type:     AssertErrorCount,
		Expected: fmt.Sprintf("%d failures", *a.Count),
		Actual:   fmt.Sprintf("%d failures", len(result.Failures)),
		Context:  messages,
	}
}

func assertResourceCount(result *Result, a Assertion) error {
	n := 0
	for _, r := range result.Resources {
		if r.ResourceType == a.ResourceType {
			n++
		}
	}
	if n == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertResourceCount,
		Expected: fmt.Sprintf("%d %s resources", *a.Count, a.ResourceType),
		Actual:   fmt.Sprintf("%d %s resources", n, a.ResourceType),
	}
}

// assertStoredField compares the value at a dotted path of a stored payload.
// Path segments index objects by name and arrays by position, e.g.
// "categories.0.id". A nil Equals expects the path to be absent or null.
func assertStoredField(result *Result, a Assertion) error {
	res, ok := result.resource(a.ResourceType, a.Key)
	if !ok {
		return &AssertionError{
			Type:     AssertStoredField,
			Expected: fmt.Sprintf("%s %q to be stored", a.ResourceType, a.Key),
			Actual:   "not found in catalog",
		}
	}

	var payload any
	dec := json.NewDecoder(bytes.NewReader(res.Payload))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("stored_field: decode %s %q: %w", a.ResourceType, a.Key, err)
	}

	got, found := lookupPath(payload, a.Path)
	if !found {
		got = nil
	}

	want, err := draft.MarshalCanonical(a.Equals)
	if err != nil {
		return fmt.Errorf("stored_field: encode expected value: %w", err)
	}
	actual, err := draft.MarshalCanonical(got)
	if err != nil {
		return fmt.Errorf("stored_field: encode stored value: %w", err)
	}
	if bytes.Equal(want, actual) {
		return nil
	}
	return &AssertionError{
		Type:     AssertStoredField,
		Expected: fmt.Sprintf("%s %q %s = %s", a.ResourceType, a.Key, a.Path, want),
		Actual:   string(actual),
		Context:  []string{string(res.Payload)},
	}
}

func lookupPath(v any, path string) (any, bool) {
	for _, seg := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			v = node[i]
		default:
			return nil, false
		}
	}
	return v, true
}
