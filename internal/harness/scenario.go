package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ctpsync/internal/draft"
	"github.com/roach88/ctpsync/internal/store"
)

// Scenario defines one sync conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed lists resources that exist in the catalog before the run.
	Seed []store.SeedResource `yaml:"seed,omitempty"`

	// Drafts is the document that gets synced.
	Drafts draft.Document `yaml:"drafts"`

	// Options tunes the sync.
	Options Options `yaml:"options,omitempty"`

	// Assertions validate the outcome.
	Assertions []Assertion `yaml:"assertions"`

	// RunID pins the run id. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// Options mirrors the sync options a scenario may set.
type Options struct {
	BatchSize          int  `yaml:"batchSize,omitempty"`
	ParallelProcessing int  `yaml:"parallelProcessing,omitempty"`
	EnsureChannels     bool `yaml:"ensureChannels,omitempty"`
}

// Assertion validates the outcome of a scenario. Which fields apply depends
// on Type.
type Assertion struct {
	Type string `yaml:"type"`

	// Resource is the plural resource name of a statistics assertion, e.g. "categories".
	Resource  string `yaml:"resource,omitempty"`
	Processed *int64 `yaml:"processed,omitempty"`
	Created   *int64 `yaml:"created,omitempty"`
	Updated   *int64 `yaml:"updated,omitempty"`
	Failed    *int64 `yaml:"failed,omitempty"`

	// Contains is the expected substring of error_contains and warning_contains.
	Contains string `yaml:"contains,omitempty"`

	// Code optionally narrows error_contains to one failure code.
	Code string `yaml:"code,omitempty"`

	// ResourceType, Key, Path and Equals drive stored_field; ResourceType
	// and Count drive resource_count and Count drives error_count.
	ResourceType string `yaml:"resource_type,omitempty"`
	Key          string `yaml:"key,omitempty"`
	Path         string `yaml:"path,omitempty"`
	Equals       any    `yaml:"equals,omitempty"`
	Count        *int   `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertStatistics      = "statistics"
	AssertErrorContains   = "error_contains"
	AssertWarningContains = "warning_contains"
	AssertErrorCount      = "error_count"
	AssertStoredField     = "stored_field"
	AssertResourceCount   = "resource_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with the same checks as LoadScenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "asertions:" and friends
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Drafts.Len() == 0 {
		return fmt.Errorf("drafts must contain at least one draft")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	if err := store.ValidateSeed(s.Seed); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if s.Options.BatchSize < 0 || s.Options.ParallelProcessing < 0 {
		return fmt.Errorf("options: batchSize and parallelProcessing must not be negative")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertStatistics:
		if a.Resource == "" {
			return fmt.Errorf("assertions[%d]: resource is required for statistics", index)
		}
		if a.Processed == nil && a.Created == nil && a.Updated == nil && a.Failed == nil {
			return fmt.Errorf("assertions[%d]: statistics needs at least one counter", index)
		}
	case AssertErrorContains, AssertWarningContains:
		if a.Contains == "" {
			return fmt.Errorf("assertions[%d]: contains is required for %s", index, a.Type)
		}
	case AssertErrorCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for error_count", index)
		}
	case AssertStoredField:
		if a.ResourceType == "" || a.Key == "" || a.Path == "" {
			return fmt.Errorf("assertions[%d]: resource_type, key and path are required for stored_field", index)
		}
	case AssertResourceCount:
		if a.ResourceType == "" {
			return fmt.Errorf("assertions[%d]: resource_type is required for resource_count", index)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for resource_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
