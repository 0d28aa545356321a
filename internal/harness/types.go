package harness

import (
	"github.com/roach88/ctpsync/internal/store"
	"github.com/roach88/ctpsync/internal/syncer"
)

// Failure is one per-draft sync failure reported through the error callback.
type Failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Statistics holds one entry per synced draft section, in sync order.
	Statistics []syncer.Statistics `json:"statistics"`

	// Failures are the per-draft failures, sorted by message so that
	// parallel runs compare equal.
	Failures []Failure `json:"failures"`

	// Warnings are the non-fatal findings, sorted.
	Warnings []string `json:"warnings"`

	// Resources is the final catalog, in creation order.
	Resources []store.Resource `json:"resources"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Statistics: []syncer.Statistics{},
		Failures:   []Failure{},
		Warnings:   []string{},
		Resources:  []store.Resource{},
		Errors:     []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// statisticsFor returns the statistics of the named resource.
func (r *Result) statisticsFor(resource string) (syncer.Statistics, bool) {
	for _, s := range r.Statistics {
		if s.Resource == resource {
			return s, true
		}
	}
	return syncer.Statistics{}, false
}

// resource returns the stored resource with the given type and key.
func (r *Result) resource(resourceType, key string) (store.Resource, bool) {
	for _, res := range r.Resources {
		if res.ResourceType == resourceType && res.Key == key {
			return res, true
		}
	}
	return store.Resource{}, false
}
