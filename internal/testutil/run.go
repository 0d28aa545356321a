package testutil

// FixedRunID returns a run id generator that always yields the same id.
//
// The sync engine tags every log line and result with a run id; pinning it
// makes scenario output byte-identical between runs. An empty id yields
// "test-run-default".
func FixedRunID(id string) func() string {
	if id == "" {
		id = "test-run-default"
	}
	return func() string { return id }
}
