package resolve

import "context"

// Stage is one step of a resolution pipeline. It receives the builder produced
// by the previous stage and returns the builder for the next one.
type Stage[B any] func(ctx context.Context, b B) (B, error)

// Run folds stages left to right over b. The first failing stage stops the
// pipeline and its error is returned unchanged; later stages never observe a
// partially resolved builder.
func Run[B any](ctx context.Context, b B, stages ...Stage[B]) (B, error) {
	for _, stage := range stages {
		next, err := stage(ctx, b)
		if err != nil {
			var zero B
			return zero, err
		}
		b = next
	}
	return b, nil
}
