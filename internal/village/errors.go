package village

import (
	"errors"
	"fmt"
)

// ErrGenerationFailure marks a build that violated a topological invariant.
// Build never returns a village together with it; callers retry with
// another seed or configuration.
var ErrGenerationFailure = errors.New("village: generation failure")

// ErrPhase reports a generation step run out of order.
var ErrPhase = errors.New("village: phase out of order")

func failure(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrGenerationFailure}, args...)...)
}
