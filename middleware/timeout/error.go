package timeout

import (
	"fmt"
	"time"

	"github.com/c360/conduit/errors"
)

// Elapsed is the distinguished error returned when the deadline wins the
// race. It is a per-request failure: the service remains usable and the
// request may be retried.
type Elapsed struct {
	// After is the configured deadline that elapsed
	After time.Duration
}

// Error implements the error interface
func (e *Elapsed) Error() string {
	return fmt.Sprintf("request timed out after %s", e.After)
}

// IsElapsed reports whether err's chain contains a timeout Elapsed error
func IsElapsed(err error) bool {
	var e *Elapsed
	return errors.As(err, &e)
}
