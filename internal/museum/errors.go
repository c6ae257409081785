package museum

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// statusError is returned by adapter fetches when the museum API answers
// with a non-2xx status.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// classify converts a fetch failure into exactly one user-facing message
// and logs the internal detail. Internal error text never leaks into the
// returned message.
func (b *base) classify(err error, timeoutSeconds float64) string {
	var se *statusError
	var ne net.Error
	var ue *url.Error

	switch {
	case errors.As(err, &se):
		b.errorf("HTTP error: %d", se.Code)
		return fmt.Sprintf("%s returned an error (status %d). Try again later.", b.name, se.Code)

	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &ne) && ne.Timeout():
		b.errorf("timeout after %.0fs", timeoutSeconds)
		return fmt.Sprintf("%s took too long to respond. Try again or reduce the limit.", b.name)

	case errors.As(err, &ue):
		b.errorf("connection failed: %v", err)
		return fmt.Sprintf("Could not connect to %s. Check your internet connection.", b.name)

	case errors.Is(err, errRequest):
		b.errorf("request error: %v", err)
		return fmt.Sprintf("Error communicating with %s. Try again.", b.name)

	default:
		b.errorf("unexpected error: %v", err)
		return fmt.Sprintf("Unexpected error from %s.", b.name)
	}
}

// errRequest marks failures building or issuing the request that are
// neither transport nor protocol errors.
var errRequest = errors.New("request failed")
