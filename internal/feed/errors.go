package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrMissingParameter = errors.New("url parameter is required")
	ErrInvalidURL       = errors.New("url must be an absolute http or https URL")
	ErrNoFeed           = errors.New("no feed could be discovered at this URL")
)

// UpstreamHTTPError reports a non-2xx status from the target server.
type UpstreamHTTPError struct {
	Status int
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d", e.Status)
}

// IsTimeout reports whether err was caused by an exceeded deadline on a
// network operation.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
