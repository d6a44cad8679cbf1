package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNoRecipient is returned when an email has no To address
var ErrNoRecipient = errors.New("no recipient")

// SendError wraps any failure reported by a provider. The relay treats all of
// them the same way; the fields exist for logging.
type SendError struct {
	Provider string
	Err      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s send failed: %v", e.Provider, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err came from a deadline or network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
