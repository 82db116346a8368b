package ping

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrConnect is returned when the TCP connection cannot be opened.
	ErrConnect = errors.New("connection failed")

	// ErrTimeout is returned when the overall deadline expires or the
	// session is cancelled; the connection is closed and nothing is
	// retried.
	ErrTimeout = errors.New("query timed out")

	// ErrProtocol is returned when the legacy fallback exchange also
	// fails; at that point the peer does not speak any known status
	// protocol.
	ErrProtocol = errors.New("protocol error")
)

// isTimeout reports whether err is a deadline expiry, either from the
// context or from the socket.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(ctx.Err(), context.Canceled) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
