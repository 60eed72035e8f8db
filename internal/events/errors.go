package events

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"syscall"
)

// ErrorCode says why the board daemon could not be reached.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
	ErrDaemonUnresponsive
)

// DaemonError describes a failed daemon connection: which socket was tried,
// what went wrong, and what to do next.
type DaemonError struct {
	Code    ErrorCode
	Socket  string
	Message string
	Hint    string
	Err     error
}

func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

func (e *DaemonError) Unwrap() error { return e.Err }

// socketHint is appended wherever the fix may be pointing at another socket
const socketHint = "set daemon.socket_path or TICKETBOARD_SOCKET to use another socket"

// ClassifyDaemonError maps a Connect or Listen failure to a DaemonError.
// The socket path is taken from the dial error when present.
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}

	socket := dialedSocket(err)
	where := socket
	if where == "" {
		where = "the configured path"
	}
	e := &DaemonError{Socket: socket, Err: err}

	switch {
	case errors.Is(err, os.ErrNotExist):
		e.Code = ErrSocketNotFound
		e.Message = "No daemon socket at " + where
		e.Hint = "Start it with: ticketboard-daemon &, or " + socketHint

	case errors.Is(err, os.ErrPermission):
		e.Code = ErrSocketPermission
		e.Message = "Permission denied on " + where
		if socket != "" {
			e.Hint = fmt.Sprintf("The daemon creates %s with mode 0700; run as the same user or chmod 700 %s",
				filepath.Dir(socket), filepath.Dir(socket))
		} else {
			e.Hint = "Run as the user that started ticketboard-daemon"
		}

	case errors.Is(err, syscall.ECONNREFUSED):
		e.Code = ErrConnectionRefused
		e.Message = "Stale socket at " + where
		e.Hint = "The daemon exited without cleaning up; starting ticketboard-daemon again replaces the socket"

	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		e.Code = ErrDaemonUnresponsive
		e.Message = "Daemon at " + where + " did not answer"
		e.Hint = "Restart ticketboard-daemon"

	default:
		e.Code = ErrDaemonNotRunning
		e.Message = "Daemon not reachable at " + where
		e.Hint = "Start it with: ticketboard-daemon &, or " + socketHint
	}
	return e
}

// dialedSocket digs the unix socket path out of a wrapped dial error
func dialedSocket(err error) string {
	var opErr *net.OpError
	if !errors.As(err, &opErr) || opErr.Addr == nil {
		return ""
	}
	if addr, ok := opErr.Addr.(*net.UnixAddr); ok {
		return addr.Name
	}
	return opErr.Addr.String()
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
