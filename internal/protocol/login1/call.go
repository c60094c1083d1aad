package login1

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"

	"seatbroker/internal/domain"
)

// Call invokes t.Interface.method on t.Path with args and passes the reply to
// decode, which may be nil when no reply body is expected. The reply is
// released before Call returns on every path.
func Call(
	ctx context.Context,
	conn domain.BusConn,
	t Target,
	method string,
	args []any,
	decode func(domain.Reply) error,
) error {
	reply, err := conn.Call(ctx, t.Destination, t.Path, t.Interface, method, args...)
	if reply != nil {
		defer reply.Release()
	}
	if err != nil {
		return &callError{target: t, method: method, diag: diagnostic(err), err: err}
	}
	if decode == nil {
		return nil
	}
	if reply == nil {
		return fmt.Errorf("%s.%s on %s: empty reply", t.Interface, method, t.Path)
	}
	if err := decode(reply); err != nil {
		return fmt.Errorf("%s.%s on %s: decoding reply: %w", t.Interface, method, t.Path, err)
	}
	return nil
}

// Invoke is Call for methods without a reply body.
func Invoke(ctx context.Context, conn domain.BusConn, t Target, method string, args ...any) error {
	return Call(ctx, conn, t, method, args, nil)
}

type callError struct {
	target Target
	method string
	diag   string
	err    error
}

func (e *callError) Error() string {
	return fmt.Sprintf("%s.%s on %s: %s", e.target.Interface, e.method, e.target.Path, e.diag)
}

func (e *callError) Unwrap() error { return e.err }

// diagnostic renders a call failure for humans: the D-Bus error name plus its
// message when the peer returned an error, the plain error text otherwise.
func diagnostic(err error) string {
	var name string
	var body []any
	var derr dbus.Error
	var pderr *dbus.Error
	switch {
	case errors.As(err, &derr):
		name, body = derr.Name, derr.Body
	case errors.As(err, &pderr):
		name, body = pderr.Name, pderr.Body
	default:
		return err.Error()
	}
	var msgs []string
	for _, v := range body {
		if s, ok := v.(string); ok && s != "" {
			msgs = append(msgs, s)
		}
	}
	if len(msgs) == 0 {
		return name
	}
	return name + ": " + strings.Join(msgs, "; ")
}
