// Package bustest provides in-memory doubles for domain.BusConn and
// domain.BusDialer that record every call and every reply release.
package bustest

import (
	"context"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"

	"seatbroker/internal/domain"
)

// Call is one recorded method call.
type Call struct {
	Destination string
	Path        dbus.ObjectPath
	Interface   string
	Method      string
	Args        []any
}

// Response is what Conn answers for a method.
type Response struct {
	Body []any
	Err  error
}

// Conn answers calls from Responses, keyed by method name. Methods without
// an entry succeed with an empty body.
type Conn struct {
	Responses map[string]Response
	Calls     []Call
	Replies   []*Reply
	Closed    int
}

// NewConn returns a Conn with no canned responses.
func NewConn() *Conn {
	return &Conn{Responses: make(map[string]Response)}
}

// Fail makes method return err.
func (c *Conn) Fail(method string, err error) {
	c.Responses[method] = Response{Err: err}
}

// Reply makes method return body.
func (c *Conn) Reply(method string, body ...any) {
	c.Responses[method] = Response{Body: body}
}

func (c *Conn) Call(
	ctx context.Context,
	dest string,
	path dbus.ObjectPath,
	iface string,
	method string,
	args ...any,
) (domain.Reply, error) {
	c.Calls = append(c.Calls, Call{
		Destination: dest,
		Path:        path,
		Interface:   iface,
		Method:      method,
		Args:        args,
	})
	resp := c.Responses[method]
	r := &Reply{Body: resp.Body}
	c.Replies = append(c.Replies, r)
	if err := ctx.Err(); err != nil {
		return r, err
	}
	return r, resp.Err
}

func (c *Conn) Close() error {
	c.Closed++
	return nil
}

// Methods lists the called method names in order.
func (c *Conn) Methods() []string {
	out := make([]string, 0, len(c.Calls))
	for _, call := range c.Calls {
		out = append(out, call.Method)
	}
	return out
}

// CallsTo returns the recorded calls of one method.
func (c *Conn) CallsTo(method string) []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// Unreleased counts replies not released exactly once.
func (c *Conn) Unreleased() int {
	n := 0
	for _, r := range c.Replies {
		if r.Released != 1 {
			n++
		}
	}
	return n
}

// Reply is a recorded reply. Release closes carried descriptors like the
// real transport does.
type Reply struct {
	Body     []any
	Released int
}

func (r *Reply) Store(dest ...any) error {
	return dbus.Store(r.Body, dest...)
}

func (r *Reply) Release() {
	r.Released++
	if r.Released > 1 {
		return
	}
	for _, v := range r.Body {
		if fd, ok := v.(dbus.UnixFD); ok {
			_ = unix.Close(int(fd))
		}
	}
}

// Dialer hands out Conn, or fails with Err.
type Dialer struct {
	Conn  *Conn
	Err   error
	Dials int
}

func (d *Dialer) Dial(ctx context.Context) (domain.BusConn, error) {
	d.Dials++
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Conn, nil
}

var (
	_ domain.BusConn   = (*Conn)(nil)
	_ domain.BusDialer = (*Dialer)(nil)
	_ domain.Reply     = (*Reply)(nil)
)
