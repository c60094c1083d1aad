package bus

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"

	"seatbroker/internal/domain"
)

// ErrNoFDPassing is returned by Dial when the bus cannot carry file descriptors.
var ErrNoFDPassing = errors.New("bus connection does not support unix fd passing")

// Dialer connects to the system bus, or to Address when it is set.
type Dialer struct {
	Address string
}

// NewDialer returns a Dialer for the given bus address; empty means the
// system bus.
func NewDialer(address string) *Dialer { return &Dialer{Address: address} }

// Dial opens a new private connection. ctx bounds connecting and the
// handshake only; the connection lives until Close.
func (d *Dialer) Dial(ctx context.Context) (domain.BusConn, error) {
	connCtx, connCancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(ctx, connCancel)

	var (
		conn *dbus.Conn
		err  error
	)
	if d.Address == "" {
		conn, err = dbus.ConnectSystemBus(dbus.WithContext(connCtx))
	} else {
		conn, err = dbus.Connect(d.Address, dbus.WithContext(connCtx))
	}
	if !stop() {
		// ctx ended while dialing; connCancel has run or is running.
		connCancel()
		if conn != nil {
			_ = conn.Close()
		}
		return nil, fmt.Errorf("connecting to bus: %w", ctx.Err())
	}
	if err != nil {
		connCancel()
		return nil, fmt.Errorf("connecting to bus: %w", err)
	}
	if err := requireFDPassing(conn); err != nil {
		connCancel()
		return nil, err
	}
	return &Conn{conn: conn, cancel: connCancel}, nil
}

type fdConn interface {
	SupportsUnixFDs() bool
	Close() error
}

// requireFDPassing closes conn unless it can carry file descriptors.
func requireFDPassing(conn fdConn) error {
	if conn.SupportsUnixFDs() {
		return nil
	}
	_ = conn.Close()
	return ErrNoFDPassing
}

// Conn wraps a godbus connection.
type Conn struct {
	conn   *dbus.Conn
	cancel context.CancelFunc
}

// Call performs a blocking method call honouring ctx.
func (c *Conn) Call(
	ctx context.Context,
	dest string,
	path dbus.ObjectPath,
	iface string,
	method string,
	args ...any,
) (domain.Reply, error) {
	call := c.conn.Object(dest, path).CallWithContext(ctx, iface+"."+method, 0, args...)
	return &Reply{body: call.Body}, call.Err
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	err := c.conn.Close()
	c.cancel()
	return err
}

// Reply holds a method return or error body.
type Reply struct {
	body []any
}

// Store decodes the body into dest the same way dbus.Call.Store does.
func (r *Reply) Store(dest ...any) error {
	return dbus.Store(r.body, dest...)
}

// Release closes every descriptor carried in the body. It is safe to call
// more than once.
func (r *Reply) Release() {
	closeFDs(r.body)
	r.body = nil
}

func closeFDs(values []any) {
	for _, v := range values {
		switch fd := v.(type) {
		case dbus.UnixFD:
			_ = unix.Close(int(fd))
		case []any:
			closeFDs(fd)
		}
	}
}

var (
	_ domain.BusDialer = (*Dialer)(nil)
	_ domain.BusConn   = (*Conn)(nil)
	_ domain.Reply     = (*Reply)(nil)
)
