package interfaces

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// BusConn is a private connection to a message bus.
type BusConn interface {
	// Call performs one blocking method call. The returned Reply may be
	// non-nil even when err is non-nil (it then carries the error detail) and
	// must be released by the caller in both cases.
	Call(
		ctx context.Context,
		dest string,
		path dbus.ObjectPath,
		iface string,
		method string,
		args ...any,
	) (Reply, error)
	Close() error
}

// Reply is the body of a method return. Release frees it, including any file
// descriptors it carries; values obtained from Store that alias those
// descriptors are invalid afterwards.
type Reply interface {
	Store(dest ...any) error
	Release()
}

// BusDialer opens new, unshared bus connections.
type BusDialer interface {
	Dial(ctx context.Context) (BusConn, error)
}
