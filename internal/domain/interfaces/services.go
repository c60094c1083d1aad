package interfaces

import (
	"context"

	"github.com/godbus/dbus/v5"

	domaintypes "seatbroker/internal/domain/types"
)

// IdentityService resolves which session and seat the calling process
// belongs to.
type IdentityService interface {
	LookupSession(ctx context.Context) (domaintypes.SessionID, error)
	LookupSeat(ctx context.Context, id domaintypes.SessionID) (domaintypes.SeatID, error)
}

// SessionService establishes and tears down control over a login session.
type SessionService interface {
	Start(ctx context.Context) (domaintypes.SessionHandle, error)
	End(ctx context.Context)
	Handle() domaintypes.SessionHandle
	// Bus exposes the session's connection and object path for device calls.
	Bus() (BusConn, dbus.ObjectPath, error)
	SwitchTo(ctx context.Context, vt uint32) error
}

// DeviceService takes and releases device nodes through a started session.
type DeviceService interface {
	Take(ctx context.Context, path string) (domaintypes.Device, error)
	Release(ctx context.Context, fd int)
	AckPause(ctx context.Context, number domaintypes.DeviceNumber)
}
