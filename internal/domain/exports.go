package domain

import (
	interfaces "seatbroker/internal/domain/interfaces"
	types "seatbroker/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID     = types.SessionID
	SeatID        = types.SeatID
	SessionState  = types.SessionState
	SessionHandle = types.SessionHandle
	DeviceNumber  = types.DeviceNumber
	Device        = types.Device
)

// Session states, re-exported in start order.
const (
	StateEmpty      = types.StateEmpty
	StateIdentified = types.StateIdentified
	StatePathed     = types.StatePathed
	StateConnected  = types.StateConnected
	StateActivated  = types.StateActivated
	StateControlled = types.StateControlled
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	BusConn         = interfaces.BusConn
	BusDialer       = interfaces.BusDialer
	Reply           = interfaces.Reply
	RuntimeStore    = interfaces.RuntimeStore
	IdentityService = interfaces.IdentityService
	SessionService  = interfaces.SessionService
	DeviceService   = interfaces.DeviceService
)
