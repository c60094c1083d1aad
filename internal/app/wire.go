package app

import (
	"github.com/rs/zerolog"

	"seatbroker/internal/bus"
	"seatbroker/internal/domain"
	devicesvc "seatbroker/internal/services/device"
	identitysvc "seatbroker/internal/services/identity"
	sessionsvc "seatbroker/internal/services/session"
	"seatbroker/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Runtime  domain.RuntimeStore
	Dialer   domain.BusDialer
	Identity domain.IdentityService
	Sessions domain.SessionService
	Devices  domain.DeviceService
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log zerolog.Logger) *Wire {
	runtimeStore := store.NewRuntimeFileStore(cfg.Runtime.ProcDir, cfg.Runtime.SessionsDir)
	dialer := bus.NewDialer(cfg.Bus.Address)
	return newWire(runtimeStore, dialer, log)
}

func newWire(runtimeStore domain.RuntimeStore, dialer domain.BusDialer, log zerolog.Logger) *Wire {
	identitySvc := identitysvc.New(runtimeStore, log)
	sessionSvc := sessionsvc.New(identitySvc, dialer, log)
	deviceSvc := devicesvc.New(sessionSvc, log)

	return &Wire{
		Runtime:  runtimeStore,
		Dialer:   dialer,
		Identity: identitySvc,
		Sessions: sessionSvc,
		Devices:  deviceSvc,
	}
}
