package session

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"seatbroker/internal/domain"
	"seatbroker/internal/protocol/login1"
)

// Service drives one session handle from empty to controlled and back.
//
// A Service holds:
//   - the session and seat identifiers of the calling process
//   - the session's object path
//   - a private bus connection, closed exactly once by End or by a failed Start
type Service struct {
	ids    domain.IdentityService
	dialer domain.BusDialer
	log    zerolog.Logger

	state domain.SessionState
	id    domain.SessionID
	seat  domain.SeatID
	path  dbus.ObjectPath
	conn  domain.BusConn
}

// New constructs a Session Service; the handle starts empty.
func New(ids domain.IdentityService, dialer domain.BusDialer, log zerolog.Logger) *Service {
	return &Service{
		ids:    ids,
		dialer: dialer,
		log:    log.With().Str("component", "session").Logger(),
	}
}

// step is one transition of the start sequence. forward must leave nothing
// allocated when it fails; rollback undoes a forward that succeeded.
type step struct {
	to       domain.SessionState
	forward  func(ctx context.Context) error
	rollback func()
}

func (s *Service) steps() []step {
	return []step{
		{to: domain.StateIdentified, forward: s.identify, rollback: s.forget},
		{to: domain.StatePathed, forward: s.resolvePath, rollback: s.clearPath},
		{to: domain.StateConnected, forward: s.connect, rollback: s.disconnect},
		{to: domain.StateActivated, forward: s.activate, rollback: func() {}},
		{to: domain.StateControlled, forward: s.takeControl, rollback: func() {}},
	}
}

// Start establishes the session. On error the handle is empty again and any
// connection opened along the way has been closed.
func (s *Service) Start(ctx context.Context) (domain.SessionHandle, error) {
	if s.state != domain.StateEmpty {
		return domain.SessionHandle{}, domain.ErrSessionActive
	}

	steps := s.steps()
	for i, st := range steps {
		if err := st.forward(ctx); err != nil {
			s.log.Error().Err(err).
				Str("from", s.state.String()).
				Str("to", st.to.String()).
				Msg("session start failed")
			for j := i - 1; j >= 0; j-- {
				steps[j].rollback()
			}
			s.state = domain.StateEmpty
			return domain.SessionHandle{}, fmt.Errorf("starting session (%s): %w", st.to, err)
		}
		s.state = st.to
		s.log.Debug().Str("state", s.state.String()).Msg("session step done")
	}

	s.log.Info().
		Str("session", s.id.String()).
		Str("seat", s.seat.String()).
		Msg("session under control")
	return s.Handle(), nil
}

func (s *Service) identify(ctx context.Context) error {
	id, err := s.ids.LookupSession(ctx)
	if err != nil {
		return fmt.Errorf("resolving session id: %w", err)
	}
	seat, err := s.ids.LookupSeat(ctx, id)
	if err != nil {
		return fmt.Errorf("resolving seat of session %s: %w", id, err)
	}
	s.id, s.seat = id, seat
	return nil
}

func (s *Service) forget() {
	s.id, s.seat = "", ""
}

func (s *Service) resolvePath(context.Context) error {
	path, err := login1.SessionPath(s.id)
	if err != nil {
		return err
	}
	s.path = path
	return nil
}

func (s *Service) clearPath() {
	s.path = ""
}

func (s *Service) connect(ctx context.Context) error {
	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *Service) disconnect() {
	if err := s.conn.Close(); err != nil {
		s.log.Warn().Err(err).Msg("closing bus connection")
	}
	s.conn = nil
}

func (s *Service) activate(ctx context.Context) error {
	return login1.Invoke(ctx, s.conn, login1.SessionTarget(s.path), login1.MethodActivate)
}

// takeControl never forces: another controller keeps the session.
func (s *Service) takeControl(ctx context.Context) error {
	return login1.Invoke(ctx, s.conn, login1.SessionTarget(s.path), login1.MethodTakeControl, false)
}

// End gives up control and frees the handle. ReleaseControl failures are
// logged, never returned: teardown always completes.
func (s *Service) End(ctx context.Context) {
	if s.state == domain.StateEmpty {
		s.log.Warn().Msg("end called on a session that is not started")
		return
	}

	err := login1.Invoke(ctx, s.conn, login1.SessionTarget(s.path), login1.MethodReleaseControl)
	if err != nil {
		s.log.Error().Err(err).Str("session", s.id.String()).Msg("releasing session control")
	}
	s.disconnect()
	s.clearPath()
	s.forget()
	s.state = domain.StateEmpty
	s.log.Info().Msg("session ended")
}

// Handle returns a snapshot of the handle's identifiers and state.
func (s *Service) Handle() domain.SessionHandle {
	return domain.SessionHandle{ID: s.id, Seat: s.seat, Path: s.path, State: s.state}
}

// Bus returns the session's connection and object path. The connection stays
// owned by the Service.
func (s *Service) Bus() (domain.BusConn, dbus.ObjectPath, error) {
	if s.state != domain.StateControlled {
		return nil, "", domain.ErrSessionNotStarted
	}
	return s.conn, s.path, nil
}

// SwitchTo asks logind to switch the session's seat to virtual terminal vt.
func (s *Service) SwitchTo(ctx context.Context, vt uint32) error {
	if s.state != domain.StateControlled {
		return domain.ErrSessionNotStarted
	}
	target, err := login1.SeatTarget(s.seat)
	if err != nil {
		return err
	}
	if err := login1.Invoke(ctx, s.conn, target, login1.MethodSwitchTo, vt); err != nil {
		s.log.Error().Err(err).Uint32("vt", vt).Msg("switching vt")
		return err
	}
	return nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
