package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"seatbroker/internal/domain"
	"seatbroker/internal/protocol/login1"
)

// SessionBus is the part of a session the broker needs.
type SessionBus interface {
	Bus() (domain.BusConn, dbus.ObjectPath, error)
}

// compensateTimeout bounds the ReleaseDevice sent to undo a take that may
// have been granted.
const compensateTimeout = 5 * time.Second

// Service is the device access broker for one session.
type Service struct {
	session SessionBus
	log     zerolog.Logger

	stat  func(path string, st *unix.Stat_t) error
	fstat func(fd int, st *unix.Stat_t) error
	dup   func(fd int) (int, error)
}

// New returns a broker issuing device calls through session.
func New(session SessionBus, log zerolog.Logger) *Service {
	return &Service{
		session: session,
		log:     log.With().Str("component", "device").Logger(),
		stat:    unix.Stat,
		fstat:   unix.Fstat,
		dup:     dupCloexec,
	}
}

func dupCloexec(fd int) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
}

func numberOf(st *unix.Stat_t) domain.DeviceNumber {
	rdev := uint64(st.Rdev)
	return domain.DeviceNumber{Major: unix.Major(rdev), Minor: unix.Minor(rdev)}
}

// Take acquires the device node at path. On failure the returned Device has
// FD -1.
func (s *Service) Take(ctx context.Context, path string) (domain.Device, error) {
	dev := domain.Device{FD: -1}
	log := s.log.With().Str("path", path).Logger()

	var st unix.Stat_t
	if err := s.stat(path, &st); err != nil {
		log.Error().Err(err).Msg("stat device")
		return dev, fmt.Errorf("stat %s: %w", path, err)
	}
	num := numberOf(&st)
	dev.Number = num

	conn, obj, err := s.session.Bus()
	if err != nil {
		log.Error().Err(err).Msg("take device")
		return dev, err
	}

	granted := false
	fd := -1
	var paused bool
	err = login1.Call(ctx, conn, login1.SessionTarget(obj), login1.MethodTakeDevice,
		[]any{num.Major, num.Minor},
		func(r domain.Reply) error {
			granted = true
			var received dbus.UnixFD
			if err := r.Store(&received, &paused); err != nil {
				return err
			}
			dupped, err := s.dup(int(received))
			if err != nil {
				return fmt.Errorf("duplicating fd %d: %w", received, err)
			}
			fd = dupped
			return nil
		})
	if err != nil {
		log.Error().Err(err).Str("device", num.String()).Msg("take device")
		// A cancelled call may still be granted by logind after we stop
		// waiting, so release in that case too.
		if granted || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.compensate(ctx, conn, obj, num)
		}
		return dev, err
	}

	dev.FD = fd
	dev.Paused = paused
	log.Debug().Str("device", num.String()).Int("fd", fd).Bool("paused", paused).Msg("device taken")
	return dev, nil
}

// Release tells logind the device behind fd is no longer needed. fd stays
// open and owned by the caller.
func (s *Service) Release(ctx context.Context, fd int) {
	var st unix.Stat_t
	if err := s.fstat(fd, &st); err != nil {
		s.log.Error().Err(err).Int("fd", fd).Msg("fstat device; not releasing")
		return
	}
	conn, obj, err := s.session.Bus()
	if err != nil {
		s.log.Error().Err(err).Int("fd", fd).Msg("release device")
		return
	}
	s.releaseNumber(ctx, conn, obj, numberOf(&st))
}

func (s *Service) compensate(ctx context.Context, conn domain.BusConn, obj dbus.ObjectPath, num domain.DeviceNumber) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()
	s.releaseNumber(ctx, conn, obj, num)
}

func (s *Service) releaseNumber(ctx context.Context, conn domain.BusConn, obj dbus.ObjectPath, num domain.DeviceNumber) {
	err := login1.Invoke(ctx, conn, login1.SessionTarget(obj), login1.MethodReleaseDevice, num.Major, num.Minor)
	if err != nil {
		s.log.Error().Err(err).Str("device", num.String()).Msg("release device")
		return
	}
	s.log.Debug().Str("device", num.String()).Msg("device released")
}

// AckPause confirms to logind that a device paused with type "pause" is no
// longer in use.
func (s *Service) AckPause(ctx context.Context, num domain.DeviceNumber) {
	conn, obj, err := s.session.Bus()
	if err != nil {
		s.log.Error().Err(err).Str("device", num.String()).Msg("acknowledge pause")
		return
	}
	err = login1.Invoke(ctx, conn, login1.SessionTarget(obj), login1.MethodPauseDeviceComplete, num.Major, num.Minor)
	if err != nil {
		s.log.Error().Err(err).Str("device", num.String()).Msg("acknowledge pause")
	}
}

// Compile-time assertion that Service implements domain.DeviceService.
var _ domain.DeviceService = (*Service)(nil)
