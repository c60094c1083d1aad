package identity

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"seatbroker/internal/domain"
)

const (
	scopePrefix = "session-"
	scopeSuffix = ".scope"
	seatKey     = "SEAT"
)

// Service looks up session and seat identifiers from runtime state.
type Service struct {
	store domain.RuntimeStore
	log   zerolog.Logger
}

// New returns an identity service backed by the given store.
func New(s domain.RuntimeStore, log zerolog.Logger) *Service {
	return &Service{store: s, log: log.With().Str("component", "identity").Logger()}
}

// LookupSession returns the session id of the calling process.
func (s *Service) LookupSession(ctx context.Context) (domain.SessionID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if id, ok := s.store.EnvSessionID(); ok {
		s.log.Debug().Str("session", id.String()).Msg("session id from environment")
		return id, nil
	}

	cgroup, err := s.store.ProcessCgroup()
	if err != nil {
		return "", fmt.Errorf("looking up session: %w", err)
	}
	id, ok := sessionFromCgroup(cgroup)
	if !ok {
		return "", domain.ErrNoSession
	}
	s.log.Debug().Str("session", id.String()).Msg("session id from cgroup")
	return id, nil
}

// LookupSeat returns the seat the given session is attached to.
func (s *Service) LookupSeat(ctx context.Context, id domain.SessionID) (domain.SeatID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	record, ok, err := s.store.LoadSessionRecord(id)
	if err != nil {
		return "", fmt.Errorf("looking up seat of session %s: %w", id, err)
	}
	if !ok {
		return "", fmt.Errorf("session %s: %w", id, domain.ErrNoSession)
	}
	seat := record[seatKey]
	if seat == "" {
		return "", fmt.Errorf("session %s: %w", id, domain.ErrNoSeat)
	}
	return domain.SeatID(seat), nil
}

// sessionFromCgroup finds the "session-<id>.scope" unit in cgroup lines of
// the form "hierarchy-ID:controllers:path".
func sessionFromCgroup(b []byte) (domain.SessionID, bool) {
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		parts := strings.SplitN(sc.Text(), ":", 3)
		if len(parts) != 3 {
			continue
		}
		for _, elem := range strings.Split(parts[2], "/") {
			if !strings.HasPrefix(elem, scopePrefix) || !strings.HasSuffix(elem, scopeSuffix) {
				continue
			}
			id := strings.TrimSuffix(strings.TrimPrefix(elem, scopePrefix), scopeSuffix)
			if id != "" {
				return domain.SessionID(id), true
			}
		}
	}
	return "", false
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
