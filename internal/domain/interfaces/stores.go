package interfaces

import domaintypes "seatbroker/internal/domain/types"

// RuntimeStore reads the session manager's runtime state.
type RuntimeStore interface {
	// EnvSessionID returns the session id exported to this process, if any.
	EnvSessionID() (domaintypes.SessionID, bool)
	// ProcessCgroup returns the raw cgroup membership of the calling process.
	ProcessCgroup() ([]byte, error)
	// LoadSessionRecord returns the KEY=VALUE record logind keeps for a
	// session; ok is false when no record exists.
	LoadSessionRecord(id domaintypes.SessionID) (record map[string]string, ok bool, err error)
}
