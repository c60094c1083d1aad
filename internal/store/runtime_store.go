package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seatbroker/internal/domain"
)

const (
	DefaultProcDir     = "/proc"
	DefaultSessionsDir = "/run/systemd/sessions"

	sessionEnvVar = "XDG_SESSION_ID"
)

// RuntimeFileStore reads runtime state from procfs and logind's state directory.
type RuntimeFileStore struct {
	procDir     string
	sessionsDir string
	getenv      func(string) string
}

// NewRuntimeFileStore returns a store rooted at the given directories;
// empty arguments select the system defaults.
func NewRuntimeFileStore(procDir, sessionsDir string) *RuntimeFileStore {
	if procDir == "" {
		procDir = DefaultProcDir
	}
	if sessionsDir == "" {
		sessionsDir = DefaultSessionsDir
	}
	return &RuntimeFileStore{procDir: procDir, sessionsDir: sessionsDir, getenv: os.Getenv}
}

// WithGetenv replaces the environment lookup, for tests.
func (s *RuntimeFileStore) WithGetenv(getenv func(string) string) *RuntimeFileStore {
	s.getenv = getenv
	return s
}

// EnvSessionID returns XDG_SESSION_ID when it is set.
func (s *RuntimeFileStore) EnvSessionID() (domain.SessionID, bool) {
	id := strings.TrimSpace(s.getenv(sessionEnvVar))
	return domain.SessionID(id), id != ""
}

// ProcessCgroup returns the contents of <proc>/self/cgroup.
func (s *RuntimeFileStore) ProcessCgroup() ([]byte, error) {
	path := filepath.Join(s.procDir, "self", "cgroup")
	b, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return b, nil
}

// LoadSessionRecord parses <sessions>/<id>.
func (s *RuntimeFileStore) LoadSessionRecord(id domain.SessionID) (map[string]string, bool, error) {
	if id == "" || strings.ContainsAny(string(id), "/\x00") || id == "." || id == ".." {
		return nil, false, fmt.Errorf("invalid session id %q", id)
	}
	path := filepath.Join(s.sessionsDir, string(id))
	b, err := readFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if b == nil { // file didn’t exist
		return nil, false, nil
	}
	record, err := parseRecord(b)
	if err != nil {
		return nil, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return record, true, nil
}

// Compile-time assertion that RuntimeFileStore implements domain.RuntimeStore.
var _ domain.RuntimeStore = (*RuntimeFileStore)(nil)
