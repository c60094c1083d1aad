package bus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const busConfig = `<!DOCTYPE busconfig PUBLIC "-//freedesktop//DTD D-Bus Bus Configuration 1.0//EN"
 "http://www.freedesktop.org/standards/dbus/1.0/busconfig.dtd">
<busconfig>
  <type>session</type>
  <listen>unix:path=%s</listen>
  <auth>EXTERNAL</auth>
  <policy context="default">
    <allow send_destination="*"/>
    <allow receive_sender="*"/>
    <allow own="*"/>
  </policy>
</busconfig>
`

const (
	driverName  = "org.freedesktop.DBus"
	driverPath  = dbus.ObjectPath("/org/freedesktop/DBus")
	driverIface = "org.freedesktop.DBus"
)

// startBus runs a private dbus-daemon for the test and returns its address.
func startBus(t *testing.T) string {
	t.Helper()
	daemon, err := exec.LookPath("dbus-daemon")
	if err != nil {
		t.Skip("dbus-daemon not installed")
	}

	dir := t.TempDir()
	sock := filepath.Join(dir, "bus")
	cfg := filepath.Join(dir, "bus.conf")
	require.NoError(t, os.WriteFile(cfg, []byte(fmt.Sprintf(busConfig, sock)), 0o644))

	cmd := exec.Command(daemon, "--config-file="+cfg, "--nofork", "--nopidfile")
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(sock); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Skip("dbus-daemon did not come up")
		}
		time.Sleep(20 * time.Millisecond)
	}
	return "unix:path=" + sock
}

func getID(t *testing.T, conn *Conn) (string, error) {
	t.Helper()
	reply, err := conn.Call(context.Background(), driverName, driverPath, driverIface, "GetId")
	defer reply.Release()
	if err != nil {
		return "", err
	}
	var id string
	return id, reply.Store(&id)
}

func TestDialConnectionOutlivesDialContext(t *testing.T) {
	addr := startBus(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	bc, err := NewDialer(addr).Dial(ctx)
	require.NoError(t, err)
	conn := bc.(*Conn)
	defer conn.Close()

	id, err := getID(t, conn)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	cancel()
	// Give a context-driven close a chance to happen if it were wired.
	time.Sleep(50 * time.Millisecond)

	id2, err := getID(t, conn)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.True(t, conn.conn.Connected())
}

func TestDialCancelledContext(t *testing.T) {
	addr := startBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDialer(addr).Dial(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDialUnreachableBus(t *testing.T) {
	addr := "unix:path=" + filepath.Join(t.TempDir(), "nobody-home")
	_, err := NewDialer(addr).Dial(context.Background())
	assert.Error(t, err)
}

func TestDialedConnectionPassesFDs(t *testing.T) {
	addr := startBus(t)

	bc, err := NewDialer(addr).Dial(context.Background())
	require.NoError(t, err)
	conn := bc.(*Conn)
	defer conn.Close()
	assert.True(t, conn.conn.SupportsUnixFDs())
}

func TestCallRemoteError(t *testing.T) {
	addr := startBus(t)

	bc, err := NewDialer(addr).Dial(context.Background())
	require.NoError(t, err)
	defer bc.Close()

	reply, err := bc.Call(context.Background(), driverName, driverPath, driverIface, "NoSuchMethod")
	require.Error(t, err)
	require.NotNil(t, reply)
	reply.Release()

	var derr dbus.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "org.freedesktop.DBus.Error.UnknownMethod", derr.Name)
	assert.NotEmpty(t, derr.Body)
}

func TestCloseEndsConnection(t *testing.T) {
	addr := startBus(t)

	bc, err := NewDialer(addr).Dial(context.Background())
	require.NoError(t, err)
	conn := bc.(*Conn)
	require.NoError(t, conn.Close())

	_, err = getID(t, conn)
	assert.Error(t, err)
}

type stubFDConn struct {
	fds    bool
	closed int
}

func (s *stubFDConn) SupportsUnixFDs() bool { return s.fds }

func (s *stubFDConn) Close() error {
	s.closed++
	return nil
}

func TestRequireFDPassing(t *testing.T) {
	ok := &stubFDConn{fds: true}
	assert.NoError(t, requireFDPassing(ok))
	assert.Zero(t, ok.closed)

	noFDs := &stubFDConn{}
	assert.ErrorIs(t, requireFDPassing(noFDs), ErrNoFDPassing)
	assert.Equal(t, 1, noFDs.closed)
}
