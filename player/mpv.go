package player

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vidswitch/vidswitch/constant"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Player interface using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	extraArgs  []string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // protects socket writes

	listener *EventListener

	// pendMu guards pending and is held while a loadfile is in flight,
	// so events for the new entry are never matched against a stale id.
	pendMu  sync.Mutex
	pending *assignment

	hookMu  sync.Mutex
	onPause func(paused bool)
}

// NewMPV creates a new MPV player instance (does not start it).
// extraArgs are appended to the command line as is.
func NewMPV(extraArgs ...string) *MPV {
	return &MPV{
		extraArgs: extraArgs,
		exited:    make(chan struct{}),
	}
}

// Start launches an idle mpv bound to a fresh IPC socket and starts listening for its events.
func (m *MPV) Start(ctx context.Context, title string) error {
	if m.cmd != nil {
		return fmt.Errorf("mpv already started")
	}

	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%s.sock", constant.Vidswitch, uuid.NewString()))

	safeTitle := mediaTitle(title)

	// Only pass what the IPC needs. Everything else comes from the user's mpv.conf
	// or player.mpv_args.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle),
		"--force-window=yes",
		"--idle=yes",
	}
	args = append(args, m.extraArgs...)

	m.cmd = exec.CommandContext(ctx, "mpv", args...)

	m.cmd.SysProcAttr = detachedAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killGroup(m.cmd.Process)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return m.attach()
}

// attach starts the event listener on the current socket.
func (m *MPV) attach() error {
	m.listener = NewEventListener(m.socketPath, m.onEvent)
	return m.listener.Start()
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// OnPauseChange registers fn to be called whenever mpv reports a pause state change.
func (m *MPV) OnPauseChange(fn func(paused bool)) {
	m.hookMu.Lock()
	defer m.hookMu.Unlock()
	m.onPause = fn
}

// GetTimePos returns the current playback position in seconds.
func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// GetDuration returns the total duration of the current media in seconds.
func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty("duration")
}

// GetPausedStatus returns whether playback is currently paused.
func (m *MPV) GetPausedStatus() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, nil
	}
	return paused, nil
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// Resume unpauses playback.
func (m *MPV) Resume() error {
	return m.Set("pause", false)
}

// TogglePause toggles the pause state.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand([]interface{}{"cycle", "pause"})
	return err
}

// Set a property
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	// graceful quit first
	_, _ = m.sendCommand([]interface{}{"quit"})

	if m.cmd != nil {
		select {
		case <-m.exited:
		case <-time.After(3 * time.Second):
			_ = killGroup(m.cmd.Process)
		}
		_ = os.Remove(m.socketPath)
	}

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

var errBadTarget = errors.New("bad media target")

// mediaTarget normalizes a stream URL before it is handed to loadfile.
// Only http(s) URLs and plain local paths are accepted.
func mediaTarget(raw string) (string, error) {
	target := strings.TrimSpace(raw)
	switch {
	case target == "":
		return "", fmt.Errorf("%w: empty", errBadTarget)
	case strings.ContainsAny(target, "\x00\n\r"):
		return "", fmt.Errorf("%w: control characters in %q", errBadTarget, target)
	case strings.HasPrefix(target, "-"):
		return "", fmt.Errorf("%w: %q would be read as an option", errBadTarget, target)
	case !strings.Contains(target, "://"):
		return filepath.Clean(target), nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errBadTarget, err)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: scheme %s", errBadTarget, u.Scheme)
	}
	return target, nil
}

var titleReplacer = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "")

func mediaTitle(title string) string {
	if t := strings.TrimSpace(titleReplacer.Replace(title)); t != "" {
		return t
	}
	return constant.Vidswitch
}
