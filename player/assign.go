package player

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/source"
	"github.com/vidswitch/vidswitch/switcher"
)

// ErrNoPlayableStream is returned when none of the assigned streams can be handed to mpv.
var ErrNoPlayableStream = errors.New("no playable stream")

// handle is closed once mpv reports file-loaded for one of the assigned streams.
type handle struct {
	ch   chan struct{}
	once sync.Once
}

func newHandle() *handle {
	return &handle{ch: make(chan struct{})}
}

func (h *handle) Ready() <-chan struct{} { return h.ch }

func (h *handle) fire() { h.once.Do(func() { close(h.ch) }) }

// assignment tracks one AssignSources call until a stream loads or all of them fail.
type assignment struct {
	streams []source.Stream
	// next is the index of the stream currently being loaded
	next int
	// entryID is the playlist entry mpv created for it, 0 when mpv did not report one
	entryID int64
	started bool
	handle  *handle
}

func (a *assignment) current() source.Stream {
	return a.streams[a.next]
}

func (a *assignment) matches(id int64) bool {
	return a.entryID == 0 || id == a.entryID
}

// AssignSources replaces whatever mpv is playing with the first stream. When mpv fails to
// open it, the next one is tried, in order. The returned handle fires on file-loaded.
//
// A later call supersedes a pending one; the older handle never fires.
func (m *MPV) AssignSources(ctx context.Context, streams []source.Stream) (switcher.Handle, error) {
	valid := make([]source.Stream, 0, len(streams))
	for _, s := range streams {
		target, err := mediaTarget(s.URL)
		if err != nil {
			log.Warnf("skipping stream %q: %v", s.URL, err)
			continue
		}
		s.URL = target
		valid = append(valid, s)
	}

	if len(valid) == 0 {
		return nil, ErrNoPlayableStream
	}

	a := &assignment{streams: valid, handle: newHandle()}

	m.pendMu.Lock()
	defer m.pendMu.Unlock()

	if m.pending != nil {
		log.Infof("superseding pending load of %s", m.pending.current().URL)
	}
	m.pending = a

	if err := m.load(ctx, a); err != nil {
		m.pending = nil
		return nil, err
	}

	return a.handle, nil
}

// load issues loadfile for the current stream of a. Caller holds pendMu.
func (m *MPV) load(ctx context.Context, a *assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stream := a.current()
	a.started = false
	a.entryID = 0

	data, err := m.sendCommand([]interface{}{"loadfile", stream.URL, "replace"})
	if err != nil {
		return fmt.Errorf("loadfile %s: %w", stream.URL, err)
	}

	// mpv >= 0.36 answers with the new playlist entry
	if reply, ok := data.(map[string]interface{}); ok {
		a.entryID = entryID(reply)
	}

	log.Infof("loading %s (%s, res %s)", stream.URL, stream.Type, stream.Res)
	return nil
}

// onEvent receives everything the event listener reads from mpv.
func (m *MPV) onEvent(name string, data interface{}) {
	switch name {
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return
		}

		m.hookMu.Lock()
		fn := m.onPause
		m.hookMu.Unlock()

		if fn != nil {
			fn(paused)
		}
	case "start-file", "file-loaded", "end-file":
		event, _ := data.(map[string]interface{})
		m.track(name, event)
	}
}

// track advances the pending assignment through mpv's file lifecycle.
func (m *MPV) track(name string, event map[string]interface{}) {
	m.pendMu.Lock()
	defer m.pendMu.Unlock()

	a := m.pending
	if a == nil {
		return
	}

	switch name {
	case "start-file":
		if a.matches(entryID(event)) {
			a.started = true
		}
	case "file-loaded":
		if !a.started {
			return
		}
		a.handle.fire()
		m.pending = nil
	case "end-file":
		if !a.started || !a.matches(entryID(event)) {
			return
		}
		if reason, _ := event["reason"].(string); reason != "error" {
			return
		}

		failed := a.current()
		a.next++
		if a.next >= len(a.streams) {
			log.Errorf("%s failed and no fallback is left", failed.URL)
			m.pending = nil
			return
		}

		log.Warnf("%s failed, falling back to %s", failed.URL, a.current().URL)
		if err := m.load(context.Background(), a); err != nil {
			log.Errorf("fallback: %v", err)
			m.pending = nil
		}
	}
}

func entryID(event map[string]interface{}) int64 {
	// json numbers decode as float64
	if id, ok := event["playlist_entry_id"].(float64); ok {
		return int64(id)
	}
	return 0
}
