// Package switcher applies a default quality to a player and switches between qualities
// without losing the playback position or the paused state.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vidswitch/vidswitch/catalog"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/source"
)

// Handle fires once when the player has data for the sources it was just given.
type Handle interface {
	Ready() <-chan struct{}
}

// Player is the playback engine the switcher drives.
type Player interface {
	// AssignSources replaces the active source set. The player may fall back between
	// the streams in order when it cannot play one of them.
	AssignSources(ctx context.Context, streams []source.Stream) (Handle, error)
	GetTimePos() (float64, error)
	Seek(seconds float64) error
	GetPausedStatus() (bool, error)
	Resume() error
}

// Options is passed once at construction.
type Options struct {
	Default Default
	// DynamicLabel makes Label follow the active selection. Otherwise StaticLabel is shown.
	DynamicLabel bool
	StaticLabel  string
	// Timeout bounds the wait for readiness. Zero waits until the context ends.
	Timeout  time.Duration
	Recorder Recorder
}

type subscriber struct {
	id int
	fn func(Event)
}

// Switcher owns the association between the chosen quality and the player.
// It is safe for concurrent use.
type Switcher struct {
	player Player
	opts   Options

	// op serializes player interaction: capture+assign and restore never interleave.
	op sync.Mutex

	mu          sync.Mutex
	catalog     *catalog.Catalog
	current     Selection
	label       string
	generation  uint64
	superseded  chan struct{}
	subscribers []subscriber
	nextSubID   int
}

// New creates a switcher bound to a player.
func New(p Player, opts Options) *Switcher {
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	empty, _ := catalog.Build(nil)

	return &Switcher{
		player:  p,
		opts:    opts,
		catalog: empty,
	}
}

// Load rebuilds the catalog from sources, picks the default selection and assigns it.
// It does not wait for the player to become ready and restores nothing.
func (s *Switcher) Load(ctx context.Context, sources []*source.Source) error {
	c, err := catalog.Build(sources)
	if err != nil {
		return err
	}

	sel, err := Choose(c, s.opts.Default)
	if err != nil {
		return err
	}

	s.op.Lock()

	s.mu.Lock()
	s.catalog = c
	gen := s.issue()
	s.current = sel
	labelEvent := s.setLabel(sel, gen)
	s.mu.Unlock()

	log.WithFields(map[string]interface{}{
		"sources":    c.Len(),
		"default":    s.opts.Default.String(),
		"label":      sel.Label,
		"generation": gen,
	}).Info("loaded sources")

	_, err = s.player.AssignSources(ctx, sel.Streams())
	s.op.Unlock()

	s.emit(labelEvent)

	if err != nil {
		return fmt.Errorf("assign sources: %w", err)
	}
	return nil
}

// SwitchToLabel switches to the catalog bucket of a menu label.
func (s *Switcher) SwitchToLabel(ctx context.Context, label string) error {
	bucket, ok := s.Catalog().Lookup(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return s.SwitchTo(ctx, Selection{Label: label, Sources: bucket})
}

// SwitchTo hands sel to the player and restores the previous position and paused state
// once the player reports the new source ready.
//
// A newer switch supersedes this one: the call returns ErrStaleSwitch and the captured
// state is never applied. The display label is updated before waiting and stays on the
// requested value even when the switch fails.
func (s *Switcher) SwitchTo(ctx context.Context, sel Selection) error {
	if sel.Empty() {
		return ErrEmptySelection
	}
	sel = Selection{Label: sel.Label, Sources: append([]*source.Source(nil), sel.Sources...)}

	start := time.Now()

	s.op.Lock()
	snap := s.capture()

	s.mu.Lock()
	gen := s.issue()
	superseded := make(chan struct{})
	s.superseded = superseded
	labelEvent := s.setLabel(sel, gen)
	s.mu.Unlock()

	entry := log.WithFields(map[string]interface{}{
		"label":      sel.Label,
		"generation": gen,
		"time":       snap.Time,
		"paused":     snap.Paused,
	})
	entry.Info("switching source")

	handle, err := s.player.AssignSources(ctx, sel.Streams())
	if err != nil {
		s.op.Unlock()
		s.emit(labelEvent)
		s.release(superseded)
		s.opts.Recorder.SwitchFinished(ResultError, time.Since(start))
		return fmt.Errorf("assign sources: %w", err)
	}

	s.mu.Lock()
	if gen == s.generation {
		s.current = sel
	}
	s.mu.Unlock()
	s.op.Unlock()

	s.emit(labelEvent)

	var timeout <-chan time.Time
	if s.opts.Timeout > 0 {
		timer := time.NewTimer(s.opts.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-handle.Ready():
	case <-superseded:
		entry.Info("switch superseded before source was ready")
		s.opts.Recorder.SwitchFinished(ResultStale, time.Since(start))
		return ErrStaleSwitch
	case <-timeout:
		s.release(superseded)
		entry.Warnf("source not ready after %s", s.opts.Timeout)
		s.opts.Recorder.SwitchFinished(ResultTimeout, time.Since(start))
		return fmt.Errorf("%w after %s", ErrSwitchTimeout, s.opts.Timeout)
	case <-ctx.Done():
		s.release(superseded)
		s.opts.Recorder.SwitchFinished(ResultCanceled, time.Since(start))
		return ctx.Err()
	}

	event, err := s.restore(gen, superseded, snap, sel)
	if err != nil {
		if errors.Is(err, ErrStaleSwitch) {
			entry.Info("dropping restoration of superseded switch")
			s.opts.Recorder.SwitchFinished(ResultStale, time.Since(start))
		} else {
			entry.Errorf("restore failed: %v", err)
			s.opts.Recorder.SwitchFinished(ResultError, time.Since(start))
		}
		return err
	}

	s.opts.Recorder.SwitchFinished(ResultCompleted, time.Since(start))
	entry.Infof("switch completed in %s", time.Since(start))
	s.emit(&event)
	return nil
}

// restore applies the snapshot if gen is still the latest switch.
func (s *Switcher) restore(gen uint64, superseded chan struct{}, snap Snapshot, sel Selection) (Event, error) {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return Event{}, ErrStaleSwitch
	}
	if s.superseded == superseded {
		s.superseded = nil
	}
	s.mu.Unlock()

	if err := s.player.Seek(snap.Time); err != nil {
		return Event{}, fmt.Errorf("restore position: %w", err)
	}
	if !snap.Paused {
		if err := s.player.Resume(); err != nil {
			return Event{}, fmt.Errorf("resume playback: %w", err)
		}
	}

	return Event{
		Kind:       ResolutionChange,
		Label:      sel.Label,
		Selection:  sel,
		Generation: gen,
	}, nil
}

// capture reads the player state. A player with nothing loaded reports no position;
// the switch then starts from the beginning. An unknown paused state counts as paused.
func (s *Switcher) capture() Snapshot {
	var snap Snapshot

	pos, err := s.player.GetTimePos()
	if err != nil {
		log.Warnf("capture position: %v", err)
	} else {
		snap.Time = pos
	}

	paused, err := s.player.GetPausedStatus()
	if err != nil {
		log.Warnf("capture paused state: %v", err)
		paused = true
	}
	snap.Paused = paused

	return snap
}

// issue starts a new generation and releases the pending switch. Caller holds mu.
func (s *Switcher) issue() uint64 {
	s.generation++
	if s.superseded != nil {
		close(s.superseded)
		s.superseded = nil
	}
	s.opts.Recorder.GenerationIssued(s.generation)
	return s.generation
}

// release forgets the pending switch if it is still the one identified by ch.
func (s *Switcher) release(ch chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.superseded == ch {
		s.superseded = nil
	}
}

// setLabel updates the display label. Caller holds mu.
func (s *Switcher) setLabel(sel Selection, gen uint64) *Event {
	if s.label == sel.Label {
		return nil
	}
	s.label = sel.Label

	if !s.opts.DynamicLabel {
		return nil
	}
	return &Event{Kind: LabelChange, Label: sel.Label, Selection: sel, Generation: gen}
}

func (s *Switcher) emit(e *Event) {
	if e == nil {
		return
	}

	s.mu.Lock()
	subs := append([]subscriber(nil), s.subscribers...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(*e)
	}
}

// Subscribe registers fn for switcher events and returns a function removing it.
func (s *Switcher) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Label returns the text shown on the quality control.
func (s *Switcher) Label() string {
	if !s.opts.DynamicLabel {
		return s.opts.StaticLabel
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// Current returns the active selection.
func (s *Switcher) Current() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Catalog returns the catalog built by the last Load.
func (s *Switcher) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Generation returns the id of the latest switch.
func (s *Switcher) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Switching reports whether a switch is waiting for the player.
func (s *Switcher) Switching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.superseded != nil
}
