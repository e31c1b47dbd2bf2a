package switcher

import (
	"context"
	"sync"
	"time"

	"github.com/vidswitch/vidswitch/source"
)

type fakeHandle struct {
	ch   chan struct{}
	once sync.Once
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{ch: make(chan struct{})}
}

func (h *fakeHandle) Ready() <-chan struct{} { return h.ch }

func (h *fakeHandle) fire() { h.once.Do(func() { close(h.ch) }) }

// fakePlayer records every call the switcher makes.
type fakePlayer struct {
	mu sync.Mutex

	time   float64
	paused bool

	assigned [][]source.Stream
	handles  []*fakeHandle
	seeks    []float64
	resumes  int

	assignErr error
	timeErr   error
	seekErr   error
	pauseErr  error

	// receives the index of each assignment
	assignedCh chan int
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{assignedCh: make(chan int, 16)}
}

func (p *fakePlayer) AssignSources(_ context.Context, streams []source.Stream) (Handle, error) {
	p.mu.Lock()
	if p.assignErr != nil {
		p.mu.Unlock()
		return nil, p.assignErr
	}

	h := newFakeHandle()
	p.assigned = append(p.assigned, streams)
	p.handles = append(p.handles, h)
	// a freshly loaded source starts at the beginning
	p.time = 0
	idx := len(p.handles) - 1
	p.mu.Unlock()

	p.assignedCh <- idx
	return h, nil
}

func (p *fakePlayer) GetTimePos() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timeErr != nil {
		return 0, p.timeErr
	}
	return p.time, nil
}

func (p *fakePlayer) Seek(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seekErr != nil {
		return p.seekErr
	}
	p.seeks = append(p.seeks, seconds)
	p.time = seconds
	return nil
}

func (p *fakePlayer) GetPausedStatus() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pauseErr != nil {
		return false, p.pauseErr
	}
	return p.paused, nil
}

func (p *fakePlayer) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resumes++
	p.paused = false
	return nil
}

func (p *fakePlayer) set(t float64, paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.time = t
	p.paused = paused
}

func (p *fakePlayer) handle(i int) *fakeHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handles[i]
}

func (p *fakePlayer) seekCalls() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]float64(nil), p.seeks...)
}

func (p *fakePlayer) resumeCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resumes
}

// waitAssigned blocks until the next assignment and returns its index.
func (p *fakePlayer) waitAssigned() int {
	select {
	case i := <-p.assignedCh:
		return i
	case <-time.After(2 * time.Second):
		panic("no assignment within 2s")
	}
}

type fakeRecorder struct {
	mu          sync.Mutex
	results     []Result
	generations []uint64
}

func (r *fakeRecorder) SwitchFinished(result Result, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *fakeRecorder) GenerationIssued(generation uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations = append(r.generations, generation)
}

func (r *fakeRecorder) all() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}
