package switcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("testing.(*T).Run"))
}

var errNoReturn = errors.New("switch did not return")

func switchAsync(ctx context.Context, s *Switcher, label string) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- s.SwitchToLabel(ctx, label)
	}()
	return done
}

func await(done <-chan error) error {
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		return errNoReturn
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) add(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()

	kinds := make([]EventKind, len(l.events))
	for i, e := range l.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (l *eventLog) last() Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events[len(l.events)-1]
}

func loaded(opts Options) (*Switcher, *fakePlayer) {
	p := newFakePlayer()
	s := New(p, opts)
	So(s.Load(context.Background(), fixture()), ShouldBeNil)
	So(p.waitAssigned(), ShouldEqual, 0)
	return s, p
}

func TestLoad(t *testing.T) {
	Convey("Given a switcher with a high default", t, func() {
		rec := &fakeRecorder{}
		s, p := loaded(Options{Default: Default{Mode: High}, DynamicLabel: true, Recorder: rec})

		Convey("The best source is assigned", func() {
			So(p.assigned[0], ShouldHaveLength, 1)
			So(p.assigned[0][0].Res, ShouldEqual, "1080")
			So(s.Current().Label, ShouldEqual, "1080p")
			So(s.Label(), ShouldEqual, "1080p")
		})

		Convey("Nothing is restored", func() {
			So(p.seekCalls(), ShouldBeEmpty)
			So(p.resumeCalls(), ShouldEqual, 0)
			So(s.Switching(), ShouldBeFalse)
		})

		Convey("A generation is issued", func() {
			So(s.Generation(), ShouldEqual, 1)
			So(rec.generations, ShouldResemble, []uint64{1})
		})

		Convey("The catalog is exposed", func() {
			So(s.Catalog().Labels(), ShouldResemble, []string{"1080p", "720p", "480p"})
		})
	})

	Convey("Given an explicit default with duplicates", t, func() {
		s, p := loaded(Options{Default: ParseDefault("720"), DynamicLabel: true})

		Convey("Both formats are handed to the player in order", func() {
			So(p.assigned[0], ShouldHaveLength, 2)
			So(p.assigned[0][0].Type, ShouldEqual, "video/mp4")
			So(p.assigned[0][1].Type, ShouldEqual, "video/webm")
			So(s.Label(), ShouldEqual, "720p")
		})
	})

	Convey("Given no sources", t, func() {
		p := newFakePlayer()
		s := New(p, Options{Default: Default{Mode: High}})

		Convey("Load fails without touching the player", func() {
			So(s.Load(context.Background(), nil), ShouldEqual, ErrEmptyCatalog)
			So(p.assigned, ShouldBeEmpty)
			So(s.Current().Empty(), ShouldBeTrue)
		})
	})
}

func TestSwitchTo(t *testing.T) {
	ctx := context.Background()

	Convey("Given a loaded switcher", t, func() {
		rec := &fakeRecorder{}
		s, p := loaded(Options{Default: Default{Mode: High}, DynamicLabel: true, Recorder: rec})

		events := &eventLog{}
		unsubscribe := s.Subscribe(events.add)
		defer unsubscribe()

		Convey("Switching while paused keeps position and paused state", func() {
			p.set(42.5, true)

			done := switchAsync(ctx, s, "480p")
			idx := p.waitAssigned()
			So(s.Label(), ShouldEqual, "480p")
			So(s.Switching(), ShouldBeTrue)

			p.handle(idx).fire()
			So(await(done), ShouldBeNil)

			So(p.seekCalls(), ShouldResemble, []float64{42.5})
			So(p.resumeCalls(), ShouldEqual, 0)
			So(s.Current().Label, ShouldEqual, "480p")
			So(s.Switching(), ShouldBeFalse)
			So(rec.all(), ShouldResemble, []Result{ResultCompleted})
		})

		Convey("Switching while playing resumes playback", func() {
			p.set(10, false)

			done := switchAsync(ctx, s, "720p")
			idx := p.waitAssigned()
			So(p.assigned[idx], ShouldHaveLength, 2)

			p.handle(idx).fire()
			So(await(done), ShouldBeNil)

			So(p.seekCalls(), ShouldResemble, []float64{10})
			So(p.resumeCalls(), ShouldEqual, 1)
		})

		Convey("Subscribers see the label before the resolution change", func() {
			done := switchAsync(ctx, s, "480p")
			p.handle(p.waitAssigned()).fire()
			So(await(done), ShouldBeNil)

			So(events.kinds(), ShouldResemble, []EventKind{LabelChange, ResolutionChange})
			last := events.last()
			So(last.Label, ShouldEqual, "480p")
			So(last.Generation, ShouldEqual, 2)
		})

		Convey("Switching to the active label emits no label event", func() {
			done := switchAsync(ctx, s, "1080p")
			p.handle(p.waitAssigned()).fire()
			So(await(done), ShouldBeNil)

			So(events.kinds(), ShouldResemble, []EventKind{ResolutionChange})
		})

		Convey("A newer switch supersedes a pending one", func() {
			p.set(10, false)
			first := switchAsync(ctx, s, "720p")
			firstIdx := p.waitAssigned()

			p.set(20, false)
			second := switchAsync(ctx, s, "480p")
			secondIdx := p.waitAssigned()

			So(await(first), ShouldEqual, ErrStaleSwitch)

			// readiness of the superseded source changes nothing
			p.handle(firstIdx).fire()
			So(p.seekCalls(), ShouldBeEmpty)

			p.handle(secondIdx).fire()
			So(await(second), ShouldBeNil)

			So(p.seekCalls(), ShouldResemble, []float64{20})
			So(s.Current().Label, ShouldEqual, "480p")
			So(s.Label(), ShouldEqual, "480p")
			So(s.Generation(), ShouldEqual, 3)
			So(rec.all(), ShouldResemble, []Result{ResultStale, ResultCompleted})
		})

		Convey("Readiness of a superseded source after the newer switch completed changes nothing", func() {
			p.set(10, false)
			first := switchAsync(ctx, s, "720p")
			firstIdx := p.waitAssigned()

			p.set(20, true)
			second := switchAsync(ctx, s, "480p")
			secondIdx := p.waitAssigned()
			So(await(first), ShouldEqual, ErrStaleSwitch)

			p.handle(secondIdx).fire()
			So(await(second), ShouldBeNil)
			So(p.seekCalls(), ShouldResemble, []float64{20})
			So(p.resumeCalls(), ShouldEqual, 0)

			p.handle(firstIdx).fire()
			time.Sleep(20 * time.Millisecond)

			So(p.seekCalls(), ShouldResemble, []float64{20})
			So(p.resumeCalls(), ShouldEqual, 0)
			So(s.Generation(), ShouldEqual, 3)
			So(s.Current().Label, ShouldEqual, "480p")
			So(events.kinds(), ShouldResemble, []EventKind{LabelChange, LabelChange, ResolutionChange})
		})

		Convey("A source that never becomes ready times out", func() {
			s.opts.Timeout = 20 * time.Millisecond

			err := await(switchAsync(ctx, s, "480p"))
			So(errors.Is(err, ErrSwitchTimeout), ShouldBeTrue)
			So(s.Switching(), ShouldBeFalse)
			So(s.Label(), ShouldEqual, "480p")
			So(p.seekCalls(), ShouldBeEmpty)
			So(rec.all(), ShouldResemble, []Result{ResultTimeout})
			p.waitAssigned()
		})

		Convey("Cancelling the context abandons the wait", func() {
			cctx, cancel := context.WithCancel(ctx)
			done := switchAsync(cctx, s, "480p")
			p.waitAssigned()
			cancel()

			So(await(done), ShouldEqual, context.Canceled)
			So(s.Switching(), ShouldBeFalse)
			So(rec.all(), ShouldResemble, []Result{ResultCanceled})
		})

		Convey("A failed assignment keeps the requested label", func() {
			p.assignErr = errors.New("boom")

			err := s.SwitchToLabel(ctx, "480p")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "boom")
			So(s.Label(), ShouldEqual, "480p")
			So(s.Current().Label, ShouldEqual, "1080p")
			So(s.Switching(), ShouldBeFalse)
			So(rec.all(), ShouldResemble, []Result{ResultError})
		})

		Convey("A player without position restarts from zero", func() {
			p.timeErr = errors.New("property unavailable")

			done := switchAsync(ctx, s, "480p")
			p.handle(p.waitAssigned()).fire()
			So(await(done), ShouldBeNil)
			So(p.seekCalls(), ShouldResemble, []float64{0})
		})

		Convey("A player with unknown paused state stays paused", func() {
			p.set(15, false)
			p.pauseErr = errors.New("property unavailable")

			done := switchAsync(ctx, s, "480p")
			p.handle(p.waitAssigned()).fire()
			So(await(done), ShouldBeNil)
			So(p.seekCalls(), ShouldResemble, []float64{15})
			So(p.resumeCalls(), ShouldEqual, 0)
		})

		Convey("A failed seek is reported", func() {
			p.seekErr = errors.New("seek refused")

			done := switchAsync(ctx, s, "480p")
			p.handle(p.waitAssigned()).fire()
			err := await(done)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "restore position")
			So(rec.all(), ShouldResemble, []Result{ResultError})
		})

		Convey("Unknown labels are rejected", func() {
			err := s.SwitchToLabel(ctx, "4K")
			So(errors.Is(err, ErrUnknownLabel), ShouldBeTrue)
			So(s.Generation(), ShouldEqual, 1)
		})

		Convey("Empty selections are rejected", func() {
			So(s.SwitchTo(ctx, Selection{Label: "none"}), ShouldEqual, ErrEmptySelection)
		})

		Convey("Unsubscribed handlers get nothing", func() {
			unsubscribe()

			done := switchAsync(ctx, s, "480p")
			p.handle(p.waitAssigned()).fire()
			So(await(done), ShouldBeNil)
			So(events.kinds(), ShouldBeEmpty)
		})
	})
}

func TestStaticLabel(t *testing.T) {
	Convey("Given a switcher with a static label", t, func() {
		s, p := loaded(Options{Default: Default{Mode: Low}, StaticLabel: "Quality"})

		events := &eventLog{}
		defer s.Subscribe(events.add)()

		Convey("The label never changes", func() {
			So(s.Label(), ShouldEqual, "Quality")

			done := switchAsync(context.Background(), s, "1080p")
			p.handle(p.waitAssigned()).fire()
			So(await(done), ShouldBeNil)

			So(s.Label(), ShouldEqual, "Quality")
			So(s.Current().Label, ShouldEqual, "1080p")
			So(events.kinds(), ShouldResemble, []EventKind{ResolutionChange})
		})
	})
}
