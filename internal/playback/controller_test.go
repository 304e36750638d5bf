package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/llehouerou/sift/internal/player"
	"github.com/llehouerou/sift/internal/track"
)

func newTestController(t *testing.T, paths ...string) (*Controller, *player.Mock, *track.List) {
	t.Helper()
	if len(paths) == 0 {
		paths = []string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"}
	}
	m := player.NewMock()
	return New(m), m, track.Build(paths, nil)
}

func get(t *testing.T, l *track.List, i int) *track.Track {
	t.Helper()
	tr, err := l.Get(i)
	if err != nil {
		t.Fatalf("Get(%d) error = %v", i, err)
	}
	return tr
}

func TestController_PlayNothingLoaded(t *testing.T) {
	c, _, _ := newTestController(t)

	if err := c.Play(); !errors.Is(err, ErrNothingLoaded) {
		t.Errorf("Play() error = %v, want ErrNothingLoaded", err)
	}
	if c.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", c.State())
	}
	if c.PollActive() {
		t.Error("poll active after failed Play")
	}
}

func TestController_PauseFromStopped(t *testing.T) {
	c, _, l := newTestController(t)
	if err := c.Load(get(t, l, 0)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := c.Pause(); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("Pause() error = %v, want ErrNotPlaying", err)
	}
	if c.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", c.State())
	}
}

func TestController_LoadKeepsState(t *testing.T) {
	c, m, l := newTestController(t)

	a := get(t, l, 0)
	if err := c.Load(a); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.State() != StateStopped {
		t.Errorf("State() = %v after Load, want Stopped", c.State())
	}
	if c.Loaded() != a {
		t.Error("Loaded() is not the loaded track")
	}
	if len(m.OpenCalls) != 1 || m.OpenCalls[0] != a.Path() {
		t.Errorf("OpenCalls = %v, want [%s]", m.OpenCalls, a.Path())
	}
}

func TestController_LoadError(t *testing.T) {
	c, m, l := newTestController(t)
	cause := errors.New("corrupt header")
	m.SetOpenError("/m/b.mp3", cause)

	err := c.Load(get(t, l, 1))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
	if le.Path != "/m/b.mp3" || !errors.Is(err, cause) {
		t.Errorf("LoadError = %+v", le)
	}
	if c.Loaded() != nil {
		t.Error("Loaded() != nil after failed Load")
	}
	if err := c.Play(); !errors.Is(err, ErrNothingLoaded) {
		t.Errorf("Play() after failed Load error = %v, want ErrNothingLoaded", err)
	}
}

func TestController_Transitions(t *testing.T) {
	c, _, l := newTestController(t)
	if err := c.Load(get(t, l, 0)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	steps := []struct {
		name string
		do   func() error
		want State
		poll bool
	}{
		{"play", c.Play, StatePlaying, true},
		{"pause", c.Pause, StatePaused, false},
		{"resume", c.Play, StatePlaying, true},
		{"toggle pauses", c.Toggle, StatePaused, false},
		{"toggle plays", c.Toggle, StatePlaying, true},
		{"stop", func() error { c.Stop(); return nil }, StateStopped, false},
		{"stop again", func() error { c.Stop(); return nil }, StateStopped, false},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			t.Fatalf("%s: error = %v", s.name, err)
		}
		if c.State() != s.want {
			t.Fatalf("%s: State() = %v, want %v", s.name, c.State(), s.want)
		}
		if c.PollActive() != s.poll {
			t.Fatalf("%s: PollActive() = %v, want %v", s.name, c.PollActive(), s.poll)
		}
	}
	if c.Loaded() == nil {
		t.Error("Stop() dropped the loaded track")
	}
}

func TestController_PlayWhilePlayingKeepsPoll(t *testing.T) {
	c, _, l := newTestController(t)
	_ = c.Load(get(t, l, 0))
	_ = c.Play()
	gen, ok := c.PendingPoll()
	if !ok {
		t.Fatal("PendingPoll() absent after Play")
	}

	if err := c.Play(); err != nil {
		t.Fatalf("second Play() error = %v", err)
	}
	if _, ok := c.PendingPoll(); ok {
		t.Error("second Play() started another poll")
	}
	if !c.Tick(gen) {
		t.Error("Tick(gen) rejected the live generation")
	}
}

func TestController_StepComputesFraction(t *testing.T) {
	c, m, l := newTestController(t)
	_ = c.Load(get(t, l, 0))
	m.SetTime("/m/a.mp3", 10*time.Second)

	if err := c.Step(5); err != nil {
		t.Fatalf("Step(5) error = %v", err)
	}
	if len(m.SeekCalls) != 1 || m.SeekCalls[0] != 0.25 {
		t.Errorf("SeekCalls = %v, want [0.25]", m.SeekCalls)
	}
	if got := c.Snapshot().Time; got != 15*time.Second {
		t.Errorf("Snapshot().Time = %v, want 15s", got)
	}
}

func TestController_StepBackwardClamps(t *testing.T) {
	c, m, l := newTestController(t)
	_ = c.Load(get(t, l, 0))
	m.SetTime("/m/a.mp3", 2*time.Second)

	if err := c.Step(-5); err != nil {
		t.Fatalf("Step(-5) error = %v", err)
	}
	if m.SeekCalls[0] != 0 {
		t.Errorf("SeekCalls = %v, want [0]", m.SeekCalls)
	}
}

func TestController_StepNothingLoaded(t *testing.T) {
	c, _, _ := newTestController(t)
	if err := c.Step(5); !errors.Is(err, ErrNoDuration) {
		t.Errorf("Step() error = %v, want ErrNoDuration", err)
	}
}

func TestController_SeekSubSecond(t *testing.T) {
	c, m, l := newTestController(t)
	_ = c.Load(get(t, l, 0))
	m.SetTime("/m/a.mp3", 14400*time.Millisecond)

	if err := c.Seek(600 * time.Millisecond); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if len(m.SeekCalls) != 1 || m.SeekCalls[0] != 0.25 {
		t.Errorf("SeekCalls = %v, want [0.25]", m.SeekCalls)
	}
}

func TestController_Volume(t *testing.T) {
	c, m, _ := newTestController(t)

	c.SetVolume(0.5)
	c.StepVolume(0.2)
	if got := c.Volume(); got < 0.699 || got > 0.701 {
		t.Errorf("Volume() = %v, want 0.7", got)
	}
	c.StepVolume(1)
	if got := m.Volume(); got != 1 {
		t.Errorf("backend volume = %v, want 1", got)
	}
	c.StepVolume(-3)
	if got := c.Volume(); got != 0 {
		t.Errorf("Volume() = %v, want 0", got)
	}
}

func TestController_SetPosition(t *testing.T) {
	c, m, l := newTestController(t)
	_ = c.Load(get(t, l, 0))

	c.SetPosition(0.5)
	if got := c.Snapshot().Position; got != 0.5 {
		t.Errorf("Snapshot().Position = %v, want 0.5", got)
	}
	if len(m.SeekCalls) != 1 || m.SeekCalls[0] != 0.5 {
		t.Errorf("SeekCalls = %v, want [0.5]", m.SeekCalls)
	}
}

func TestController_SetPositionNothingLoaded(t *testing.T) {
	c, m, _ := newTestController(t)
	c.SetPosition(0.5)
	if len(m.SeekCalls) != 0 {
		t.Errorf("SeekCalls = %v, want none", m.SeekCalls)
	}
}

func TestController_TickDetectsNaturalEnd(t *testing.T) {
	c, m, l := newTestController(t)
	sub := c.Subscribe()
	_ = c.Load(get(t, l, 0))
	_ = c.Play()
	gen, _ := c.PendingPoll()
	<-sub.StateChanged // Stopped -> Playing

	if !c.Tick(gen) {
		t.Fatal("Tick() stopped while playing")
	}
	m.Finish("/m/a.mp3")
	if c.Tick(gen) {
		t.Error("Tick() kept polling after the end of the track")
	}

	if c.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", c.State())
	}
	e := <-sub.StateChanged
	if !e.Finished() {
		t.Errorf("StateChange = %+v, want finished", e)
	}
	if c.PollActive() {
		t.Error("poll active after end of track")
	}
}

func TestController_TickWhilePausedIsNotEnd(t *testing.T) {
	c, _, l := newTestController(t)
	_ = c.Load(get(t, l, 0))
	_ = c.Play()
	gen, _ := c.PendingPoll()
	_ = c.Pause()

	if c.Tick(gen) {
		t.Error("stale tick accepted after Pause")
	}
	if c.State() != StatePaused {
		t.Errorf("State() = %v, want Paused", c.State())
	}
}

func TestController_ExplicitStopReason(t *testing.T) {
	c, _, l := newTestController(t)
	sub := c.Subscribe()
	_ = c.Load(get(t, l, 0))
	_ = c.Play()
	<-sub.StateChanged

	c.Stop()
	e := <-sub.StateChanged
	if e.Reason != ReasonExplicit || e.Finished() {
		t.Errorf("StateChange = %+v, want explicit stop", e)
	}
}

func TestController_LoadWhilePlayingReplaces(t *testing.T) {
	c, m, l := newTestController(t)
	sub := c.Subscribe()
	_ = c.Load(get(t, l, 0))
	_ = c.Play()
	<-sub.StateChanged

	if err := c.Load(get(t, l, 1)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	e := <-sub.StateChanged
	if e.Reason != ReasonReplaced || e.Current != StateStopped {
		t.Errorf("StateChange = %+v, want replaced stop", e)
	}
	if len(m.Released) != 1 || m.Released[0] != "/m/a.mp3" {
		t.Errorf("Released = %v, want [/m/a.mp3]", m.Released)
	}
}

func TestController_PlayError(t *testing.T) {
	c, m, l := newTestController(t)
	_ = c.Load(get(t, l, 0))
	m.SetPlayError(errors.New("device busy"))

	var le *LoadError
	if err := c.Play(); !errors.As(err, &le) || le.Op != "play" {
		t.Errorf("Play() error = %v, want play *LoadError", err)
	}
	if c.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", c.State())
	}
}

func TestController_CloseSignalsDone(t *testing.T) {
	c, m, l := newTestController(t)
	sub := c.Subscribe()
	_ = c.Load(get(t, l, 0))

	c.Close()
	select {
	case <-sub.Done:
	case <-time.After(100 * time.Millisecond):
		t.Error("Done not closed")
	}
	if len(m.Released) != 1 {
		t.Errorf("Released = %v, want one handle", m.Released)
	}
}
