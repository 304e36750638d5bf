package player

import (
	"errors"
	"time"
)

// Mock is an in-memory Backend for tests. Time advances only when the test
// says so.
type Mock struct {
	openErr  map[string]error
	playErr  error
	duration time.Duration
	volume   float64

	handles   map[string]*mockHandle
	OpenCalls []string
	SeekCalls []float64
	Released  []string
}

type mockHandle struct {
	path     string
	playing  bool
	finished bool
	elapsed  time.Duration
	duration time.Duration
}

func (h *mockHandle) Path() string { return h.path }

// NewMock creates a mock whose files last one minute.
func NewMock() *Mock {
	return &Mock{
		openErr:  make(map[string]error),
		duration: time.Minute,
		volume:   1,
		handles:  make(map[string]*mockHandle),
	}
}

// SetOpenError makes Open fail for path.
func (m *Mock) SetOpenError(path string, err error) { m.openErr[path] = err }

// SetPlayError makes every Play call fail.
func (m *Mock) SetPlayError(err error) { m.playErr = err }

// SetDuration sets the duration reported for files opened afterwards.
func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

// SetTime moves the playhead of an opened file.
func (m *Mock) SetTime(path string, t time.Duration) {
	if h, ok := m.handles[path]; ok {
		h.elapsed = t
	}
}

// Finish simulates the natural end of the file.
func (m *Mock) Finish(path string) {
	if h, ok := m.handles[path]; ok {
		h.elapsed = h.duration
		h.playing = false
		h.finished = true
	}
}

func (m *Mock) handle(h Handle) *mockHandle {
	mh, _ := h.(*mockHandle)
	return mh
}

func (m *Mock) Open(path string) (Handle, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if err := m.openErr[path]; err != nil {
		return nil, err
	}
	h := &mockHandle{path: path, duration: m.duration}
	m.handles[path] = h
	return h, nil
}

func (m *Mock) Play(h Handle) error {
	mh := m.handle(h)
	if mh == nil {
		return errors.New("mock: invalid handle")
	}
	if m.playErr != nil {
		return m.playErr
	}
	if mh.finished {
		mh.elapsed, mh.finished = 0, false
	}
	mh.playing = true
	return nil
}

func (m *Mock) Pause(h Handle) {
	if mh := m.handle(h); mh != nil {
		mh.playing = false
	}
}

func (m *Mock) Stop(h Handle) {
	if mh := m.handle(h); mh != nil {
		mh.playing = false
		mh.elapsed = 0
	}
}

func (m *Mock) IsPlaying(h Handle) bool {
	mh := m.handle(h)
	return mh != nil && mh.playing
}

func (m *Mock) Position(h Handle) float64 {
	mh := m.handle(h)
	if mh == nil || mh.duration <= 0 {
		return 0
	}
	return float64(mh.elapsed) / float64(mh.duration)
}

func (m *Mock) SetPosition(h Handle, pos float64) {
	mh := m.handle(h)
	if mh == nil {
		return
	}
	pos = clampFraction(pos)
	m.SeekCalls = append(m.SeekCalls, pos)
	mh.elapsed = time.Duration(pos * float64(mh.duration))
	mh.finished = false
}

func (m *Mock) Time(h Handle) time.Duration {
	if mh := m.handle(h); mh != nil {
		return mh.elapsed
	}
	return 0
}

func (m *Mock) Duration(h Handle) time.Duration {
	if mh := m.handle(h); mh != nil {
		return mh.duration
	}
	return 0
}

func (m *Mock) Release(h Handle) {
	if mh := m.handle(h); mh != nil {
		mh.playing = false
		m.Released = append(m.Released, mh.path)
		delete(m.handles, mh.path)
	}
}

func (m *Mock) SetVolume(level float64) { m.volume = clampFraction(level) }

func (m *Mock) Volume() float64 { return m.volume }

var _ Backend = (*Mock)(nil)
