package player

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog/log"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extAIF  = ".aif"
	extAIFF = ".aiff"
)

// resampleQuality is passed to beep.Resample when a file's rate differs
// from the speaker's.
const resampleQuality = 4

// Beep renders audio through the beep speaker. The speaker is initialised
// once, with the sample rate of the first file opened.
type Beep struct {
	mu          sync.Mutex
	initialized bool
	sampleRate  beep.SampleRate
	level       float64
	open        map[*beepHandle]struct{}
}

// NewBeep returns a backend using the system audio output, at full volume.
func NewBeep() *Beep {
	return &Beep{level: 1, open: make(map[*beepHandle]struct{})}
}

type beepHandle struct {
	path     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	volume   *effects.Volume
	ctrl     *beep.Ctrl

	// queued is true while the streamer is registered with the speaker.
	queued   atomic.Bool
	finished atomic.Bool
}

func (h *beepHandle) Path() string { return h.path }

// Open decodes the header of path and prepares it for playback, paused.
func (b *Beep) Open(path string) (Handle, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case extMP3, extFLAC, extWAV, extAIF, extAIFF:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(f)
	case extFLAC:
		// Some taggers prepend ID3v2 to FLAC, which the decoder rejects.
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
	case extWAV:
		streamer, format, err = wav.Decode(f)
	case extAIF, extAIFF:
		streamer, format, err = decodeAIFF(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if err := b.ensureSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		f.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	var out beep.Streamer = streamer
	if format.SampleRate != b.sampleRate {
		out = beep.Resample(resampleQuality, format.SampleRate, b.sampleRate, streamer)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	vol := &effects.Volume{Streamer: out, Base: 2}
	applyLevel(vol, b.level)
	h := &beepHandle{
		path:     path,
		file:     f,
		streamer: streamer,
		format:   format,
		volume:   vol,
		ctrl:     &beep.Ctrl{Streamer: vol, Paused: true},
	}
	b.open[h] = struct{}{}
	return h, nil
}

func (b *Beep) ensureSpeaker(rate beep.SampleRate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	b.initialized = true
	b.sampleRate = rate
	return nil
}

func asBeep(h Handle) *beepHandle {
	bh, _ := h.(*beepHandle)
	return bh
}

// Play starts or resumes rendering. A finished stream restarts from the
// beginning.
func (b *Beep) Play(h Handle) error {
	bh := asBeep(h)
	if bh == nil {
		return fmt.Errorf("play: invalid handle")
	}

	speaker.Lock()
	if bh.finished.Load() {
		if err := bh.streamer.Seek(0); err != nil {
			speaker.Unlock()
			return fmt.Errorf("rewind: %w", err)
		}
		bh.finished.Store(false)
	}
	bh.ctrl.Paused = false
	speaker.Unlock()

	if !bh.queued.Swap(true) {
		speaker.Play(beep.Seq(bh.ctrl, beep.Callback(func() {
			bh.finished.Store(true)
			bh.queued.Store(false)
		})))
	}
	return nil
}

func (b *Beep) Pause(h Handle) {
	bh := asBeep(h)
	if bh == nil {
		return
	}
	speaker.Lock()
	bh.ctrl.Paused = true
	speaker.Unlock()
}

// Stop pauses rendering and rewinds to the start.
func (b *Beep) Stop(h Handle) {
	bh := asBeep(h)
	if bh == nil {
		return
	}
	speaker.Lock()
	bh.ctrl.Paused = true
	err := bh.streamer.Seek(0)
	speaker.Unlock()
	if err != nil {
		log.Debug().Err(err).Str("path", bh.path).Msg("rewind on stop")
	}
}

func (b *Beep) IsPlaying(h Handle) bool {
	bh := asBeep(h)
	if bh == nil || bh.finished.Load() || !bh.queued.Load() {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !bh.ctrl.Paused
}

func (b *Beep) Position(h Handle) float64 {
	bh := asBeep(h)
	if bh == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	length := bh.streamer.Len()
	if length <= 0 {
		return 0
	}
	return float64(bh.streamer.Position()) / float64(length)
}

func (b *Beep) SetPosition(h Handle, pos float64) {
	bh := asBeep(h)
	if bh == nil {
		return
	}
	speaker.Lock()
	target := int(clampFraction(pos) * float64(bh.streamer.Len()))
	err := bh.streamer.Seek(target)
	// An explicit seek after the end replaces the rewind Play would do.
	bh.finished.Store(false)
	speaker.Unlock()
	if err != nil {
		log.Debug().Err(err).Str("path", bh.path).Int("sample", target).Msg("seek")
	}
}

func (b *Beep) Time(h Handle) time.Duration {
	bh := asBeep(h)
	if bh == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return bh.format.SampleRate.D(bh.streamer.Position())
}

func (b *Beep) Duration(h Handle) time.Duration {
	bh := asBeep(h)
	if bh == nil {
		return 0
	}
	return bh.format.SampleRate.D(bh.streamer.Len())
}

// Release stops rendering and closes the file.
func (b *Beep) Release(h Handle) {
	bh := asBeep(h)
	if bh == nil {
		return
	}
	speaker.Lock()
	bh.ctrl.Paused = true
	bh.ctrl.Streamer = nil
	speaker.Unlock()

	b.mu.Lock()
	delete(b.open, bh)
	b.mu.Unlock()

	bh.streamer.Close()
	bh.file.Close()
}

// SetVolume sets the output level of every open file, clamped to [0, 1].
func (b *Beep) SetVolume(level float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.level = clampFraction(level)
	if len(b.open) == 0 {
		return
	}
	speaker.Lock()
	for h := range b.open {
		applyLevel(h.volume, b.level)
	}
	speaker.Unlock()
}

func (b *Beep) Volume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}

func applyLevel(v *effects.Volume, level float64) {
	v.Volume = levelToVolume(level)
	v.Silent = level <= 0
}

// levelToVolume maps a linear level to beep's base-2 gain: 1 is unchanged,
// 0.5 is -1 and 0 is close to silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// skipID3v2 positions r after an ID3v2 tag, or at the start when there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n < len(header) {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	if string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	// Syncsafe integer: 7 bits per byte.
	size := int64(header[6]&0x7f)<<21 | int64(header[7]&0x7f)<<14 |
		int64(header[8]&0x7f)<<7 | int64(header[9]&0x7f)
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

var _ Backend = (*Beep)(nil)
