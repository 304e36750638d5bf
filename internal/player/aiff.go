package player

import (
	"errors"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/gopxl/beep/v2"
)

// skipChunk is the number of frames decoded per read while skipping forward.
const skipChunk = 4096

// aiffStream adapts a go-audio AIFF decoder to beep.StreamSeekCloser. The
// decoder only reads forward, so a backward seek restarts it from the top of
// the file.
type aiffStream struct {
	rs      io.ReadSeeker
	closer  io.Closer
	decoder *aiff.Decoder

	channels int
	rate     int
	scale    float64
	length   int
	pos      int

	buf *audio.IntBuffer
	err error
}

func decodeAIFF(rsc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	s := &aiffStream{rs: rsc, closer: rsc}
	if err := s.restart(); err != nil {
		return nil, beep.Format{}, err
	}

	d := s.decoder
	if d.NumChans == 0 || d.SampleRate <= 0 || d.BitDepth == 0 || d.BitDepth > 32 {
		return nil, beep.Format{}, errors.New("aiff: invalid header")
	}
	s.channels = int(d.NumChans)
	s.rate = d.SampleRate
	s.scale = float64(int64(1) << (d.BitDepth - 1))
	s.length = int(d.NumSampleFrames)

	format := beep.Format{
		SampleRate:  beep.SampleRate(d.SampleRate),
		NumChannels: min(s.channels, 2),
		Precision:   int(d.BitDepth+7) / 8,
	}
	return s, format, nil
}

func (s *aiffStream) restart() error {
	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return err
	}
	d := aiff.NewDecoder(s.rs)
	if !d.IsValidFile() {
		return errors.New("aiff: not a valid file")
	}
	s.decoder = d
	s.pos = 0
	s.err = nil
	return nil
}

// Stream decodes the next frames. Mono is copied to both sides; channels past
// the second are dropped.
func (s *aiffStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil || s.pos >= s.length {
		return 0, false
	}

	need := min(len(samples), s.length-s.pos) * s.channels
	if s.buf == nil || cap(s.buf.Data) < need {
		s.buf = &audio.IntBuffer{
			Format: &audio.Format{NumChannels: s.channels, SampleRate: s.rate},
			Data:   make([]int, need),
		}
	}
	s.buf.Data = s.buf.Data[:need]

	read, err := s.decoder.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
		return 0, false
	}

	frames := read / s.channels
	if frames == 0 {
		return 0, false
	}
	for i := range frames {
		frame := s.buf.Data[i*s.channels:]
		left := float64(frame[0]) / s.scale
		right := left
		if s.channels > 1 {
			right = float64(frame[1]) / s.scale
		}
		samples[i] = [2]float64{left, right}
	}
	s.pos += frames
	return frames, true
}

func (s *aiffStream) Err() error { return s.err }

func (s *aiffStream) Len() int { return s.length }

func (s *aiffStream) Position() int { return s.pos }

func (s *aiffStream) Seek(p int) error {
	p = max(0, min(p, s.length))
	if p < s.pos {
		if err := s.restart(); err != nil {
			s.err = err
			return err
		}
	}

	discard := make([][2]float64, skipChunk)
	for s.pos < p {
		if _, ok := s.Stream(discard[:min(p-s.pos, skipChunk)]); !ok {
			break
		}
	}
	return s.err
}

func (s *aiffStream) Close() error { return s.closer.Close() }
