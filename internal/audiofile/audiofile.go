// Package audiofile decodes WAV, FLAC, MP3 and Ogg Vorbis files into mono
// 16-bit PCM for the analyzer.
package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const (
	readChunkFrames = 4096
	pcmBits         = 16
	mp3Channels     = 2
)

// Source yields mono 16-bit samples from a decoded file.
type Source interface {
	// ReadMono fills dst and returns the number of samples written. It
	// returns io.EOF once the stream is exhausted.
	ReadMono(dst []int16) (int, error)
	SampleRate() int
	Channels() int
	// Frames returns the stream length in mono samples, or -1 if unknown.
	Frames() int64
	Close() error
}

// Open picks a decoder by file extension.
func Open(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	var src Source
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		src, err = newWAVSource(f)
	case ".flac":
		src, err = newFLACSource(f)
	case ".mp3":
		src, err = newMP3Source(f)
	case ".ogg":
		src, err = newOGGSource(f)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return src, nil
}

// ReadAll drains src into one slice.
func ReadAll(src Source) ([]int16, error) {
	var out []int16
	buf := make([]int16, readChunkFrames)
	for {
		n, err := src.ReadMono(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

// pending holds decoded mono samples not yet handed to the caller.
type pending struct {
	buf  []int16
	mono []int16
	eof  bool
}

// drain copies buffered samples into dst. It reports io.EOF once the
// buffer is empty and the decoder has finished.
func (p *pending) drain(dst []int16) (int, error) {
	n := copy(dst, p.mono)
	p.mono = p.mono[n:]
	if len(p.mono) == 0 && p.eof {
		return n, io.EOF
	}
	return n, nil
}

// push downmixes interleaved 16-bit frames. It must only be called once
// the previous batch has been drained.
func (p *pending) push(interleaved []int, channels int) {
	if channels < 1 {
		channels = 1
	}
	p.buf = p.buf[:0]
	for i := 0; i+channels <= len(interleaved); i += channels {
		var sum int
		for _, s := range interleaved[i : i+channels] {
			sum += s
		}
		p.buf = append(p.buf, clamp16(sum/channels))
	}
	p.mono = p.buf
}

func clamp16(v int) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// to16 rescales a sample of the given bit depth to 16 bits.
func to16(s, bits int) int {
	switch {
	case bits > pcmBits:
		return s >> (bits - pcmBits)
	case bits < pcmBits:
		return s << (pcmBits - bits)
	}
	return s
}

type wavSource struct {
	pending
	file     *os.File
	dec      *wav.Decoder
	buf      *audio.IntBuffer
	rate     int
	channels int
	bits     int
	frames   int64
}

func newWAVSource(f *os.File) (*wavSource, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", f.Name())
	}
	// FwdToPCM positions the reader at the start of PCM data
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	format := dec.Format()
	channels := max(format.NumChannels, 1)
	frames := int64(-1)
	if frameSize := int64(channels) * int64(dec.BitDepth) / 8; frameSize > 0 {
		frames = dec.PCMLen() / frameSize
	}
	return &wavSource{
		file: f,
		dec:  dec,
		buf: &audio.IntBuffer{
			Data:   make([]int, readChunkFrames*channels),
			Format: format,
		},
		rate:     format.SampleRate,
		channels: channels,
		bits:     int(dec.BitDepth),
		frames:   frames,
	}, nil
}

func (s *wavSource) ReadMono(dst []int16) (int, error) {
	for len(s.mono) == 0 && !s.eof {
		n, err := s.dec.PCMBuffer(s.buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			s.eof = true
			break
		}
		data := s.buf.Data[:n]
		if s.bits == 8 {
			// 8-bit WAV is unsigned
			for i, v := range data {
				data[i] = (v - 128) << 8
			}
		} else {
			for i, v := range data {
				data[i] = to16(v, s.bits)
			}
		}
		s.push(data, s.channels)
	}
	return s.drain(dst)
}

func (s *wavSource) SampleRate() int { return s.rate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Frames() int64   { return s.frames }
func (s *wavSource) Close() error    { return s.file.Close() }

type flacSource struct {
	pending
	file     *os.File
	stream   *flac.Stream
	frame    []int
	channels int
	bits     int
}

func newFLACSource(f *os.File) (*flacSource, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	return &flacSource{
		file:     f,
		stream:   stream,
		channels: int(info.NChannels),
		bits:     int(info.BitsPerSample),
	}, nil
}

func (s *flacSource) ReadMono(dst []int16) (int, error) {
	for len(s.mono) == 0 && !s.eof {
		frame, err := s.stream.ParseNext()
		if errors.Is(err, io.EOF) {
			s.eof = true
			break
		}
		if err != nil {
			return 0, fmt.Errorf("decoding FLAC frame: %w", err)
		}
		n := int(frame.Subframes[0].NSamples)
		s.frame = s.frame[:0]
		for i := range n {
			for ch := range s.channels {
				s.frame = append(s.frame, to16(int(frame.Subframes[ch].Samples[i]), s.bits))
			}
		}
		s.push(s.frame, s.channels)
	}
	return s.drain(dst)
}

func (s *flacSource) SampleRate() int { return int(s.stream.Info.SampleRate) }
func (s *flacSource) Channels() int   { return s.channels }
func (s *flacSource) Frames() int64   { return int64(s.stream.Info.NSamples) }

func (s *flacSource) Close() error { return s.file.Close() }

type mp3Source struct {
	pending
	file  *os.File
	dec   *mp3.Decoder
	raw   []byte
	frame []int
}

func newMP3Source(f *os.File) (*mp3Source, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Source{
		file: f,
		dec:  dec,
		raw:  make([]byte, readChunkFrames*mp3Channels*2),
	}, nil
}

func (s *mp3Source) ReadMono(dst []int16) (int, error) {
	for len(s.mono) == 0 && !s.eof {
		n, err := io.ReadFull(s.dec, s.raw)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			s.eof = true
		} else if err != nil {
			return 0, fmt.Errorf("decoding MP3: %w", err)
		}
		s.frame = s.frame[:0]
		for off := 0; off+1 < n; off += 2 {
			s.frame = append(s.frame, int(int16(binary.LittleEndian.Uint16(s.raw[off:]))))
		}
		s.push(s.frame, mp3Channels)
	}
	return s.drain(dst)
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int   { return mp3Channels }

func (s *mp3Source) Frames() int64 {
	if n := s.dec.Length(); n >= 0 {
		return n / (mp3Channels * 2)
	}
	return -1
}
func (s *mp3Source) Close() error    { return s.file.Close() }

type oggSource struct {
	pending
	file    *os.File
	reader  *oggvorbis.Reader
	samples []float32
	frame   []int
}

func newOGGSource(f *os.File) (*oggSource, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggSource{
		file:    f,
		reader:  reader,
		samples: make([]float32, readChunkFrames*max(reader.Channels(), 1)),
	}, nil
}

func (s *oggSource) ReadMono(dst []int16) (int, error) {
	for len(s.mono) == 0 && !s.eof {
		n, err := s.reader.Read(s.samples)
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else if err != nil {
			return 0, fmt.Errorf("decoding OGG: %w", err)
		}
		s.frame = s.frame[:0]
		for _, v := range s.samples[:n] {
			v = min(max(v, -1), 1)
			s.frame = append(s.frame, int(v*math.MaxInt16))
		}
		s.push(s.frame, s.reader.Channels())
	}
	return s.drain(dst)
}

func (s *oggSource) SampleRate() int { return s.reader.SampleRate() }
func (s *oggSource) Channels() int   { return s.reader.Channels() }
func (s *oggSource) Frames() int64   { return s.reader.Length() }
func (s *oggSource) Close() error    { return s.file.Close() }
