// Command spectrum-wav prints the band levels of an audio file over time.
//
// Usage:
//
//	spectrum-wav input.wav
//	spectrum-wav -bands 8 -speed high -interval 50 input.flac
//	spectrum-wav -reference input.wav     # add the loudest FFT band per frame
//
// WAV, FLAC, MP3 and Ogg Vorbis inputs are downmixed to mono. The file's
// sample rate must be one the analyzer supports.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	spectrum "github.com/tphakala/go-audio-spectrum"
	"github.com/tphakala/go-audio-spectrum/internal/audiofile"
	"github.com/tphakala/go-audio-spectrum/internal/reference"
)

const (
	// Samples pulled from the decoder per read
	readChunk = 4096

	// FFT length for -reference
	referenceFFTSize = 4096

	// CLI defaults
	defaultInterval = 100
	minRequiredArgs = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// options holds parsed command line settings.
type options struct {
	bands      int
	speed      spectrum.DetectionSpeed
	durationMs int
	block      int
	intervalMs int
	reference  bool
	verbose    bool
	cpuprofile string
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	fs := flag.NewFlagSet("spectrum-wav", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	speed := fs.String("speed", "medium", "Detection speed: low, medium, high")
	fs.IntVar(&opts.bands, "bands", spectrum.DefaultBands, "Number of evenly spaced bands")
	fs.IntVar(&opts.durationMs, "duration", spectrum.DefaultBufferDuration, "History length in ms")
	fs.IntVar(&opts.block, "block", spectrum.DefaultBlockSize, "Largest block handed to the analyzer")
	fs.IntVar(&opts.intervalMs, "interval", defaultInterval, "Time between printed frames in ms")
	fs.BoolVar(&opts.reference, "reference", false, "Print the loudest band of an FFT reference per frame")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
	fs.StringVar(&opts.cpuprofile, "cpuprofile", "", "Write CPU profile to file")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: spectrum-wav [options] input\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	var err error
	if opts.speed, err = spectrum.ParseDetectionSpeed(*speed); err != nil {
		return nil, nil, err
	}
	if opts.intervalMs <= 0 {
		return nil, nil, fmt.Errorf("interval must be positive, got %d", opts.intervalMs)
	}
	if opts.durationMs <= 0 || opts.durationMs > spectrum.MaxBufferDuration {
		return nil, nil, fmt.Errorf("duration %d outside (0, %d]", opts.durationMs, spectrum.MaxBufferDuration)
	}
	if opts.block <= 0 || opts.block > spectrum.MaxInputBlockSize {
		return nil, nil, fmt.Errorf("block %d outside (0, %d]", opts.block, spectrum.MaxInputBlockSize)
	}
	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return nil, nil, errors.New("insufficient arguments")
	}
	return opts, fs.Args(), nil
}

func run() error {
	opts, args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	src, err := audiofile.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if opts.verbose {
		log.Printf("Input: %s", args[0])
		log.Printf("Format: %d Hz, %d channels", src.SampleRate(), src.Channels())
		log.Printf("Bands: %d, speed: %s, history: %d ms", opts.bands, opts.speed, opts.durationMs)
	}

	a, err := newAnalyzer(src.SampleRate(), opts)
	if err != nil {
		return err
	}

	frames, err := analyze(src, a, opts, os.Stdout)
	if opts.verbose {
		log.Printf("Printed %d frames", frames)
	}
	return err
}

func newAnalyzer(hz int, opts *options) (*spectrum.Analyzer, error) {
	rate, err := spectrum.SampleRateFromHz(hz)
	if err != nil {
		return nil, err
	}
	p := &spectrum.InitParams{
		BufferDurationMs: uint16(opts.durationMs),
		MaxBlockSize:     uint16(opts.block),
		Bands:            spectrum.UniformBands(opts.bands),
	}
	return spectrum.New(p, &spectrum.ControlParams{Rate: rate, Speed: opts.speed})
}

// analyze streams src through a and writes one frame per interval to w. It
// returns the number of frames written.
func analyze(src audiofile.Source, a *spectrum.Analyzer, opts *options, w io.Writer) (int, error) {
	var (
		ref        *reference.Analyzer
		refCenters []float64
		tail       []int16
	)
	centers := a.BandCenters()
	if opts.reference {
		var err error
		if ref, err = reference.New(referenceFFTSize, src.SampleRate()); err != nil {
			return 0, err
		}
		for _, c := range centers[:a.RelevantBands()] {
			refCenters = append(refCenters, float64(c))
		}
	}

	stream := spectrum.NewStreamer(a, 0)
	buf := make([]int16, readChunk)
	next := int32(opts.intervalMs)
	frames := 0

	emit := func() error {
		for a.LastWriteTime() >= next {
			f := newFrame(a.Spectrum(next), centers)
			if ref != nil && len(tail) >= ref.Size() {
				e, err := ref.NearestEnergies(tail, refCenters)
				if err != nil {
					return err
				}
				f.refBand = reference.Loudest(e)
			}
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
			frames++
			next += int32(opts.intervalMs)
		}
		return nil
	}

	for {
		n, rerr := src.ReadMono(buf)
		if n > 0 {
			if err := stream.Write(buf[:n]); err != nil {
				return frames, err
			}
			if ref != nil {
				tail = append(tail, buf[:n]...)
				if len(tail) > referenceFFTSize {
					tail = append(tail[:0], tail[len(tail)-referenceFFTSize:]...)
				}
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return frames, rerr
		}
		if err := emit(); err != nil {
			return frames, err
		}
	}

	if err := stream.Flush(); err != nil {
		return frames, err
	}
	return frames, emit()
}
