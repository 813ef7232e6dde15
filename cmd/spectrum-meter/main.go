// Command spectrum-meter plays an audio file into the analyzer in real time
// and draws the band levels in the terminal.
//
// Usage:
//
//	spectrum-meter input.wav
//	spectrum-meter -bands 24 -speed high -latency 60 input.flac
//
// Space pauses, q quits. Nothing is sent to an audio device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	spectrum "github.com/tphakala/go-audio-spectrum"
	"github.com/tphakala/go-audio-spectrum/internal/audiofile"
)

const (
	defaultBands   = 20
	defaultRows    = 12
	defaultPeriod  = 10 * time.Millisecond
	defaultLatency = 0
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	bands := flag.Int("bands", defaultBands, "Number of evenly spaced bands")
	speedName := flag.String("speed", "medium", "Detection speed: low, medium, high")
	duration := flag.Int("duration", spectrum.DefaultBufferDuration, "History length in ms")
	latency := flag.Int("latency", defaultLatency, "Read the spectrum this many ms behind the newest write")
	rows := flag.Int("rows", defaultRows, "Bar height in terminal rows")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}
	if *latency < 0 || *latency > *duration {
		return fmt.Errorf("latency %d outside [0, %d]", *latency, *duration)
	}
	speed, err := spectrum.ParseDetectionSpeed(*speedName)
	if err != nil {
		return err
	}

	path := flag.Arg(0)
	src, err := audiofile.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	rate, err := spectrum.SampleRateFromHz(src.SampleRate())
	if err != nil {
		return err
	}
	block := min(src.SampleRate()*int(defaultPeriod)/int(time.Second), spectrum.MaxInputBlockSize)
	a, err := spectrum.New(&spectrum.InitParams{
		BufferDurationMs: uint16(*duration),
		MaxBlockSize:     uint16(block),
		Bands:            spectrum.UniformBands(*bands),
	}, &spectrum.ControlParams{Rate: rate, Speed: speed})
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("Input: %s (%d Hz, %d channels)", path, src.SampleRate(), src.Channels())
		log.Printf("Bands: %v", a.BandCenters())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feed := newFeeder(src, a, defaultPeriod)
	go feed.run(ctx)

	m := newModel(filepath.Base(path), a, feed, *latency, *rows)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	cancel()
	<-feed.Done()
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
