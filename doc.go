// Package spectrum provides a real-time, fixed-point audio spectrum analyzer
// in pure Go.
//
// The analyzer splits a mono 16-bit PCM stream into up to 30 band-pass
// filtered bands, follows each band with a quasi-peak detector, and records
// one 8-bit level per band every 20 ms into a circular history indexed by
// audio time. A metering thread reads the history back with peak hold.
//
// # Features
//
//   - Integer arithmetic throughout the signal path, bit-exact across platforms
//   - Two filter precisions, picked per band: Q14 for most bands, Q30 with
//     a cosine error polynomial for bands close to DC
//   - Low, medium and high detector ballistics, switchable while running
//   - Nine sample rates from 8 kHz to 48 kHz
//   - Caller-provided memory: size once, allocate, initialize, then no
//     allocations on the audio path
//   - Audio time arithmetic that survives int32 wraparound
//
// # Quick Start
//
// With heap-allocated memory:
//
//	a, err := spectrum.New(spectrum.DefaultInitParams(), &spectrum.ControlParams{
//	    Rate:  spectrum.Rate44100,
//	    Speed: spectrum.SpeedMedium,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Audio goroutine
//	if err := a.Process(block, audioTimeMs); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Metering goroutine
//	levels := make([]uint8, a.NumBands())
//	peaks := make([]uint8, a.NumBands())
//	_ = a.GetSpectrum(playbackTimeMs, levels, peaks)
//
// With host-managed memory, query the region sizes first:
//
//	mem, err := spectrum.MemoryRequirements(nil, params)
//	// allocate mem.Regions[i].Base with at least mem.Regions[i].Size bytes
//	a, err := spectrum.Init(params, control, &mem)
//
// # Streaming
//
// [Streamer] accepts writes of any length, cuts them into blocks of at most
// MaxBlockSize and stamps each block with an [AudioClock]. A meter that wants
// the most recent levels queries [Analyzer.LastWriteTime].
//
// # Band Layout
//
// With [SpacingLinear] (the default) the band centres are recomputed on every
// sample rate change as multiples of Nyquist/(bands+1). With [SpacingCaller]
// the configured centres are kept and bands at or above Nyquist are skipped.
//
// # Time Queries
//
// [Analyzer.GetSpectrum] rounds the distance between the query time and the
// newest slot up to whole 20 ms slots. Queries ahead of the newest slot or
// older than the history return zero levels and peaks rather than an error.
//
// # Thread Safety
//
// One goroutine may call [Analyzer.Process] while another calls
// [Analyzer.GetSpectrum]; both serialize on the analyzer lock. Process calls
// themselves must come from a single producer so blocks stay in order.
package spectrum
