package spectrum

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tphakala/go-audio-spectrum/internal/arena"
	"github.com/tphakala/go-audio-spectrum/internal/biquad"
)

// Common errors returned by the analyzer.
var (
	// ErrNullAddress indicates a missing argument or an unbacked memory region.
	ErrNullAddress = errors.New("null address")

	// ErrInvalidParameter indicates a value outside its documented bounds.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrWrongTime is reserved for rejected time queries. GetSpectrum reports
	// such queries as silent bands instead.
	ErrWrongTime = errors.New("wrong audio time")
)

// Analyzer splits a mono PCM stream into bands and keeps a timestamped
// history of per-band levels.
//
// Process and GetSpectrum may run on different goroutines: one writer
// feeding audio, one reader polling levels. Both hold the analyzer lock for
// the duration of the call.
type Analyzer struct {
	mu sync.Mutex

	memory MemoryTable

	bufferDurationMs uint16
	maxBlockSize     int
	spacing          BandSpacing
	nBands           int
	historyLen       int // slots

	// Members carved from the caller's regions.
	history      []uint8
	callerBands  []FilterParams
	bands        []FilterParams // working copy, centres follow the rate
	postGain     []uint16
	peaks        []uint8
	precision    []Precision
	bandPass     []biquad.Instance
	qpd          []qpdCoefs
	bandPassTaps []biquad.Taps
	qpdTaps      []int32
	scratch      []int16

	current    ControlParams
	pending    ControlParams
	hasPending bool
	relevant   int

	downSampling      int32 // input samples per QPD step
	downSamplingCount int32 // offset of the next QPD step in the next block
	samplesPerSlot    int32
	slotCount         int32 // samples accumulated towards the next slot

	writeOff  int   // next slot to write, in bytes
	writeTime int32 // audio time of the newest slot

	lastQuery    int32
	hasLastQuery bool
}

// Init builds an analyzer inside the regions of mem, which must be at least
// as large as MemoryRequirements reports for p. The initial control
// parameters are applied at once.
func Init(p *InitParams, c *ControlParams, mem *MemoryTable) (*Analyzer, error) {
	if p == nil || c == nil || mem == nil {
		return nil, fmt.Errorf("%w: init arguments", ErrNullAddress)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	need := sizeRegions(p)
	for i := range mem.Regions {
		r := mem.Regions[i]
		want := need.Regions[i].Size
		if want == 0 {
			continue
		}
		if r.Base == nil {
			return nil, fmt.Errorf("%w: %s region has no base", ErrNullAddress, Region(i))
		}
		if uint32(len(r.Base)) < want {
			return nil, fmt.Errorf("%w: %s region holds %d bytes, needs %d",
				ErrInvalidParameter, Region(i), len(r.Base), want)
		}
	}

	a := &Analyzer{
		memory:           *mem,
		bufferDurationMs: p.BufferDurationMs,
		maxBlockSize:     int(p.MaxBlockSize),
		spacing:          p.Spacing,
		nBands:           len(p.Bands),
		historyLen:       p.historyLength(),
		current:          ControlParams{Rate: rateUnset, Speed: speedUnset},
	}

	var cursors [NumRegions]arena.Cursor
	for i := range cursors {
		cursors[i].Init(mem.Regions[i].Base)
	}
	runLayout(a, &cursors, dimsOf(p))
	for i := range cursors {
		if cursors[i].Overflowed() {
			return nil, fmt.Errorf("%w: %s region too small", ErrInvalidParameter, Region(i))
		}
	}

	copy(a.callerBands, p.Bands)
	copy(a.bands, p.Bands)
	for i, b := range p.Bands {
		a.postGain[i] = gainTable[int(b.PostGainDB)-MinPostGain]
	}

	if err := a.SetControl(c); err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.applyPending()
	a.mu.Unlock()

	return a, nil
}

// New sizes and allocates the regions on the Go heap, then calls Init.
func New(p *InitParams, c *ControlParams) (*Analyzer, error) {
	mem, err := MemoryRequirements(nil, p)
	if err != nil {
		return nil, err
	}
	mem.AllocateRegions()
	return Init(p, c, &mem)
}

// Memory returns the region table the analyzer was initialized with.
func (a *Analyzer) Memory() MemoryTable {
	return a.memory
}

// InitParams returns a copy of the parameters passed to Init.
func (a *Analyzer) InitParams() InitParams {
	bands := make([]FilterParams, a.nBands)
	copy(bands, a.callerBands)
	return InitParams{
		BufferDurationMs: a.bufferDurationMs,
		MaxBlockSize:     uint16(a.maxBlockSize),
		Bands:            bands,
		Spacing:          a.spacing,
	}
}

// ControlParams returns the most recently accepted control parameters,
// applied or not.
func (a *Analyzer) ControlParams() ControlParams {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.hasPending {
		return a.pending
	}
	return a.current
}

// NumBands returns the configured band count.
func (a *Analyzer) NumBands() int { return a.nBands }

// HistoryLength returns the number of 20 ms slots kept per band.
func (a *Analyzer) HistoryLength() int { return a.historyLen }
