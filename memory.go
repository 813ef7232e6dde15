package spectrum

import (
	"fmt"

	"github.com/tphakala/go-audio-spectrum/internal/arena"
	"github.com/tphakala/go-audio-spectrum/internal/biquad"
)

// Region identifies one of the memory areas an analyzer lives in.
type Region uint8

// Memory regions, in table order.
const (
	RegionInstance Region = iota
	RegionPersistentCoef
	RegionPersistentData
	RegionScratch

	NumRegions = iota
)

// MemoryKind describes how a region is used, so the host can place it.
type MemoryKind uint8

// Memory kinds.
const (
	PersistentSlow MemoryKind = iota
	PersistentFastData
	PersistentFastCoef
	TemporaryFast
)

func (k MemoryKind) String() string {
	switch k {
	case PersistentSlow:
		return "persistent-slow"
	case PersistentFastData:
		return "persistent-fast-data"
	case PersistentFastCoef:
		return "persistent-fast-coef"
	case TemporaryFast:
		return "temporary-fast"
	default:
		return fmt.Sprintf("MemoryKind(%d)", uint8(k))
	}
}

var regionKinds = [NumRegions]MemoryKind{
	RegionInstance:       PersistentSlow,
	RegionPersistentCoef: PersistentFastCoef,
	RegionPersistentData: PersistentFastData,
	RegionScratch:        TemporaryFast,
}

func (r Region) String() string {
	switch r {
	case RegionInstance:
		return "instance"
	case RegionPersistentCoef:
		return "persistent-coef"
	case RegionPersistentData:
		return "persistent-data"
	case RegionScratch:
		return "scratch"
	default:
		return fmt.Sprintf("Region(%d)", uint8(r))
	}
}

// MemoryRegion is one entry of a MemoryTable. Base is nil in a sizing result.
type MemoryRegion struct {
	Size uint32
	Kind MemoryKind
	Base []byte
}

// MemoryTable lists the regions an analyzer needs, indexed by Region.
type MemoryTable struct {
	Regions [NumRegions]MemoryRegion
}

// AllocateRegions gives every non-empty region a zeroed backing slice of
// exactly its size.
func (m *MemoryTable) AllocateRegions() {
	for i := range m.Regions {
		r := &m.Regions[i]
		if r.Size > 0 {
			r.Base = make([]byte, r.Size)
		}
	}
}

// TotalSize is the sum of all region sizes.
func (m *MemoryTable) TotalSize() uint32 {
	var total uint32
	for _, r := range m.Regions {
		total += r.Size
	}
	return total
}

// dims are the size parameters of a layout pass.
type dims struct {
	bands int
	slots int
	block int
}

// layout is the single description of every member carved out of the
// regions. Sizing and initialization both walk it in order.
var layout = []struct {
	region Region
	carve  func(a *Analyzer, c *arena.Cursor, d dims)
}{
	{RegionInstance, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.history = arena.Slice[uint8](c, d.bands*d.slots)
	}},
	{RegionInstance, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.callerBands = arena.Slice[FilterParams](c, d.bands)
	}},
	{RegionInstance, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.bands = arena.Slice[FilterParams](c, d.bands)
	}},
	{RegionInstance, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.postGain = arena.Slice[uint16](c, d.bands)
	}},
	{RegionInstance, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.peaks = arena.Slice[uint8](c, d.bands)
	}},
	{RegionInstance, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.precision = arena.Slice[Precision](c, d.bands)
	}},
	{RegionPersistentCoef, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.bandPass = arena.Slice[biquad.Instance](c, d.bands)
	}},
	{RegionPersistentCoef, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.qpd = arena.Slice[qpdCoefs](c, d.bands)
	}},
	{RegionPersistentData, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.bandPassTaps = arena.Slice[biquad.Taps](c, d.bands)
	}},
	{RegionPersistentData, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.qpdTaps = arena.Slice[int32](c, d.bands)
	}},
	{RegionScratch, func(a *Analyzer, c *arena.Cursor, d dims) {
		a.scratch = arena.Slice[int16](c, 2*d.block)
	}},
}

// runLayout walks the layout over one cursor per region. With nil bases the
// pass only measures.
func runLayout(a *Analyzer, cursors *[NumRegions]arena.Cursor, d dims) {
	for _, m := range layout {
		m.carve(a, &cursors[m.region], d)
	}
}

func dimsOf(p *InitParams) dims {
	return dims{
		bands: len(p.Bands),
		slots: p.historyLength(),
		block: int(p.MaxBlockSize),
	}
}

// sizeRegions measures the regions p needs.
func sizeRegions(p *InitParams) MemoryTable {
	var cursors [NumRegions]arena.Cursor
	for i := range cursors {
		cursors[i].Init(nil)
	}
	runLayout(&Analyzer{}, &cursors, dimsOf(p))

	var table MemoryTable
	for i := range table.Regions {
		table.Regions[i] = MemoryRegion{
			Size: cursors[i].Total(),
			Kind: regionKinds[i],
		}
	}
	return table
}

// MemoryRequirements reports memory for an analyzer. With a nil analyzer it
// validates p and returns the size of every region, with nil bases. With a
// live analyzer it returns the table the analyzer was initialized with and
// ignores p.
func MemoryRequirements(a *Analyzer, p *InitParams) (MemoryTable, error) {
	if a != nil {
		return a.Memory(), nil
	}
	if p == nil {
		return MemoryTable{}, fmt.Errorf("%w: init params", ErrNullAddress)
	}
	if err := p.Validate(); err != nil {
		return MemoryTable{}, err
	}
	return sizeRegions(p), nil
}
