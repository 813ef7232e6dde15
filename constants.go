package spectrum

// Band configuration limits
const (
	MinBands           = 1
	MaxBands           = 30
	MaxBufferDuration  = 4000  // ms
	MaxInputBlockSize  = 5000  // samples
	MaxCenterFrequency = 20000 // Hz
	MinPostGain        = -15   // dB
	MaxPostGain        = 15    // dB
	MinQFactor         = 25    // Q x 100
	MaxQFactor         = 1200  // Q x 100

	postGainSteps = MaxPostGain - MinPostGain + 1
)

// History timing
const (
	// RefreshPeriod is the audio time covered by one history slot, in ms.
	RefreshPeriod = 20

	refreshPeriodInv      = 0x0666 // 1/20 in Q15
	refreshPeriodInvShift = 15
	msPerSecond           = 1000
)

// Fixed-point formats
const (
	fsInvShift   = 31 // sampleRateInv
	gainShift    = 11 // gainTable
	freqShift    = 25 // twoPiOnFs
	qpdInShift   = gainShift - 1
	qpdOutShift  = 7 // 15-bit envelope to 8-bit level
	qpdCoefShift = 31
	maxLevel     = 0x7FFF
	maxByte      = 0xFF
)

// Peak-hold decay: 255-peak grows by 0x4111/2^14 per query.
const (
	peakDecayFactor = 0x4111
	peakDecayShift  = 14
)

// Precision selection thresholds as divisors of the sample rate.
const (
	lowFreqDivisor  = 110 // double precision up to Fs/110
	highFreqDivisor = 85  // double precision below Fs/85 for high Q
	highQ           = 300
)

// Coefficient derivation constants
const (
	bandwidthScale  = 3200   // 100 * 2^5, pairs with Q x 100
	singleAngleGain = 20859  // 1/pi in Q16
	doubleAngleGain = 0x7F53 // 25/(16*pi) in Q16
	unityQ30        = 0x40000000
	polyUnity       = 0x7FFF
	polyTermShift   = 5
	polyStepShift   = 15
	cosOutShift     = 6
)

// Input conditioning shift applied before filtering.
const inputShift = -1

// Default configuration used by the effect bundle front-end.
const (
	DefaultBufferDuration = 500
	DefaultBlockSize      = 2048
	DefaultBands          = 15
	DefaultCenterFreq     = 1000
	DefaultQFactor        = 100
)
