package spectrum

import "fmt"

// SampleRate enumerates the supported input sample rates.
type SampleRate uint8

// Supported sample rates.
const (
	Rate8000 SampleRate = iota
	Rate11025
	Rate12000
	Rate16000
	Rate22050
	Rate24000
	Rate32000
	Rate44100
	Rate48000

	numSampleRates = iota

	// rateUnset marks an analyzer that has not applied any rate yet.
	rateUnset SampleRate = 0xFF
)

// Valid reports whether r is one of the supported rates.
func (r SampleRate) Valid() bool { return r < numSampleRates }

// Hz returns the rate in hertz, or 0 for an invalid value.
func (r SampleRate) Hz() int {
	if !r.Valid() {
		return 0
	}
	return int(sampleRateHz[r])
}

func (r SampleRate) String() string {
	if !r.Valid() {
		return fmt.Sprintf("SampleRate(%d)", uint8(r))
	}
	return fmt.Sprintf("%d Hz", sampleRateHz[r])
}

// SampleRateFromHz maps a rate in hertz onto the enumeration.
func SampleRateFromHz(hz int) (SampleRate, error) {
	for i, v := range sampleRateHz {
		if int(v) == hz {
			return SampleRate(i), nil
		}
	}
	return rateUnset, fmt.Errorf("%w: unsupported sample rate %d Hz", ErrInvalidParameter, hz)
}

// DetectionSpeed selects the ballistics of the quasi-peak detectors.
type DetectionSpeed uint8

// Detection speeds.
const (
	SpeedLow DetectionSpeed = iota
	SpeedMedium
	SpeedHigh

	numSpeeds                 = iota
	speedUnset DetectionSpeed = 0xFF
)

var speedNames = [numSpeeds]string{"low", "medium", "high"}

// Valid reports whether s is a defined speed.
func (s DetectionSpeed) Valid() bool { return s < numSpeeds }

func (s DetectionSpeed) String() string {
	if !s.Valid() {
		return fmt.Sprintf("DetectionSpeed(%d)", uint8(s))
	}
	return speedNames[s]
}

// ParseDetectionSpeed accepts "low", "medium" or "high".
func ParseDetectionSpeed(name string) (DetectionSpeed, error) {
	for i, n := range speedNames {
		if n == name {
			return DetectionSpeed(i), nil
		}
	}
	return speedUnset, fmt.Errorf("%w: unknown detection speed %q", ErrInvalidParameter, name)
}

// Precision tags the arithmetic used by one band-pass filter.
type Precision uint8

// Filter precisions.
const (
	PrecisionSingle Precision = iota // Q14 coefficients, 16-bit feedback
	PrecisionDouble                  // Q30 coefficients, Q16 feedback
)

func (p Precision) String() string {
	if p == PrecisionDouble {
		return "double"
	}
	return "single"
}

var sampleRateHz = [numSampleRates]uint16{
	8000, 11025, 12000, 16000, 22050, 24000, 32000, 44100, 48000,
}

// twoPiOnFs is 2*pi/Fs in Q25 (FreqShift).
var twoPiOnFs = [numSampleRates]int32{
	26354, 19123, 17569, 13177, 9561, 8785, 6588, 4781, 4392,
}

// sampleRateInv is 1/Fs in Q31.
var sampleRateInv = [numSampleRates]int32{
	268435, 194783, 178957, 134218, 97391, 89478, 67109, 48696, 44739,
}

// samplesPerRefresh is the number of input samples in one 20 ms history slot.
// 11025 Hz alternates between this value and the next one.
var samplesPerRefresh = [numSampleRates]int32{
	160, 220, 240, 320, 441, 480, 640, 882, 960,
}

// downSamplingFactor is the QPD decimation per rate.
var downSamplingFactor = [numSampleRates]int32{
	5, 7, 8, 10, 15, 16, 21, 30, 32,
}

// gainTable converts post gains from -15 to +15 dB into Q11 linear gains.
var gainTable = [postGainSteps]uint16{
	364, 408, 458, 514, 577, 647, 726, 815, 914, 1026, 1151, 1292, 1450,
	1627, 1825, 2048, 2298, 2579, 2893, 3246, 3642, 4086, 4585, 5144,
	5772, 6476, 7267, 8153, 9148, 10264, 11517,
}

// cosCoef approximates cos(x) on [0, pi]. The first entry is the output shift.
var cosCoef = [...]int32{3, 4096, -36, -19725, -2671, 23730, -9490}

// dpCosCoef approximates cos(x)-1 on [0, pi/25]. The first entry is the
// output shift.
var dpCosCoef = [...]int32{1, 0, -6, 16586, -44}

type qpdCoefs struct {
	Kp int32 // weight of the signed deviation, Q31
	Km int32 // weight of half the absolute deviation, Q31
}

var qpdTable = [numSpeeds][numSampleRates]qpdCoefs{
	SpeedLow: {
		{Kp: -0x7F3102D5, Km: 0x00CB9B17}, // 8000 Hz
		{Kp: -0x7F2DBD19, Km: 0x00CED11D}, // 11025 Hz
		{Kp: -0x7F23450B, Km: 0x00D91679}, // 12000 Hz
		{Kp: -0x7F3102D5, Km: 0x00CB9B17}, // 16000 Hz
		{Kp: -0x7F1EC8C7, Km: 0x00DD7CD3}, // 22050 Hz
		{Kp: -0x7F23450B, Km: 0x00D91679}, // 24000 Hz
		{Kp: -0x7F26B451, Km: 0x00D5B7E7}, // 32000 Hz
		{Kp: -0x7F1EC8C7, Km: 0x00DD7CD3}, // 44100 Hz
		{Kp: -0x7F23450B, Km: 0x00D91679}, // 48000 Hz
	},
	SpeedMedium: {
		{Kp: -0x7A78AEC3, Km: 0x055C22CF},
		{Kp: -0x7A62D699, Km: 0x0570F007},
		{Kp: -0x7A1D1054, Km: 0x05B34D79},
		{Kp: -0x7A78AEC3, Km: 0x055C22CF},
		{Kp: -0x79FF3847, Km: 0x05CFA6CF},
		{Kp: -0x7A1D1054, Km: 0x05B34D79},
		{Kp: -0x7A33EFE8, Km: 0x059D8F69},
		{Kp: -0x79FF3847, Km: 0x05CFA6CF},
		{Kp: -0x7A1D1054, Km: 0x05B34D79},
	},
	SpeedHigh: {
		{Kp: -0x5EEA1586, Km: 0x1CDB3F5C},
		{Kp: -0x5E7B8A10, Km: 0x1D2C83A2},
		{Kp: -0x5D1E16B0, Km: 0x1E2A532E},
		{Kp: -0x5EEA1586, Km: 0x1CDB3F5C},
		{Kp: -0x5C8A4D3A, Km: 0x1E943BBC},
		{Kp: -0x5D1E16B0, Km: 0x1E2A532E},
		{Kp: -0x5D900943, Km: 0x1DD81530},
		{Kp: -0x5C8A4D3A, Km: 0x1E943BBC},
		{Kp: -0x5D1E16B0, Km: 0x1E2A532E},
	},
}
