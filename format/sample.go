// SPDX-License-Identifier: EPL-2.0

package format

// Conversions between Sample (left-justified signed 32-bit) and the
// narrower representations handlers store on disk. Unsigned variants flip
// the sign bit so the midpoint of the unsigned range maps to zero.

const sampleMax = 1<<31 - 1

func SampleFromInt8(v int8) Sample   { return Sample(v) << 24 }
func SampleFromInt16(v int16) Sample { return Sample(v) << 16 }
func SampleFromInt32(v int32) Sample { return Sample(v) }

// SampleFromInt24 expects a sign-extended 24-bit value.
func SampleFromInt24(v int32) Sample { return Sample(v) << 8 }

func SampleFromUint8(v uint8) Sample   { return SampleFromInt8(int8(v ^ 0x80)) }
func SampleFromUint16(v uint16) Sample { return SampleFromInt16(int16(v ^ 0x8000)) }
func SampleFromUint32(v uint32) Sample { return SampleFromInt32(int32(v ^ 0x80000000)) }

// SampleFromUint24 expects an unsigned value in the low 24 bits.
func SampleFromUint24(v uint32) Sample {
	return SampleFromInt24(signExtend24(v ^ 0x800000))
}

func SampleToInt8(s Sample) int8   { return int8(s >> 24) }
func SampleToInt16(s Sample) int16 { return int16(s >> 16) }
func SampleToInt24(s Sample) int32 { return int32(s >> 8) }
func SampleToInt32(s Sample) int32 { return int32(s) }

func SampleToUint8(s Sample) uint8   { return uint8(SampleToInt8(s)) ^ 0x80 }
func SampleToUint16(s Sample) uint16 { return uint16(SampleToInt16(s)) ^ 0x8000 }
func SampleToUint24(s Sample) uint32 { return uint32(SampleToInt24(s))&0xffffff ^ 0x800000 }
func SampleToUint32(s Sample) uint32 { return uint32(SampleToInt32(s)) ^ 0x80000000 }

// SampleFromFloat64 converts a sample in [-1, 1), clipping out-of-range
// input.
func SampleFromFloat64(v float64) Sample {
	v *= float64(sampleMax) + 1
	if v >= float64(sampleMax) {
		return sampleMax
	}
	if v < -float64(sampleMax)-1 {
		return -sampleMax - 1
	}
	return Sample(v)
}

// SampleToFloat64 converts a sample to the range [-1, 1).
func SampleToFloat64(s Sample) float64 {
	return float64(s) / (float64(sampleMax) + 1)
}

func signExtend24(v uint32) int32 {
	return int32(v<<8) >> 8
}
