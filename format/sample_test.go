// SPDX-License-Identifier: EPL-2.0

package format

import (
	"math"
	"testing"
)

func TestSample_SignedRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []int16{math.MinInt16, -1, 0, 1, math.MaxInt16} {
		if got := SampleToInt16(SampleFromInt16(v)); got != v {
			t.Errorf("int16 round trip of %d = %d", v, got)
		}
	}
	if SampleFromInt16(math.MinInt16) != math.MinInt32 {
		t.Errorf("SampleFromInt16(min) = %d, want MinInt32", SampleFromInt16(math.MinInt16))
	}
	if SampleFromInt8(-1) != -1<<24 {
		t.Errorf("SampleFromInt8(-1) = %d, want %d", SampleFromInt8(-1), -1<<24)
	}
}

func TestSample_UnsignedMidpointIsZero(t *testing.T) {
	t.Parallel()

	if SampleFromUint8(0x80) != 0 {
		t.Errorf("SampleFromUint8(0x80) = %d, want 0", SampleFromUint8(0x80))
	}
	if SampleFromUint16(0x8000) != 0 {
		t.Errorf("SampleFromUint16(0x8000) = %d, want 0", SampleFromUint16(0x8000))
	}
	if SampleFromUint24(0x800000) != 0 {
		t.Errorf("SampleFromUint24(0x800000) = %d, want 0", SampleFromUint24(0x800000))
	}
	if SampleFromUint32(0x80000000) != 0 {
		t.Errorf("SampleFromUint32(0x80000000) = %d, want 0", SampleFromUint32(0x80000000))
	}

	for v := 0; v < 256; v++ {
		if got := SampleToUint8(SampleFromUint8(uint8(v))); got != uint8(v) {
			t.Fatalf("uint8 round trip of %d = %d", v, got)
		}
	}
	for _, v := range []uint32{0, 1, 0x7fffff, 0x800000, 0xffffff} {
		if got := SampleToUint24(SampleFromUint24(v)); got != v {
			t.Errorf("uint24 round trip of %#x = %#x", v, got)
		}
	}
}

func TestSampleFromFloat64_Clipping(t *testing.T) {
	t.Parallel()

	if got := SampleFromFloat64(1.5); got != sampleMax {
		t.Errorf("SampleFromFloat64(1.5) = %d, want max", got)
	}
	if got := SampleFromFloat64(-2); got != -sampleMax-1 {
		t.Errorf("SampleFromFloat64(-2) = %d, want min", got)
	}
	if got := SampleFromFloat64(0); got != 0 {
		t.Errorf("SampleFromFloat64(0) = %d, want 0", got)
	}
	if got := SampleFromFloat64(-1); got != -sampleMax-1 {
		t.Errorf("SampleFromFloat64(-1) = %d, want min", got)
	}
	// Full-scale float round trip stays within one LSB at 24 bits.
	for _, v := range []float64{0.5, -0.5, 0.123456, -0.999} {
		got := SampleToFloat64(SampleFromFloat64(v))
		if math.Abs(got-v) > 1.0/(1<<30) {
			t.Errorf("float round trip of %v = %v", v, got)
		}
	}
}

func TestPrecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		enc  Encoding
		bits uint
		want uint
	}{
		{EncodingSigned, 16, 16},
		{EncodingSigned, 24, 24},
		{EncodingUnsigned, 8, 8},
		{EncodingSigned, 33, 0},
		{EncodingFloat, 32, 24},
		{EncodingFloat, 64, 53},
		{EncodingFloat, 16, 0},
		{EncodingULaw, 8, 14},
		{EncodingALaw, 8, 13},
		{EncodingULaw, 16, 0},
		{EncodingMP3, 0, 16},
		{EncodingVorbis, 0, 16},
		{EncodingGSM, 16, 0},
		{EncodingMSADPCM, 4, 14},
		{EncodingUnknown, 16, 0},
	}
	for _, tt := range tests {
		if got := Precision(tt.enc, tt.bits); got != tt.want {
			t.Errorf("Precision(%v, %d) = %d, want %d", tt.enc, tt.bits, got, tt.want)
		}
	}
}

func TestEncoding_Lossless(t *testing.T) {
	t.Parallel()

	for _, e := range []Encoding{EncodingSigned, EncodingUnsigned, EncodingFloat, EncodingFLAC} {
		if !e.Lossless() {
			t.Errorf("%v.Lossless() = false, want true", e)
		}
	}
	for _, e := range []Encoding{EncodingUnknown, EncodingULaw, EncodingMP3, EncodingVorbis} {
		if e.Lossless() {
			t.Errorf("%v.Lossless() = true, want false", e)
		}
	}
}
