// SPDX-License-Identifier: EPL-2.0

package au

import "testing"

func TestULaw_KnownValues(t *testing.T) {
	t.Parallel()

	if got := ulawEncode(0); got != 0xff {
		t.Errorf("ulawEncode(0) = %#x, want 0xff", got)
	}
	if got := ulawDecode(0xff); got != 0 {
		t.Errorf("ulawDecode(0xff) = %d, want 0", got)
	}
	// Sign symmetry.
	for _, v := range []int16{1, 100, 1000, 8000, 32000} {
		pos, neg := ulawDecode(ulawEncode(v)), ulawDecode(ulawEncode(-v))
		if pos != -neg {
			t.Errorf("u-law asymmetric at %d: +%d vs %d", v, pos, neg)
		}
	}
}

func TestULaw_CodeInvolution(t *testing.T) {
	t.Parallel()

	// Decoding any code and re-encoding must give the code back. 0x7f is
	// negative zero, which re-encodes as positive zero 0xff.
	for c := 0; c < 256; c++ {
		want := uint8(c)
		if want == 0x7f {
			want = 0xff
		}
		if got := ulawEncode(ulawDecode(uint8(c))); got != want {
			t.Errorf("ulawEncode(ulawDecode(%#x)) = %#x, want %#x", c, got, want)
		}
	}
}

func TestULaw_MonotoneQuantization(t *testing.T) {
	t.Parallel()

	prev := ulawDecode(ulawEncode(-32768))
	for v := -32768 + 64; v <= 32767-63; v += 64 {
		cur := ulawDecode(ulawEncode(int16(v)))
		if cur < prev {
			t.Fatalf("u-law not monotone at %d: %d < %d", v, cur, prev)
		}
		prev = cur
	}
}

func TestALaw_CodeInvolution(t *testing.T) {
	t.Parallel()

	for c := 0; c < 256; c++ {
		if got := alawEncode(alawDecode(uint8(c))); got != uint8(c) {
			t.Errorf("alawEncode(alawDecode(%#x)) = %#x, want %#x", c, got, c)
		}
	}
}

func TestALaw_QuantizationError(t *testing.T) {
	t.Parallel()

	// A-law error is bounded by half the segment step: 2^(exp+4) at most.
	for v := -32256; v <= 32256; v += 17 {
		got := int32(alawDecode(alawEncode(int16(v))))
		d := got - int32(v)
		if d < 0 {
			d = -d
		}
		if d > 1024 {
			t.Fatalf("a-law error %d at input %d (decoded %d)", d, v, got)
		}
	}
}
