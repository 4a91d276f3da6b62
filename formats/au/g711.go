// SPDX-License-Identifier: EPL-2.0

package au

// G.711 companding. Both laws map 16-bit linear PCM onto 8 bits with a
// logarithmic segment layout: a sign bit, a 3-bit segment and a 4-bit
// mantissa. µ-law stores the code ones-complemented, A-law inverts the
// even bits.

const (
	ulawBias = 0x84
	ulawClip = 32635
	alawClip = 32635
)

func ulawEncode(pcm int16) uint8 {
	v := int32(pcm)
	sign := uint8(0)
	if v < 0 {
		v = -v
		sign = 0x80
	}
	if v > ulawClip {
		v = ulawClip
	}
	v += ulawBias
	exp := uint8(7)
	for mask := int32(0x4000); v&mask == 0 && exp > 0; mask >>= 1 {
		exp--
	}
	mant := uint8(v>>(exp+3)) & 0x0f
	return ^(sign | exp<<4 | mant)
}

func ulawDecode(u uint8) int16 {
	u = ^u
	exp := (u >> 4) & 7
	mant := int32(u & 0x0f)
	v := (mant<<3+ulawBias)<<exp - ulawBias
	if u&0x80 != 0 {
		v = -v
	}
	return int16(v)
}

func alawEncode(pcm int16) uint8 {
	v := int32(pcm)
	sign := uint8(0x80)
	if v < 0 {
		v = -v
		sign = 0
	}
	if v > alawClip {
		v = alawClip
	}
	var a uint8
	if v >= 256 {
		exp := uint8(7)
		for mask := int32(0x4000); v&mask == 0 && exp > 1; mask >>= 1 {
			exp--
		}
		a = exp<<4 | uint8(v>>(exp+3))&0x0f
	} else {
		a = uint8(v >> 4)
	}
	return (a | sign) ^ 0x55
}

func alawDecode(a uint8) int16 {
	a ^= 0x55
	exp := (a >> 4) & 7
	mant := int32(a & 0x0f)
	var v int32
	if exp == 0 {
		v = mant<<4 + 8
	} else {
		v = (mant<<4 + 0x108) << (exp - 1)
	}
	if a&0x80 == 0 {
		v = -v
	}
	return int16(v)
}
