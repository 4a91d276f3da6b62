// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"fmt"
	"io"

	"github.com/wen501271303/sox/format"
)

// Format returns the handler for headerless PCM data. Raw streams carry no
// self-description, so reading requires the caller to specify at least the
// sample rate and encoding.
func Format() format.Handler {
	return format.Handler{
		Names:      []string{"raw"},
		Extensions: []string{"raw"},
		Version:    format.Version,
		WriteFormats: []format.FormatSpec{
			{Encoding: format.EncodingSigned, Bits: []uint{8, 16, 24, 32}},
			{Encoding: format.EncodingUnsigned, Bits: []uint{8, 16, 24, 32}},
			{Encoding: format.EncodingFloat, Bits: []uint{32, 64}},
		},
		StartRead:  startRead,
		Read:       read,
		StartWrite: startWrite,
		Write:      write,
		Seek:       seek,
	}
}

// priv holds per-stream conversion buffers, grown on demand.
type priv struct {
	u8  []uint8
	u16 []uint16
	u32 []uint32
	f32 []float32
	f64 []float64
}

func getPriv(f *format.Stream, n int) *priv {
	p, _ := f.Priv().(*priv)
	if p == nil {
		p = &priv{}
		f.SetPriv(p)
	}
	p.grow(n)
	return p
}

func (p *priv) grow(n int) {
	if cap(p.u8) < n {
		p.u8 = make([]uint8, n)
		p.u16 = make([]uint16, n)
		p.u32 = make([]uint32, n)
		p.f32 = make([]float32, n)
		p.f64 = make([]float64, n)
	}
}

func startRead(f *format.Stream) error {
	if f.Signal.Rate == 0 {
		return ErrRateRequired
	}
	return checkEncoding(&f.Encoding)
}

func startWrite(f *format.Stream) error {
	return checkEncoding(&f.Encoding)
}

func checkEncoding(enc *format.EncodingInfo) error {
	if enc.Encoding == format.EncodingUnknown {
		return ErrEncodingRequired
	}
	if bytesPerSample(enc) == 0 {
		return fmt.Errorf("%w: %v/%d-bit", ErrUnsupportedEncoding, enc.Encoding, enc.BitsPerSample)
	}
	return nil
}

func bytesPerSample(enc *format.EncodingInfo) int64 {
	switch enc.Encoding {
	case format.EncodingSigned, format.EncodingUnsigned:
		switch enc.BitsPerSample {
		case 8, 16, 24, 32:
			return int64(enc.BitsPerSample / 8)
		}
	case format.EncodingFloat:
		switch enc.BitsPerSample {
		case 32:
			return 4
		case 64:
			return 8
		}
	}
	return 0
}

func read(f *format.Stream, buf []format.Sample) (int, error) {
	p := getPriv(f, len(buf))
	enc := &f.Encoding
	switch {
	case enc.Encoding == format.EncodingFloat && enc.BitsPerSample == 32:
		n, err := f.ReadFloat32Buf(p.f32[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromFloat64(float64(p.f32[i]))
		}
		return n, err
	case enc.Encoding == format.EncodingFloat:
		n, err := f.ReadFloat64Buf(p.f64[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromFloat64(p.f64[i])
		}
		return n, err
	}
	signed := enc.Encoding == format.EncodingSigned
	switch enc.BitsPerSample {
	case 8:
		n, err := f.ReadUint8Buf(p.u8[:len(buf)])
		for i := 0; i < n; i++ {
			if signed {
				buf[i] = format.SampleFromInt8(int8(p.u8[i]))
			} else {
				buf[i] = format.SampleFromUint8(p.u8[i])
			}
		}
		return n, err
	case 16:
		n, err := f.ReadUint16Buf(p.u16[:len(buf)])
		for i := 0; i < n; i++ {
			if signed {
				buf[i] = format.SampleFromInt16(int16(p.u16[i]))
			} else {
				buf[i] = format.SampleFromUint16(p.u16[i])
			}
		}
		return n, err
	case 24:
		n, err := f.ReadUint24Buf(p.u32[:len(buf)])
		for i := 0; i < n; i++ {
			if signed {
				buf[i] = format.SampleFromInt24(int32(p.u32[i]<<8) >> 8)
			} else {
				buf[i] = format.SampleFromUint24(p.u32[i])
			}
		}
		return n, err
	default:
		n, err := f.ReadUint32Buf(p.u32[:len(buf)])
		for i := 0; i < n; i++ {
			if signed {
				buf[i] = format.SampleFromInt32(int32(p.u32[i]))
			} else {
				buf[i] = format.SampleFromUint32(p.u32[i])
			}
		}
		return n, err
	}
}

func write(f *format.Stream, buf []format.Sample) (int, error) {
	p := getPriv(f, len(buf))
	enc := &f.Encoding
	switch {
	case enc.Encoding == format.EncodingFloat && enc.BitsPerSample == 32:
		for i, s := range buf {
			p.f32[i] = float32(format.SampleToFloat64(s))
		}
		return f.WriteFloat32Buf(p.f32[:len(buf)])
	case enc.Encoding == format.EncodingFloat:
		for i, s := range buf {
			p.f64[i] = format.SampleToFloat64(s)
		}
		return f.WriteFloat64Buf(p.f64[:len(buf)])
	}
	signed := enc.Encoding == format.EncodingSigned
	switch enc.BitsPerSample {
	case 8:
		for i, s := range buf {
			if signed {
				p.u8[i] = uint8(format.SampleToInt8(s))
			} else {
				p.u8[i] = format.SampleToUint8(s)
			}
		}
		return f.WriteUint8Buf(p.u8[:len(buf)])
	case 16:
		for i, s := range buf {
			if signed {
				p.u16[i] = uint16(format.SampleToInt16(s))
			} else {
				p.u16[i] = format.SampleToUint16(s)
			}
		}
		return f.WriteUint16Buf(p.u16[:len(buf)])
	case 24:
		for i, s := range buf {
			if signed {
				p.u32[i] = uint32(format.SampleToInt24(s)) & 0xffffff
			} else {
				p.u32[i] = format.SampleToUint24(s)
			}
		}
		return f.WriteUint24Buf(p.u32[:len(buf)])
	default:
		for i, s := range buf {
			if signed {
				p.u32[i] = uint32(format.SampleToInt32(s))
			} else {
				p.u32[i] = format.SampleToUint32(s)
			}
		}
		return f.WriteUint32Buf(p.u32[:len(buf)])
	}
}

func seek(f *format.Stream, offset int64) error {
	return f.TransportSeek(offset*bytesPerSample(&f.Encoding), io.SeekStart)
}
