// SPDX-License-Identifier: EPL-2.0

package au

import (
	"fmt"
	"io"
	"strings"

	"github.com/wen501271303/sox/format"
)

// On-disk encoding ids of the AU header.
const (
	auEncULaw    = 1
	auEncS8      = 2
	auEncS16     = 3
	auEncS24     = 4
	auEncS32     = 5
	auEncFloat32 = 6
	auEncFloat64 = 7
	auEncALaw    = 27
)

const (
	auMagic       = ".snd"
	auMagicSwap   = "dns." // same header written by a little-endian writer
	auSizeUnknown = 0xffffffff
	auHdrSize     = 24
)

// Format returns the handler for Sun/NeXT .au files. The format is fixed
// big-endian and stores the data length in its header, so writing to a
// seekable stream patches the header on close when the declared length
// turns out wrong.
func Format() format.Handler {
	return format.Handler{
		Names:      []string{"au", "snd"},
		Extensions: []string{"au", "snd"},
		Flags:      format.FlagEndian | format.FlagEndianBig | format.FlagRewind,
		Version:    format.Version,
		WriteFormats: []format.FormatSpec{
			{Encoding: format.EncodingULaw, Bits: []uint{8}},
			{Encoding: format.EncodingSigned, Bits: []uint{8, 16, 24, 32}},
			{Encoding: format.EncodingFloat, Bits: []uint{32, 64}},
			{Encoding: format.EncodingALaw, Bits: []uint{8}},
		},
		StartRead:  startRead,
		Read:       read,
		StartWrite: startWrite,
		StopWrite:  stopWrite,
		Write:      write,
		Seek:       seek,
	}
}

type priv struct {
	dataOffset int64
	u8         []uint8
	u16        []uint16
	u32        []uint32
	f32        []float32
	f64        []float64
}

func getPriv(f *format.Stream) *priv {
	p, _ := f.Priv().(*priv)
	if p == nil {
		p = &priv{}
		f.SetPriv(p)
	}
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
	var magic [4]byte
	if err := f.ReadChars(magic[:]); err != nil {
		return err
	}
	switch string(magic[:]) {
	case auMagic:
	case auMagicSwap:
		// Written on a machine of the opposite byte order.
		if f.Encoding.ReverseBytes == format.OptionYes {
			f.Encoding.ReverseBytes = format.OptionNo
		} else {
			f.Encoding.ReverseBytes = format.OptionYes
		}
	default:
		return ErrBadHeader
	}

	hdrSize, err := f.ReadUint32()
	if err != nil {
		return err
	}
	if hdrSize < auHdrSize {
		return ErrBadHeader
	}
	dataSize, err := f.ReadUint32()
	if err != nil {
		return err
	}
	encID, err := f.ReadUint32()
	if err != nil {
		return err
	}
	rate, err := f.ReadUint32()
	if err != nil {
		return err
	}
	channels, err := f.ReadUint32()
	if err != nil {
		return err
	}

	if ann := hdrSize - auHdrSize; ann > 0 {
		text := make([]byte, ann)
		if err := f.ReadChars(text); err != nil {
			return err
		}
		if s := strings.TrimRight(string(text), "\x00 \n"); s != "" {
			f.Comments = append(f.Comments, s)
		}
	}

	enc, bits, err := decodeEncID(encID)
	if err != nil {
		return err
	}
	f.Encoding.Encoding = enc
	f.Encoding.BitsPerSample = bits
	f.Signal.Rate = float64(rate)
	f.Signal.Channels = uint(channels)

	p := getPriv(f)
	p.dataOffset = int64(hdrSize)
	if dataSize != auSizeUnknown {
		f.SetDeclaredLength(uint64(dataSize) / uint64(bytesPerSample(enc, bits)))
	}
	return nil
}

func decodeEncID(id uint32) (format.Encoding, uint, error) {
	switch id {
	case auEncULaw:
		return format.EncodingULaw, 8, nil
	case auEncS8:
		return format.EncodingSigned, 8, nil
	case auEncS16:
		return format.EncodingSigned, 16, nil
	case auEncS24:
		return format.EncodingSigned, 24, nil
	case auEncS32:
		return format.EncodingSigned, 32, nil
	case auEncFloat32:
		return format.EncodingFloat, 32, nil
	case auEncFloat64:
		return format.EncodingFloat, 64, nil
	case auEncALaw:
		return format.EncodingALaw, 8, nil
	}
	return format.EncodingUnknown, 0, fmt.Errorf("%w: encoding id %d", ErrUnsupportedEncoding, id)
}

func encodeEncID(enc format.Encoding, bits uint) (uint32, error) {
	switch enc {
	case format.EncodingULaw:
		return auEncULaw, nil
	case format.EncodingALaw:
		return auEncALaw, nil
	case format.EncodingSigned:
		switch bits {
		case 8:
			return auEncS8, nil
		case 16:
			return auEncS16, nil
		case 24:
			return auEncS24, nil
		case 32:
			return auEncS32, nil
		}
	case format.EncodingFloat:
		switch bits {
		case 32:
			return auEncFloat32, nil
		case 64:
			return auEncFloat64, nil
		}
	}
	return 0, fmt.Errorf("%w: %v/%d-bit", ErrUnsupportedEncoding, enc, bits)
}

func bytesPerSample(enc format.Encoding, bits uint) int64 {
	if enc == format.EncodingULaw || enc == format.EncodingALaw {
		return 1
	}
	return int64(bits / 8)
}

func startWrite(f *format.Stream) error {
	return writeHeader(f, f.DeclaredLength())
}

// stopWrite is invoked after a rewind when the actual length differs from
// the declared one; rewriting the header with the true sample count
// patches the length field.
func stopWrite(f *format.Stream) error {
	return writeHeader(f, f.WrittenLength())
}

func writeHeader(f *format.Stream, samples uint64) error {
	encID, err := encodeEncID(f.Encoding.Encoding, f.Encoding.BitsPerSample)
	if err != nil {
		return err
	}

	// Annotation: comments, NUL padded to a 4-byte boundary, at least 4
	// bytes so the field is never empty.
	ann := []byte(strings.Join(f.Comments, "\n"))
	ann = append(ann, make([]byte, 4-len(ann)%4)...)

	dataSize := uint32(auSizeUnknown)
	if samples != 0 || f.Seekable() {
		dataSize = uint32(samples * uint64(bytesPerSample(f.Encoding.Encoding, f.Encoding.BitsPerSample)))
	}

	if err := f.WriteString(auMagic); err != nil {
		return err
	}
	if err := f.WriteUint32(uint32(auHdrSize + len(ann))); err != nil {
		return err
	}
	if err := f.WriteUint32(dataSize); err != nil {
		return err
	}
	if err := f.WriteUint32(encID); err != nil {
		return err
	}
	if err := f.WriteUint32(uint32(f.Signal.Rate)); err != nil {
		return err
	}
	if err := f.WriteUint32(uint32(f.Signal.Channels)); err != nil {
		return err
	}
	if err := f.WriteChars(ann); err != nil {
		return err
	}
	getPriv(f).dataOffset = int64(auHdrSize + len(ann))
	return nil
}

func read(f *format.Stream, buf []format.Sample) (int, error) {
	p := getPriv(f)
	p.grow(len(buf))
	enc := &f.Encoding
	switch {
	case enc.Encoding == format.EncodingULaw:
		n, err := f.ReadUint8Buf(p.u8[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromInt16(ulawDecode(p.u8[i]))
		}
		return n, err
	case enc.Encoding == format.EncodingALaw:
		n, err := f.ReadUint8Buf(p.u8[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromInt16(alawDecode(p.u8[i]))
		}
		return n, err
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
	switch enc.BitsPerSample {
	case 8:
		n, err := f.ReadUint8Buf(p.u8[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromInt8(int8(p.u8[i]))
		}
		return n, err
	case 16:
		n, err := f.ReadUint16Buf(p.u16[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromInt16(int16(p.u16[i]))
		}
		return n, err
	case 24:
		n, err := f.ReadUint24Buf(p.u32[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromInt24(int32(p.u32[i]<<8) >> 8)
		}
		return n, err
	default:
		n, err := f.ReadUint32Buf(p.u32[:len(buf)])
		for i := 0; i < n; i++ {
			buf[i] = format.SampleFromInt32(int32(p.u32[i]))
		}
		return n, err
	}
}

func write(f *format.Stream, buf []format.Sample) (int, error) {
	p := getPriv(f)
	p.grow(len(buf))
	enc := &f.Encoding
	switch {
	case enc.Encoding == format.EncodingULaw:
		for i, s := range buf {
			p.u8[i] = ulawEncode(format.SampleToInt16(s))
		}
		return f.WriteUint8Buf(p.u8[:len(buf)])
	case enc.Encoding == format.EncodingALaw:
		for i, s := range buf {
			p.u8[i] = alawEncode(format.SampleToInt16(s))
		}
		return f.WriteUint8Buf(p.u8[:len(buf)])
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
	switch enc.BitsPerSample {
	case 8:
		for i, s := range buf {
			p.u8[i] = uint8(format.SampleToInt8(s))
		}
		return f.WriteUint8Buf(p.u8[:len(buf)])
	case 16:
		for i, s := range buf {
			p.u16[i] = uint16(format.SampleToInt16(s))
		}
		return f.WriteUint16Buf(p.u16[:len(buf)])
	case 24:
		for i, s := range buf {
			p.u32[i] = uint32(format.SampleToInt24(s)) & 0xffffff
		}
		return f.WriteUint24Buf(p.u32[:len(buf)])
	default:
		for i, s := range buf {
			p.u32[i] = uint32(format.SampleToInt32(s))
		}
		return f.WriteUint32Buf(p.u32[:len(buf)])
	}
}

func seek(f *format.Stream, offset int64) error {
	bps := bytesPerSample(f.Encoding.Encoding, f.Encoding.BitsPerSample)
	return f.TransportSeek(getPriv(f).dataOffset+offset*bps, io.SeekStart)
}
