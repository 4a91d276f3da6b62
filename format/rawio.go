// SPDX-License-Identifier: EPL-2.0

package format

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// bitrev maps each byte to its bit-reversed value.
var bitrev = func() (t [256]byte) {
	for i := range t {
		b := byte(i)
		b = b>>4 | b<<4
		b = b>>2&0x33 | b<<2&0xcc
		b = b>>1&0x55 | b<<1&0xaa
		t[i] = b
	}
	return
}()

// order returns the byte order file data is stored in, as resolved by the
// endianness normalizer at open time.
func (f *Stream) order() binary.ByteOrder {
	if (f.Encoding.ReverseBytes == OptionYes) != nativeBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ReadBytes fills p from the stream transport. A short count is only
// returned at end of stream (err == io.EOF) or on transport error.
func (f *Stream) ReadBytes(p []byte) (int, error) {
	if f.r == nil {
		return 0, fmt.Errorf("stream has no byte transport: %w", ErrUnsupported)
	}
	n, err := io.ReadFull(f.r, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

// WriteBytes sends p to the stream transport.
func (f *Stream) WriteBytes(p []byte) (int, error) {
	if f.w == nil {
		return 0, fmt.Errorf("stream has no byte transport: %w", ErrUnsupported)
	}
	return f.w.Write(p)
}

// TransportSeek repositions the underlying transport, flushing or
// discarding any buffered bytes first. Handlers use it to reposition
// before patching headers.
func (f *Stream) TransportSeek(offset int64, whence int) error {
	if f.file == nil || !f.seekable {
		return fmt.Errorf("can't seek in %q: %w", f.filename, ErrUnsupported)
	}
	if f.w != nil {
		if err := f.w.Flush(); err != nil {
			return err
		}
	}
	if _, err := f.file.Seek(offset, whence); err != nil {
		return err
	}
	if f.r != nil {
		f.r.Reset(f.file)
	}
	if f.w != nil {
		f.w.Reset(f.file)
	}
	return nil
}

func (f *Stream) rewindTransport() error {
	return f.TransportSeek(0, io.SeekStart)
}

func (f *Stream) scratchBuf(n int) []byte {
	if cap(f.scratch) < n {
		f.scratch = make([]byte, n)
	}
	return f.scratch[:n]
}

// readBuf is the shared read path for multi-byte element types: one bulk
// transport read, then a per-element decode applying the resolved byte
// order.
func readBuf[T any](f *Stream, buf []T, size int, dec func([]byte) T) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	raw := f.scratchBuf(len(buf) * size)
	n, err := f.ReadBytes(raw)
	cnt := n / size
	for i := 0; i < cnt; i++ {
		buf[i] = dec(raw[i*size:])
	}
	if cnt == len(buf) {
		return cnt, nil
	}
	return cnt, err
}

// writeBuf mirrors readBuf: per-element encode into a scratch buffer, then
// one bulk transport write.
func writeBuf[T any](f *Stream, buf []T, size int, enc func([]byte, T)) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	raw := f.scratchBuf(len(buf) * size)
	for i, v := range buf {
		enc(raw[i*size:], v)
	}
	n, err := f.WriteBytes(raw)
	return n / size, err
}

// twiddleByte applies the resolved bit and nibble order to one byte, in
// that order.
func (f *Stream) twiddleByte(b byte) byte {
	if f.Encoding.ReverseBits == OptionYes {
		b = bitrev[b]
	}
	if f.Encoding.ReverseNibbles == OptionYes {
		b = b&15<<4 | b>>4
	}
	return b
}

// ReadUint8Buf reads len(buf) bytes, applying bit and nibble reversal.
func (f *Stream) ReadUint8Buf(buf []uint8) (int, error) {
	n, err := f.ReadBytes(buf)
	if f.Encoding.ReverseBits == OptionYes || f.Encoding.ReverseNibbles == OptionYes {
		for i := 0; i < n; i++ {
			buf[i] = f.twiddleByte(buf[i])
		}
	}
	if n == len(buf) {
		err = nil
	}
	return n, err
}

func (f *Stream) WriteUint8Buf(buf []uint8) (int, error) {
	if f.Encoding.ReverseBits != OptionYes && f.Encoding.ReverseNibbles != OptionYes {
		return f.WriteBytes(buf)
	}
	return writeBuf(f, buf, 1, func(p []byte, v uint8) { p[0] = f.twiddleByte(v) })
}

func (f *Stream) ReadUint16Buf(buf []uint16) (int, error) {
	ord := f.order()
	return readBuf(f, buf, 2, ord.Uint16)
}

func (f *Stream) WriteUint16Buf(buf []uint16) (int, error) {
	ord := f.order()
	return writeBuf(f, buf, 2, ord.PutUint16)
}

// ReadUint24Buf reads packed 3-byte values into the low 24 bits of each
// element. There is no natively-aligned 3-byte type, so this path always
// unpacks explicitly; it is the slow path.
func (f *Stream) ReadUint24Buf(buf []uint32) (int, error) {
	big := f.order() == binary.BigEndian
	return readBuf(f, buf, 3, func(p []byte) uint32 {
		if big {
			return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
		}
		return uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
	})
}

func (f *Stream) WriteUint24Buf(buf []uint32) (int, error) {
	big := f.order() == binary.BigEndian
	return writeBuf(f, buf, 3, func(p []byte, v uint32) {
		if big {
			p[0], p[1], p[2] = byte(v>>16), byte(v>>8), byte(v)
		} else {
			p[2], p[1], p[0] = byte(v>>16), byte(v>>8), byte(v)
		}
	})
}

func (f *Stream) ReadUint32Buf(buf []uint32) (int, error) {
	ord := f.order()
	return readBuf(f, buf, 4, ord.Uint32)
}

func (f *Stream) WriteUint32Buf(buf []uint32) (int, error) {
	ord := f.order()
	return writeBuf(f, buf, 4, ord.PutUint32)
}

func (f *Stream) ReadFloat32Buf(buf []float32) (int, error) {
	ord := f.order()
	return readBuf(f, buf, 4, func(p []byte) float32 {
		return math.Float32frombits(ord.Uint32(p))
	})
}

func (f *Stream) WriteFloat32Buf(buf []float32) (int, error) {
	ord := f.order()
	return writeBuf(f, buf, 4, func(p []byte, v float32) {
		ord.PutUint32(p, math.Float32bits(v))
	})
}

func (f *Stream) ReadFloat64Buf(buf []float64) (int, error) {
	ord := f.order()
	return readBuf(f, buf, 8, func(p []byte) float64 {
		return math.Float64frombits(ord.Uint64(p))
	})
}

func (f *Stream) WriteFloat64Buf(buf []float64) (int, error) {
	ord := f.order()
	return writeBuf(f, buf, 8, func(p []byte, v float64) {
		ord.PutUint64(p, math.Float64bits(v))
	})
}

// scalarRead turns a buffer read of one element into a value, raising
// ErrPrematureEnd when the stream ends with no other error recorded.
func scalarRead[T any](readBuf func([]T) (int, error)) (T, error) {
	var v [1]T
	n, err := readBuf(v[:])
	if n == 1 {
		return v[0], nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return v[0], err
	}
	return v[0], ErrPrematureEnd
}

func scalarWrite[T any](writeBuf func([]T) (int, error), v T) error {
	n, err := writeBuf([]T{v})
	if n == 1 {
		return nil
	}
	if err != nil {
		return err
	}
	return io.ErrShortWrite
}

func (f *Stream) ReadUint8() (uint8, error)     { return scalarRead(f.ReadUint8Buf) }
func (f *Stream) ReadUint16() (uint16, error)   { return scalarRead(f.ReadUint16Buf) }
func (f *Stream) ReadUint24() (uint32, error)   { return scalarRead(f.ReadUint24Buf) }
func (f *Stream) ReadUint32() (uint32, error)   { return scalarRead(f.ReadUint32Buf) }
func (f *Stream) ReadFloat32() (float32, error) { return scalarRead(f.ReadFloat32Buf) }
func (f *Stream) ReadFloat64() (float64, error) { return scalarRead(f.ReadFloat64Buf) }

func (f *Stream) WriteUint8(v uint8) error     { return scalarWrite(f.WriteUint8Buf, v) }
func (f *Stream) WriteUint16(v uint16) error   { return scalarWrite(f.WriteUint16Buf, v) }
func (f *Stream) WriteUint24(v uint32) error   { return scalarWrite(f.WriteUint24Buf, v) }
func (f *Stream) WriteUint32(v uint32) error   { return scalarWrite(f.WriteUint32Buf, v) }
func (f *Stream) WriteFloat32(v float32) error { return scalarWrite(f.WriteFloat32Buf, v) }
func (f *Stream) WriteFloat64(v float64) error { return scalarWrite(f.WriteFloat64Buf, v) }

func (f *Stream) WriteInt8(v int8) error   { return f.WriteUint8(uint8(v)) }
func (f *Stream) WriteInt16(v int16) error { return f.WriteUint16(uint16(v)) }

// ReadChars fills p completely or fails with ErrPrematureEnd (or the
// transport error, when one occurred).
func (f *Stream) ReadChars(p []byte) error {
	n, err := f.ReadBytes(p)
	if n == len(p) {
		return nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return ErrPrematureEnd
}

// WriteChars writes p completely or fails.
func (f *Stream) WriteChars(p []byte) error {
	n, err := f.WriteBytes(p)
	if n == len(p) {
		return nil
	}
	if err != nil {
		return err
	}
	return io.ErrShortWrite
}

// WriteString is WriteChars for string data (header tags and the like).
func (f *Stream) WriteString(s string) error {
	return f.WriteChars([]byte(s))
}
