// SPDX-License-Identifier: EPL-2.0

package format

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// newFileStream builds a bare stream over a fresh temp file, bypassing
// the open path so the primitives can be exercised in isolation.
func newFileStream(t *testing.T) *Stream {
	t.Helper()

	fp, err := os.Create(filepath.Join(t.TempDir(), "data.bin"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	t.Cleanup(func() { fp.Close() })

	return &Stream{
		ctx:      NewContext(),
		file:     fp,
		seekable: true,
		r:        bufio.NewReaderSize(fp, defaultBufSize),
		w:        bufio.NewWriterSize(fp, defaultBufSize),
	}
}

func rewind(t *testing.T, f *Stream) {
	t.Helper()
	if err := f.TransportSeek(0, io.SeekStart); err != nil {
		t.Fatalf("TransportSeek(0) error = %v", err)
	}
}

func TestUint16Buf_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, rev := range []Option{OptionNo, OptionYes} {
		f := newFileStream(t)
		f.Encoding.ReverseBytes = rev

		want := make([]uint16, 1000)
		for i := range want {
			want[i] = uint16(i * 31)
		}
		if n, err := f.WriteUint16Buf(want); n != len(want) || err != nil {
			t.Fatalf("WriteUint16Buf() = %d, %v, want %d, nil", n, err, len(want))
		}
		rewind(t, f)

		got := make([]uint16, len(want))
		if n, err := f.ReadUint16Buf(got); n != len(want) || err != nil {
			t.Fatalf("ReadUint16Buf() = %d, %v, want %d, nil", n, err, len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got[%d] = %#x, want %#x (ReverseBytes=%v)", i, got[i], want[i], rev)
			}
		}
	}
}

func TestUint16Buf_ByteOrderOnDisk(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	// Force big-endian storage regardless of the machine.
	f.Encoding.ReverseBytes = optionFromBool(!nativeBigEndian)
	if f.order() != binary.BigEndian {
		t.Fatalf("order() = %v, want BigEndian", f.order())
	}

	if err := f.WriteUint16(0x1234); err != nil {
		t.Fatalf("WriteUint16() error = %v", err)
	}
	rewind(t, f)

	var raw [2]byte
	if _, err := f.ReadBytes(raw[:]); err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if raw[0] != 0x12 || raw[1] != 0x34 {
		t.Errorf("on-disk bytes = %#x %#x, want 0x12 0x34", raw[0], raw[1])
	}
}

func TestUint24Buf_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, rev := range []Option{OptionNo, OptionYes} {
		f := newFileStream(t)
		f.Encoding.ReverseBytes = rev

		want := []uint32{0, 1, 0x7fffff, 0x800000, 0xffffff, 0x123456}
		if n, err := f.WriteUint24Buf(want); n != len(want) || err != nil {
			t.Fatalf("WriteUint24Buf() = %d, %v", n, err)
		}
		rewind(t, f)

		got := make([]uint32, len(want))
		if n, err := f.ReadUint24Buf(got); n != len(want) || err != nil {
			t.Fatalf("ReadUint24Buf() = %d, %v", n, err)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got[%d] = %#x, want %#x (ReverseBytes=%v)", i, got[i], want[i], rev)
			}
		}
	}
}

func TestFloatBuf_RoundTrip(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	f.Encoding.ReverseBytes = OptionYes

	f32 := []float32{0, 1, -1, 0.5, -0.25}
	if n, err := f.WriteFloat32Buf(f32); n != len(f32) || err != nil {
		t.Fatalf("WriteFloat32Buf() = %d, %v", n, err)
	}
	f64 := []float64{0, 1, -1, 1e-300, -0.125}
	if n, err := f.WriteFloat64Buf(f64); n != len(f64) || err != nil {
		t.Fatalf("WriteFloat64Buf() = %d, %v", n, err)
	}
	rewind(t, f)

	got32 := make([]float32, len(f32))
	if n, err := f.ReadFloat32Buf(got32); n != len(f32) || err != nil {
		t.Fatalf("ReadFloat32Buf() = %d, %v", n, err)
	}
	got64 := make([]float64, len(f64))
	if n, err := f.ReadFloat64Buf(got64); n != len(f64) || err != nil {
		t.Fatalf("ReadFloat64Buf() = %d, %v", n, err)
	}
	for i := range f32 {
		if got32[i] != f32[i] {
			t.Errorf("float32[%d] = %v, want %v", i, got32[i], f32[i])
		}
	}
	for i := range f64 {
		if got64[i] != f64[i] {
			t.Errorf("float64[%d] = %v, want %v", i, got64[i], f64[i])
		}
	}
}

func TestUint8Buf_BitReversal(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	f.Encoding.ReverseBits = OptionYes

	if n, err := f.WriteUint8Buf([]uint8{0x01, 0x80, 0xf0}); n != 3 || err != nil {
		t.Fatalf("WriteUint8Buf() = %d, %v", n, err)
	}
	rewind(t, f)

	var raw [3]byte
	if _, err := f.ReadBytes(raw[:]); err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if raw != [3]byte{0x80, 0x01, 0x0f} {
		t.Errorf("on-disk bytes = %#v, want bit-reversed", raw)
	}

	// Reading applies the same transform, so a round trip is identity.
	rewind(t, f)
	got := make([]uint8, 3)
	if n, err := f.ReadUint8Buf(got); n != 3 || err != nil {
		t.Fatalf("ReadUint8Buf() = %d, %v", n, err)
	}
	if got[0] != 0x01 || got[1] != 0x80 || got[2] != 0xf0 {
		t.Errorf("round trip = %#v, want original", got)
	}
}

func TestUint8Buf_NibbleReversal(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	f.Encoding.ReverseNibbles = OptionYes

	if n, err := f.WriteUint8Buf([]uint8{0x12, 0xab}); n != 2 || err != nil {
		t.Fatalf("WriteUint8Buf() = %d, %v", n, err)
	}
	rewind(t, f)

	var raw [2]byte
	if _, err := f.ReadBytes(raw[:]); err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if raw != [2]byte{0x21, 0xba} {
		t.Errorf("on-disk bytes = %#v, want nibble-swapped", raw)
	}
}

func TestScalarRead_PrematureEnd(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	if err := f.WriteUint8(0x42); err != nil {
		t.Fatalf("WriteUint8() error = %v", err)
	}
	rewind(t, f)

	// One byte available: a 16-bit read must fail cleanly.
	if _, err := f.ReadUint16(); !errors.Is(err, ErrPrematureEnd) {
		t.Errorf("ReadUint16() error = %v, want ErrPrematureEnd", err)
	}

	rewind(t, f)
	if v, err := f.ReadUint8(); v != 0x42 || err != nil {
		t.Fatalf("ReadUint8() = %#x, %v", v, err)
	}
	if _, err := f.ReadUint8(); !errors.Is(err, ErrPrematureEnd) {
		t.Errorf("ReadUint8() at EOF error = %v, want ErrPrematureEnd", err)
	}
}

func TestReadBuf_ShortReadReportsEOF(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	if n, err := f.WriteUint16Buf([]uint16{1, 2, 3}); n != 3 || err != nil {
		t.Fatalf("WriteUint16Buf() = %d, %v", n, err)
	}
	rewind(t, f)

	got := make([]uint16, 5)
	n, err := f.ReadUint16Buf(got)
	if n != 3 {
		t.Errorf("ReadUint16Buf() n = %d, want 3", n)
	}
	if !errors.Is(err, io.EOF) {
		t.Errorf("ReadUint16Buf() error = %v, want io.EOF", err)
	}
}

func TestReadChars_WriteString(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	if err := f.WriteString(".snd"); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
	rewind(t, f)

	var tag [4]byte
	if err := f.ReadChars(tag[:]); err != nil {
		t.Fatalf("ReadChars() error = %v", err)
	}
	if string(tag[:]) != ".snd" {
		t.Errorf("ReadChars() = %q, want %q", tag[:], ".snd")
	}

	var more [2]byte
	if err := f.ReadChars(more[:]); !errors.Is(err, ErrPrematureEnd) {
		t.Errorf("ReadChars() past EOF error = %v, want ErrPrematureEnd", err)
	}
}

func TestTransport_SeekAndRead(t *testing.T) {
	t.Parallel()

	f := newFileStream(t)
	tr := NewTransport(f)

	if _, err := tr.Write([]byte("abcdefgh")); err != nil {
		t.Fatalf("Transport.Write() error = %v", err)
	}
	if pos, err := tr.Seek(2, io.SeekStart); pos != 2 || err != nil {
		t.Fatalf("Transport.Seek(2) = %d, %v", pos, err)
	}

	got := make([]byte, 3)
	if _, err := io.ReadFull(tr, got); err != nil {
		t.Fatalf("Transport read error = %v", err)
	}
	if string(got) != "cde" {
		t.Errorf("read after seek = %q, want %q", got, "cde")
	}
	if pos, err := tr.Seek(0, io.SeekCurrent); pos != 5 || err != nil {
		t.Errorf("Transport.Seek(0, Current) = %d, %v, want 5, nil", pos, err)
	}
}
