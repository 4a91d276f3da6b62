// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/wen501271303/sox/format"
	"github.com/wen501271303/sox/formats/aiff"
	"github.com/wen501271303/sox/internal/formattest"
)

func newContext() *format.Context {
	c := format.NewContext()
	c.Register(aiff.Format())
	return c
}

func TestAIFF_RoundTrip16Bit(t *testing.T) {
	t.Parallel()

	c := newContext()
	path := filepath.Join(t.TempDir(), "tone.aiff")
	src := formattest.Sine(600, 220, 22050)
	sig := format.SignalInfo{Rate: 22050, Channels: 1, Precision: 16}
	enc := format.EncodingInfo{Encoding: format.EncodingSigned, BitsPerSample: 16}

	out, err := c.OpenWrite(path, sig, &enc, nil)
	if err != nil {
		t.Fatalf("OpenWrite() error = %v", err)
	}
	if n, err := out.Write(src); n != len(src) || err != nil {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	in, err := c.OpenRead(path, nil, nil, "")
	if err != nil {
		t.Fatalf("OpenRead() error = %v", err)
	}
	defer in.Close()

	if in.Filetype() != "aiff" {
		t.Errorf("Filetype() = %q, want %q", in.Filetype(), "aiff")
	}
	if in.Signal.Rate != 22050 || in.Signal.Channels != 1 {
		t.Errorf("signal = %+v, want 22050 Hz mono", in.Signal)
	}
	if in.Encoding.Encoding != format.EncodingSigned || in.Encoding.BitsPerSample != 16 {
		t.Errorf("encoding = %v/%d, want signed/16", in.Encoding.Encoding, in.Encoding.BitsPerSample)
	}

	var got []format.Sample
	buf := make([]format.Sample, 100)
	for {
		n, err := in.Read(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("Read() error = %v", err)
			}
			break
		}
		if n == 0 {
			break
		}
	}
	if len(got) != len(src) {
		t.Fatalf("read %d samples, want %d", len(got), len(src))
	}
	for i := range src {
		if format.SampleToInt16(got[i]) != format.SampleToInt16(src[i]) {
			t.Fatalf("sample %d = %#x, want %#x", i, got[i], src[i])
		}
	}
}

func TestAIFF_RejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fake.aiff")
	if err := os.WriteFile(path, []byte("certainly not an IFF container.."), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := newContext().OpenRead(path, nil, nil, "aiff"); err == nil {
		t.Error("OpenRead(garbage) = nil error, want failure")
	}
}
