// SPDX-License-Identifier: EPL-2.0

package null_test

import (
	"errors"
	"io"
	"testing"

	"github.com/wen501271303/sox/format"
	"github.com/wen501271303/sox/formats/null"
	"github.com/wen501271303/sox/internal/formattest"
)

func TestNull_ReadIsEmpty(t *testing.T) {
	t.Parallel()

	c := format.NewContext()
	c.Register(null.Format())

	f, err := c.OpenRead("anything", nil, nil, "null")
	if err != nil {
		t.Fatalf("OpenRead() error = %v", err)
	}
	defer f.Close()

	if f.Signal.Rate != format.DefaultRate {
		t.Errorf("Rate = %g, want default %g", f.Signal.Rate, float64(format.DefaultRate))
	}
	buf := make([]format.Sample, 16)
	if n, err := f.Read(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("Read() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestNull_WriteDiscards(t *testing.T) {
	t.Parallel()

	c := format.NewContext()
	c.Register(null.Format())

	sig := format.SignalInfo{Rate: 48000, Channels: 2, Precision: 16}
	f, err := c.OpenWrite("discard", sig, nil, &format.WriteOptions{Type: "null"})
	if err != nil {
		t.Fatalf("OpenWrite() error = %v", err)
	}

	src := formattest.Ramp(256)
	if n, err := f.Write(src); n != len(src) || err != nil {
		t.Fatalf("Write() = %d, %v, want %d, nil", n, err, len(src))
	}
	if f.WrittenLength() != uint64(len(src)) {
		t.Errorf("WrittenLength() = %d, want %d", f.WrittenLength(), len(src))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
