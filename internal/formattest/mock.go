// SPDX-License-Identifier: EPL-2.0

// Package formattest provides a scriptable format handler for exercising
// the open/read/write/close lifecycle without touching a real codec.
package formattest

import (
	"io"
	"math"

	"github.com/wen501271303/sox/format"
)

// Recorder builds mock handlers and records every callback invocation so
// tests can assert on lifecycle ordering.
type Recorder struct {
	Calls []string

	// Samples is what Read hands out before reporting end of stream
	// (per call to NewHandler, shared across streams).
	Samples []format.Sample

	// Written accumulates everything passed to Write.
	Written []format.Sample

	// Fail, when non-nil, is returned by the callback named by FailAt.
	Fail   error
	FailAt string

	// Flags is copied onto handlers built by NewHandler.
	Flags format.Flag

	pos int
}

func (r *Recorder) call(name string) error {
	r.Calls = append(r.Calls, name)
	if r.Fail != nil && r.FailAt == name {
		return r.Fail
	}
	return nil
}

// Count returns how many times the named callback ran.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// NewHandler returns a fully wired handler named name that serves
// r.Samples on read and records into r on every callback. Reads start
// from the beginning of r.Samples for each new stream.
func (r *Recorder) NewHandler(name string) format.Handler {
	return format.Handler{
		Names:      []string{name},
		Extensions: []string{name},
		Flags:      r.Flags,
		Version:    format.Version,
		WriteFormats: []format.FormatSpec{
			{Encoding: format.EncodingSigned, Bits: []uint{8, 16, 32}},
		},
		StartRead: func(f *format.Stream) error {
			r.pos = 0
			if f.Signal.Rate == 0 {
				f.Signal.Rate = format.DefaultRate
			}
			if f.Signal.Channels == 0 {
				f.Signal.Channels = format.DefaultChannels
			}
			f.Encoding.Encoding = format.EncodingSigned
			f.Encoding.BitsPerSample = 32
			f.SetDeclaredLength(uint64(len(r.Samples)))
			return r.call("StartRead")
		},
		Read: func(f *format.Stream, buf []format.Sample) (int, error) {
			if err := r.call("Read"); err != nil {
				return 0, err
			}
			n := copy(buf, r.Samples[r.pos:])
			r.pos += n
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		},
		StopRead: func(f *format.Stream) error {
			return r.call("StopRead")
		},
		StartWrite: func(f *format.Stream) error {
			return r.call("StartWrite")
		},
		Write: func(f *format.Stream, buf []format.Sample) (int, error) {
			if err := r.call("Write"); err != nil {
				return 0, err
			}
			r.Written = append(r.Written, buf...)
			return len(buf), nil
		},
		StopWrite: func(f *format.Stream) error {
			return r.call("StopWrite")
		},
		Seek: func(f *format.Stream, offset int64) error {
			if err := r.call("Seek"); err != nil {
				return err
			}
			if offset > int64(len(r.Samples)) {
				offset = int64(len(r.Samples))
			}
			r.pos = int(offset)
			return nil
		},
	}
}

// Sine generates n samples of a full-scale sine at the given frequency
// and rate.
func Sine(n int, freq, rate float64) []format.Sample {
	out := make([]format.Sample, n)
	for i := range out {
		t := float64(i) / rate
		out[i] = format.SampleFromFloat64(math.Sin(2 * math.Pi * freq * t))
	}
	return out
}

// Ramp generates n samples sweeping linearly from -1 to +1.
func Ramp(n int) []format.Sample {
	out := make([]format.Sample, n)
	if n < 2 {
		return out
	}
	for i := range out {
		out[i] = format.SampleFromFloat64(2*float64(i)/float64(n-1) - 1)
	}
	return out
}
