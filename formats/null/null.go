// SPDX-License-Identifier: EPL-2.0

// Package null provides the bit bucket: a phony format with no backing
// file. Reads produce immediate end of stream, writes count and discard.
// Useful as a source or sink when only the side effects of a pipeline
// matter.
package null

import (
	"io"

	"github.com/wen501271303/sox/format"
)

// Format returns the null handler.
func Format() format.Handler {
	return format.Handler{
		Names:      []string{"null"},
		Extensions: []string{"null"},
		Flags:      format.FlagPhony | format.FlagNoStdIO,
		Version:    format.Version,
		StartRead:  start,
		Read:       read,
		StartWrite: start,
		Write:      write,
	}
}

// start fills in whatever the caller left unspecified; the bit bucket
// accepts anything.
func start(f *format.Stream) error {
	if f.Signal.Rate == 0 {
		f.Signal.Rate = format.DefaultRate
	}
	if f.Signal.Channels == 0 {
		f.Signal.Channels = format.DefaultChannels
	}
	if f.Encoding.Encoding == format.EncodingUnknown {
		f.Encoding.Encoding = format.EncodingSigned
		f.Encoding.BitsPerSample = 32
	}
	if f.Signal.Precision == 0 {
		f.Signal.Precision = format.Precision(f.Encoding.Encoding, f.Encoding.BitsPerSample)
	}
	return nil
}

func read(f *format.Stream, buf []format.Sample) (int, error) {
	return 0, io.EOF
}

func write(f *format.Stream, buf []format.Sample) (int, error) {
	return len(buf), nil
}
