// SPDX-License-Identifier: EPL-2.0

package format

// Version is the library ABI version. A handler is only accepted by a
// Context when the major component of its declared Version matches.
const Version = "1.0.0"

// Default values applied to a SignalInfo with unset fields.
const (
	DefaultRate      = 44100
	DefaultPrecision = 16
	DefaultChannels  = 1
)

// MaxLoops is the number of loop-point slots carried on a write stream.
const MaxLoops = 8

// Sample is one audio sample: signed, left-justified 32-bit linear PCM.
// Handlers convert between their on-disk representation and this type.
type Sample int32

// SignalInfo describes the signal carried by a stream. Zero fields mean
// "unset"; they are filled in during open.
type SignalInfo struct {
	Rate      float64 // samples per second, per channel
	Channels  uint
	Precision uint // bits of meaningful dynamic range
}

// Option is a tri-state flag: unset, off, or on. Unset fields are resolved
// from handler defaults when a stream is opened.
type Option int8

const (
	OptionDefault Option = iota
	OptionNo
	OptionYes
)

func optionFromBool(b bool) Option {
	if b {
		return OptionYes
	}
	return OptionNo
}

// EncodingInfo describes how samples are encoded in a stream. The reverse
// options are resolved to OptionYes/OptionNo exactly once, at open time.
type EncodingInfo struct {
	Encoding      Encoding
	BitsPerSample uint

	ReverseBytes   Option
	ReverseBits    Option
	ReverseNibbles Option

	// OppositeEndian requests the byte order opposite to whatever the
	// handler (or, for endian-agnostic handlers, the machine) would use.
	OppositeEndian bool
}

// Flag is a bitset describing fixed properties of a format handler.
type Flag uint

const (
	// FlagNoStdIO marks a handler that manages its own transport; the
	// lifecycle manager opens no file for it.
	FlagNoStdIO Flag = 1 << iota
	FlagMono
	FlagStereo
	FlagQuad
	// FlagEndian marks a format with fixed byte order; FlagEndianBig
	// selects big-endian, otherwise little-endian.
	FlagEndian
	FlagEndianBig
	// FlagBitRev and FlagNibRev set the default bit and nibble order.
	FlagBitRev
	FlagNibRev
	// FlagPhony marks a pseudo-format that does not describe file data.
	FlagPhony
	// FlagRewind marks a format whose header holds a length field that
	// must be patched once the actual data length is known.
	FlagRewind
)

const flagChannels = FlagMono | FlagStereo | FlagQuad

// FormatSpec is one row of a handler's write capability matrix: an encoding
// and the bit depths the handler can write it at. An empty Bits list means
// the encoding has no meaningful depth (e.g. frame-based codecs).
type FormatSpec struct {
	Encoding Encoding
	Bits     []uint
}

// Handler describes one on-disk audio format: its names, capabilities and
// lifecycle callbacks. All callbacks are optional, but a handler must
// provide StartRead or Read to be readable, and StartWrite or Write to be
// writable.
type Handler struct {
	// Names are the type names the handler answers to; the first one is
	// canonical and used in diagnostics. Extensions are the file name
	// suffixes it auto-matches, compared case-insensitively.
	Names      []string
	Extensions []string

	Flags Flag

	// WriteRates lists the sample rates the handler can write; empty
	// means any rate. WriteFormats is the encoding/depth matrix; empty
	// means no declared restriction.
	WriteRates   []float64
	WriteFormats []FormatSpec

	// Version is the handler's ABI version tag, e.g. format.Version.
	Version string

	StartRead  func(*Stream) error
	Read       func(*Stream, []Sample) (int, error)
	StopRead   func(*Stream) error
	StartWrite func(*Stream) error
	Write      func(*Stream, []Sample) (int, error)
	StopWrite  func(*Stream) error
	Seek       func(*Stream, int64) error
}

func (h *Handler) name() string {
	if len(h.Names) > 0 {
		return h.Names[0]
	}
	return "?"
}

// LoopInfo describes one loop region carried in a format's metadata.
type LoopInfo struct {
	Start  uint64
	Length uint64
	Count  uint
	Type   uint
}

// InstrumentInfo carries instrument metadata for formats that store it.
type InstrumentInfo struct {
	MIDINote byte
	MIDILow  byte
	MIDIHigh byte
	LoopMode byte
	NLoops   uint
}
