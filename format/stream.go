// SPDX-License-Identifier: EPL-2.0

package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Mode tags a stream as open for reading or writing. It never changes
// after open.
type Mode int

const (
	Reading Mode = iota
	Writing
)

// Stream is an open format context: a transport handle, a value snapshot
// of the handler bound at open time, and the fully negotiated signal and
// encoding description. It is created by OpenRead or OpenWrite, driven by
// one logical sequence of calls, and destroyed by Close.
type Stream struct {
	ctx     *Context
	handler Handler
	mode    Mode

	file     *os.File
	usingStd bool
	r        *bufio.Reader
	w        *bufio.Writer
	seekable bool
	scratch  []byte

	Signal   SignalInfo
	Encoding EncodingInfo

	Comments   []string
	Instrument *InstrumentInfo
	Loops      []LoopInfo

	filename string
	filetype string
	length   uint64 // declared samples
	olength  uint64 // samples written so far

	priv any
}

func (f *Stream) Filename() string { return f.filename }
func (f *Stream) Filetype() string { return f.filetype }
func (f *Stream) Mode() Mode       { return f.mode }
func (f *Stream) Seekable() bool   { return f.seekable }

// Handler returns a copy of the capability table bound at open time.
func (f *Stream) Handler() Handler { return f.handler }

// DeclaredLength is the sample count declared at open (write streams),
// after rescaling for any negotiated rate/channel substitution.
func (f *Stream) DeclaredLength() uint64 { return f.length }

// WrittenLength is the number of samples written so far.
func (f *Stream) WrittenLength() uint64 { return f.olength }

// SetDeclaredLength lets a read handler record the length parsed from a
// header.
func (f *Stream) SetDeclaredLength(n uint64) { f.length = n }

// Priv and SetPriv give handler callbacks a private scratch slot on the
// stream.
func (f *Stream) Priv() any     { return f.priv }
func (f *Stream) SetPriv(v any) { f.priv = v }

// Log exposes the context's diagnostic logger to handler callbacks.
func (f *Stream) Log() *zap.Logger { return f.ctx.log }

// OpenRead opens path for reading. signal and encoding carry caller hints
// and may be nil; filetype forces a handler instead of magic sniffing and
// extension matching. Path "-" binds stdin, which only one open read
// stream may hold at a time.
func (c *Context) OpenRead(path string, signal *SignalInfo, encoding *EncodingInfo, filetype string) (*Stream, error) {
	f := &Stream{ctx: c, mode: Reading, filename: path}

	if filetype != "" {
		h := c.FindByName(filetype)
		if h == nil {
			return nil, fmt.Errorf("no handler for given file type %q: %w", filetype, ErrUnknownFormat)
		}
		f.handler = *h
		f.filetype = filetype
	}

	if f.handler.Flags&FlagNoStdIO == 0 {
		if path == "-" {
			if err := c.claimStdin("audio input"); err != nil {
				return nil, err
			}
			f.file = os.Stdin
			f.usingStd = true
		} else {
			fp, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("can't open input file %q: %w", path, err)
			}
			f.file = fp
		}
		f.seekable = isRegular(f.file)
		f.r = bufio.NewReaderSize(f.file, c.bufSize)
	}

	if f.filetype == "" {
		detected := ""
		if f.seekable {
			prefix := make([]byte, sniffLen)
			n, _ := io.ReadFull(f.r, prefix)
			detected = detectMagic(prefix[:n], fileExtension(path))
			if err := f.rewindTransport(); err != nil {
				f.abortOpen()
				return nil, fmt.Errorf("can't rewind input file %q: %w", path, err)
			}
		}
		if detected != "" {
			c.log.Debug("detected file format type",
				zap.String("file", path), zap.String("type", detected))
			h := c.FindByName(detected)
			if h == nil {
				f.abortOpen()
				return nil, fmt.Errorf("no handler for detected file type %q: %w", detected, ErrUnknownFormat)
			}
			f.handler = *h
			f.filetype = detected
		} else {
			ext := fileExtension(path)
			if ext == "" {
				f.abortOpen()
				return nil, fmt.Errorf("can't determine type of %q: %w", path, ErrUnknownFormat)
			}
			h := c.FindByExtension(ext)
			if h == nil {
				f.abortOpen()
				return nil, fmt.Errorf("no handler for file extension %q: %w", ext, ErrUnknownFormat)
			}
			f.handler = *h
			f.filetype = ext
		}
	}

	if f.handler.StartRead == nil && f.handler.Read == nil {
		f.abortOpen()
		return nil, fmt.Errorf("file type %q isn't readable: %w", f.filetype, ErrUnsupported)
	}

	if signal != nil {
		f.Signal = *signal
	}
	if encoding != nil {
		f.Encoding = *encoding
	}
	f.applyEndianness()

	// Start callbacks may refine the signal and encoding.
	if f.handler.StartRead != nil {
		if err := f.handler.StartRead(f); err != nil {
			f.abortOpen()
			return nil, fmt.Errorf("can't open input file %q: %w", path, err)
		}
	}

	if f.Signal.Precision == 0 {
		f.Signal.Precision = Precision(f.Encoding.Encoding, f.Encoding.BitsPerSample)
	}
	if f.handler.Flags&FlagPhony == 0 && f.Signal.Channels == 0 {
		f.Signal.Channels = 1
	}

	if err := f.checkFormat(); err != nil {
		f.abortOpen()
		return nil, fmt.Errorf("bad input format for file %q: %w", path, err)
	}
	return f, nil
}

// WriteOptions carries the optional parts of OpenWrite.
type WriteOptions struct {
	// Overwrite, when non-nil, is consulted before an existing regular
	// file is truncated; returning false aborts the open.
	Overwrite func(path string) bool

	// Type forces a handler instead of extension matching.
	Type string

	// Comments, Instrument and Loops are metadata copied by value into
	// the stream; the stream owns its copies.
	Comments   []string
	Instrument *InstrumentInfo
	Loops      []LoopInfo

	// Length declares the number of samples that will be written, for
	// handlers that store it in their header. It is rescaled by the
	// negotiated rate/channel ratio; this does not account for codecs
	// that pad to a block alignment.
	Length uint64
}

// OpenWrite opens path for writing with the given signal description.
// Path "-" binds stdout, which only one open write stream may hold at a
// time.
func (c *Context) OpenWrite(path string, signal SignalInfo, encoding *EncodingInfo, opts *WriteOptions) (*Stream, error) {
	if opts == nil {
		opts = &WriteOptions{}
	}
	f := &Stream{ctx: c, mode: Writing, filename: path}

	if opts.Type != "" {
		f.filetype = opts.Type
		h := c.FindByName(f.filetype)
		if h == nil {
			return nil, fmt.Errorf("no handler for given file type %q: %w", f.filetype, ErrUnknownFormat)
		}
		f.handler = *h
	} else {
		f.filetype = fileExtension(path)
		if f.filetype == "" {
			return nil, fmt.Errorf("can't determine type of %q: %w", path, ErrUnknownFormat)
		}
		h := c.FindByExtension(f.filetype)
		if h == nil {
			return nil, fmt.Errorf("no handler for file extension %q: %w", f.filetype, ErrUnknownFormat)
		}
		f.handler = *h
	}
	if f.handler.StartWrite == nil && f.handler.Write == nil {
		return nil, fmt.Errorf("file type %q isn't writable: %w", f.filetype, ErrUnsupported)
	}

	f.Signal = signal
	if encoding != nil {
		f.Encoding = *encoding
	}

	if f.handler.Flags&FlagNoStdIO == 0 {
		if path == "-" {
			if err := c.claimStdout("audio output"); err != nil {
				return nil, err
			}
			f.file = os.Stdout
			f.usingStd = true
		} else {
			if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() &&
				opts.Overwrite != nil && !opts.Overwrite(path) {
				return nil, fmt.Errorf("won't overwrite %q: %w", path, ErrPermissionDenied)
			}
			fp, err := os.Create(path)
			if err != nil {
				return nil, fmt.Errorf("can't open output file %q: %w", path, err)
			}
			f.file = fp
		}
		// stdout tends to be line-buffered; force full buffering.
		f.w = bufio.NewWriterSize(f.file, c.bufSize)
		f.seekable = isRegular(f.file)
	}

	f.Comments = append([]string(nil), opts.Comments...)
	if opts.Instrument != nil {
		instr := *opts.Instrument
		f.Instrument = &instr
	}
	if n := len(opts.Loops); n > 0 {
		if n > MaxLoops {
			n = MaxLoops
		}
		f.Loops = append([]LoopInfo(nil), opts.Loops[:n]...)
	}
	f.length = opts.Length

	f.applyEndianness()
	f.negotiateOutput()

	// Account for a handler that substitutes rate or channel count as a
	// fixed policy. Codecs that change length due to block alignment are
	// not covered here.
	if signal.Rate != 0 && signal.Channels != 0 {
		f.length = uint64(float64(f.length)*f.Signal.Rate/signal.Rate*
			float64(f.Signal.Channels)/float64(signal.Channels) + 0.5)
	}

	if f.handler.Flags&FlagRewind != 0 && f.length == 0 && !f.seekable {
		c.log.Warn("can't seek in output file; length in file header will be unspecified",
			zap.String("file", path))
	}

	if f.handler.StartWrite != nil {
		if err := f.handler.StartWrite(f); err != nil {
			f.abortOpen()
			return nil, fmt.Errorf("can't open output file %q: %w", path, err)
		}
	}

	if err := f.checkFormat(); err != nil {
		f.abortOpen()
		return nil, fmt.Errorf("bad format for output file %q: %w", path, err)
	}
	return f, nil
}

// Read fills buf with samples via the handler's read callback. A short
// count without error means end of stream. A handler returning more than
// requested is treated as having returned nothing.
func (f *Stream) Read(buf []Sample) (int, error) {
	if f.handler.Read == nil {
		return 0, fmt.Errorf("file type %q isn't readable: %w", f.filetype, ErrUnsupported)
	}
	n, err := f.handler.Read(f, buf)
	if n > len(buf) {
		n = 0
	}
	return n, err
}

// Write sends buf through the handler's write callback and accounts the
// samples actually written.
func (f *Stream) Write(buf []Sample) (int, error) {
	if f.handler.Write == nil {
		return 0, fmt.Errorf("file type %q isn't writable: %w", f.filetype, ErrUnsupported)
	}
	n, err := f.handler.Write(f, buf)
	if n > len(buf) {
		n = 0
	}
	f.olength += uint64(n)
	return n, err
}

// Seek positions the stream at the given sample offset. Only io.SeekStart
// is supported, and only on seekable streams whose handler implements
// seeking.
func (f *Stream) Seek(offset int64, whence int) error {
	if whence != io.SeekStart {
		return fmt.Errorf("seek whence %d: %w", whence, ErrUnsupported)
	}
	if !f.seekable || f.handler.Seek == nil {
		return fmt.Errorf("can't seek in %q: %w", f.filename, ErrUnsupported)
	}
	return f.handler.Seek(f, offset)
}

// Close tears the stream down. Write streams whose handler requires a
// header rewrite are rewound and restarted when the actual length differs
// from the declared one. Handler callback errors are returned, but the
// transport handle and any stdin/stdout claim are always released.
func (f *Stream) Close() error {
	var cbErr error

	if f.mode == Reading {
		if f.handler.StopRead != nil {
			cbErr = f.handler.StopRead(f)
		}
	} else if f.handler.Flags&FlagRewind != 0 {
		if f.olength != f.length && f.seekable {
			if err := f.TransportSeek(0, io.SeekStart); err != nil {
				cbErr = err
			} else if f.handler.StopWrite != nil {
				cbErr = f.handler.StopWrite(f)
			} else if f.handler.StartWrite != nil {
				cbErr = f.handler.StartWrite(f)
			}
		}
	} else if f.handler.StopWrite != nil {
		cbErr = f.handler.StopWrite(f)
	}

	return errors.Join(cbErr, f.teardown())
}

// abortOpen releases everything a failed open has acquired.
func (f *Stream) abortOpen() {
	_ = f.teardown()
}

func (f *Stream) teardown() error {
	var err error
	if f.w != nil {
		err = f.w.Flush()
		f.w = nil
	}
	if f.file != nil {
		if f.usingStd {
			if f.mode == Reading {
				f.ctx.releaseStdin()
			} else {
				f.ctx.releaseStdout()
			}
		} else if cerr := f.file.Close(); err == nil {
			err = cerr
		}
		f.file = nil
	}
	f.r = nil
	f.Comments = nil
	f.Instrument = nil
	f.Loops = nil
	f.priv = nil
	return err
}

func (f *Stream) checkFormat() error {
	if f.Signal.Rate == 0 {
		return fmt.Errorf("sampling rate was not specified: %w", ErrIncompleteFormat)
	}
	if f.Signal.Precision == 0 {
		return fmt.Errorf("data encoding was not specified: %w", ErrIncompleteFormat)
	}
	return nil
}

func isRegular(fp *os.File) bool {
	st, err := fp.Stat()
	return err == nil && st.Mode().IsRegular()
}
