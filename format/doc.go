// SPDX-License-Identifier: EPL-2.0

// Package format is the stream-format layer: it resolves a concrete
// on-disk format for a path, negotiates a fully-specified signal and
// encoding description against that format's declared capabilities, and
// exposes typed, endianness-correct binary read/write primitives over the
// open stream.
//
// A Context owns the handler registry and the process's stdin/stdout
// claims:
//
//	ctx := format.NewContext(format.WithLogger(log))
//	ctx.Register(wav.Format())
//
//	in, err := ctx.OpenRead("song.wav", nil, nil, "")
//	if err != nil { ... }
//	defer in.Close()
//
//	buf := make([]format.Sample, 4096)
//	n, err := in.Read(buf)
//
// Format types are resolved by explicit type name, then magic-byte
// sniffing (seekable streams only), then file extension. Write opens
// negotiate the requested rate, channel count, encoding and depth down to
// a combination the handler declares; mismatches are substituted with a
// warning, never rejected.
//
// Concrete formats live in the formats/ subpackages and are plain Handler
// values; the registry accepts externally-constructed handlers as long as
// their ABI version tag matches the library's major version.
package format
