// SPDX-License-Identifier: EPL-2.0

// Package sox opens, inspects and converts audio files across formats.
//
// The heavy lifting lives in the format subpackage; this package wires
// the built-in format handlers into a ready-to-use context and adds
// playlist expansion:
//
//	ctx := sox.NewContext()
//	in, err := ctx.OpenRead("song.ogg", nil, nil, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer in.Close()
//
// Supported formats are WAV, AIFF, AU/SND, MP3 (read), Ogg Vorbis
// (read), headerless raw PCM, and the null bit bucket.
package sox
