// SPDX-License-Identifier: EPL-2.0

// Package mp3 reads MPEG layer III audio.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files and
// github.com/bogem/id3v2 to surface ID3v2 tags as stream comments.
// Writing is not supported.
package mp3
