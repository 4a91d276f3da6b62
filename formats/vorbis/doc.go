// SPDX-License-Identifier: EPL-2.0

// Package vorbis reads Ogg Vorbis audio.
//
// This package uses github.com/jfreymuth/oggvorbis to decode; Vorbis
// comment headers are surfaced as stream comments. Writing is not
// supported.
package vorbis
