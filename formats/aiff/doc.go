// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes Apple/SGI AIFF files.
//
// This package uses github.com/go-audio/aiff for container parsing.
// Signed PCM at 8, 16, 24 and 32 bits is supported; writing requires a
// seekable stream so the IFF chunk sizes can be patched on close.
package aiff
