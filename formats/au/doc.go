// SPDX-License-Identifier: EPL-2.0

// Package au reads and writes Sun/NeXT .au (SND) files: big-endian linear
// PCM, IEEE float and G.711 µ-law/A-law behind a 24-byte header plus
// annotation. Files produced by byte-swapped writers ("dns." magic) are
// read transparently.
package au
