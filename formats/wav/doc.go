// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes Microsoft RIFF/WAVE files.
//
// It uses the github.com/go-audio library for robust WAV file handling;
// linear PCM at 8 (unsigned), 16, 24 and 32 bits is supported in both
// directions. Reading a non-seekable stream buffers the file in memory,
// and writing requires a seekable stream so the chunk sizes can be
// patched on close.
package wav
