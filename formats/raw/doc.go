// SPDX-License-Identifier: EPL-2.0

// Package raw reads and writes headerless PCM streams: signed or unsigned
// linear at 8, 16, 24 or 32 bits, and IEEE float at 32 or 64 bits. With no
// header to consult, byte order follows the machine unless the caller
// overrides it, and reading requires an explicit sample rate and encoding.
package raw
