// SPDX-License-Identifier: EPL-2.0

package format

import (
	"encoding/binary"

	"go.uber.org/zap"
)

var nativeBigEndian = binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234

// applyEndianness resolves the stream's byte, bit and nibble order from
// caller overrides and the handler's declared behavior. It runs exactly
// once per stream, before any header is parsed or written, and leaves no
// tri-state field unset. A warning is emitted whenever a caller override
// contradicts what the handler (or the machine) implies.
func (f *Stream) applyEndianness() {
	fixed := f.handler.Flags&FlagEndian != 0
	// reverseForFile is the byte swap needed to match the handler's
	// declared order on this machine.
	reverseForFile := f.handler.Flags&FlagEndianBig != 0 != nativeBigEndian

	if f.Encoding.OppositeEndian {
		if fixed {
			f.Encoding.ReverseBytes = optionFromBool(!reverseForFile)
		} else {
			f.Encoding.ReverseBytes = OptionYes
		}
	} else if f.Encoding.ReverseBytes == OptionDefault {
		if fixed {
			f.Encoding.ReverseBytes = optionFromBool(reverseForFile)
		} else {
			f.Encoding.ReverseBytes = OptionNo
		}
	}

	if fixed {
		if (f.Encoding.ReverseBytes == OptionYes) != reverseForFile {
			f.ctx.log.Warn("overriding file-type byte-order",
				zap.String("file", f.filename))
		}
	} else if f.Encoding.ReverseBytes == OptionYes {
		f.ctx.log.Warn("overriding machine byte-order",
			zap.String("file", f.filename))
	}

	bitDefault := f.handler.Flags&FlagBitRev != 0
	if f.Encoding.ReverseBits == OptionDefault {
		f.Encoding.ReverseBits = optionFromBool(bitDefault)
	} else if (f.Encoding.ReverseBits == OptionYes) != bitDefault {
		f.ctx.log.Warn("overriding file-type bit-order",
			zap.String("file", f.filename))
	}

	nibDefault := f.handler.Flags&FlagNibRev != 0
	if f.Encoding.ReverseNibbles == OptionDefault {
		f.Encoding.ReverseNibbles = optionFromBool(nibDefault)
	} else if (f.Encoding.ReverseNibbles == OptionYes) != nibDefault {
		f.ctx.log.Warn("overriding file-type nibble-order",
			zap.String("file", f.filename))
	}
}
