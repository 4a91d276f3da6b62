// SPDX-License-Identifier: EPL-2.0

package format

// Encoding identifies a codec family. The order is significant: everything
// before encodingLossless preserves exact sample values, everything after
// it does not, and the encoding negotiator uses that boundary as a
// tie-break.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingSigned           // signed linear PCM
	EncodingUnsigned         // unsigned linear PCM
	EncodingFloat            // IEEE floating point
	EncodingFLAC
	EncodingHCOM

	encodingLossless // lossless/lossy boundary

	EncodingULaw
	EncodingALaw
	EncodingCLADPCM
	EncodingCLADPCM16
	EncodingMSADPCM
	EncodingIMAADPCM
	EncodingOKIADPCM
	EncodingGSM
	EncodingMP3
	EncodingVorbis
	EncodingAMRWB
	EncodingAMRNB
)

// Lossless reports whether the encoding preserves exact sample values.
func (e Encoding) Lossless() bool {
	return e > EncodingUnknown && e < encodingLossless
}

var encodingNames = map[Encoding]string{
	EncodingSigned:    "signed-integer",
	EncodingUnsigned:  "unsigned-integer",
	EncodingFloat:     "floating-point",
	EncodingFLAC:      "FLAC",
	EncodingHCOM:      "HCOM",
	EncodingULaw:      "u-law",
	EncodingALaw:      "a-law",
	EncodingCLADPCM:   "CL-ADPCM",
	EncodingCLADPCM16: "CL-ADPCM-16",
	EncodingMSADPCM:   "MS-ADPCM",
	EncodingIMAADPCM:  "IMA-ADPCM",
	EncodingOKIADPCM:  "OKI-ADPCM",
	EncodingGSM:       "GSM",
	EncodingMP3:       "MP3",
	EncodingVorbis:    "Vorbis",
	EncodingAMRWB:     "AMR-WB",
	EncodingAMRNB:     "AMR-NB",
}

func (e Encoding) String() string {
	if s, ok := encodingNames[e]; ok {
		return s
	}
	return "unknown"
}

// Precision returns the bits of genuine dynamic range an encoding/depth
// pair can represent, or 0 if the pair is invalid. It is a pure function;
// the encoding negotiator relies on that.
func Precision(e Encoding, bits uint) uint {
	switch e {
	case EncodingSigned:
		if bits >= 1 && bits <= 32 {
			return bits
		}
	case EncodingUnsigned:
		if bits >= 1 && bits <= 32 {
			return bits
		}
	case EncodingFloat:
		// Significand width including the implicit leading bit.
		if bits == 32 {
			return 24
		}
		if bits == 64 {
			return 53
		}
	case EncodingFLAC:
		if bits%8 == 0 && bits >= 8 && bits <= 32 {
			return bits
		}
	case EncodingHCOM:
		if bits%8 == 0 && bits >= 8 && bits <= 16 {
			return bits
		}
	case EncodingULaw:
		if bits == 8 {
			return 14
		}
	case EncodingALaw:
		if bits == 8 {
			return 13
		}
	case EncodingCLADPCM:
		if bits != 0 {
			return 8
		}
	case EncodingCLADPCM16:
		if bits == 4 {
			return 13
		}
	case EncodingMSADPCM:
		if bits == 4 {
			return 14
		}
	case EncodingIMAADPCM:
		if bits == 4 {
			return 13
		}
	case EncodingOKIADPCM:
		if bits == 4 {
			return 12
		}
	case EncodingGSM, EncodingMP3, EncodingVorbis, EncodingAMRWB, EncodingAMRNB:
		// Frame-based codecs have no per-sample depth.
		if bits == 0 {
			return 16
		}
	}
	return 0
}
