// SPDX-License-Identifier: EPL-2.0

package format

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// bitsSentinel is larger than any valid depth; used while searching for
// the smallest acceptable one.
const bitsSentinel = 65

// negotiateOutput reconciles the caller-requested signal and encoding with
// the handler's declared capabilities, producing a fully concrete
// combination. Unsupported requests are substituted, never rejected; each
// substitution is warned about. Negotiating an already-supported
// combination is a no-op.
func (f *Stream) negotiateOutput() {
	f.negotiateRate()
	f.negotiateChannels()
	f.negotiateEncoding()
	if f.Encoding.Encoding != EncodingUnknown {
		if p := Precision(f.Encoding.Encoding, f.Encoding.BitsPerSample); p < f.Signal.Precision {
			f.Signal.Precision = p
		}
	}
}

func (f *Stream) negotiateRate() {
	rates := f.handler.WriteRates
	if len(rates) == 0 {
		if f.Signal.Rate == 0 {
			f.Signal.Rate = DefaultRate
		}
		return
	}
	if f.Signal.Rate == 0 {
		f.Signal.Rate = rates[0]
		return
	}
	for _, r := range rates {
		if r == f.Signal.Rate {
			return
		}
	}
	// No exact match: the smallest listed rate above the request, or the
	// largest listed rate when nothing is above it.
	given := f.Signal.Rate
	var above, max float64
	for _, r := range rates {
		if r > given && (above == 0 || r < above) {
			above = r
		}
		if r > max {
			max = r
		}
	}
	if above != 0 {
		f.Signal.Rate = above
	} else {
		f.Signal.Rate = max
	}
	f.ctx.log.Warn("can't encode at requested rate",
		zap.String("handler", f.handler.name()),
		zap.Float64("requested", given),
		zap.Float64("using", f.Signal.Rate))
}

func (f *Stream) negotiateChannels() {
	if f.handler.Flags&flagChannels == 0 {
		if f.Signal.Channels < 1 {
			f.Signal.Channels = 1
		}
		return
	}
	flags := f.handler.Flags
	given := f.Signal.Channels
	switch {
	case given == 1 && flags&FlagMono == 0:
		if flags&FlagStereo != 0 {
			f.Signal.Channels = 2
		} else {
			f.Signal.Channels = 4
		}
	case given == 2 && flags&FlagStereo == 0:
		if flags&FlagQuad != 0 {
			f.Signal.Channels = 4
		} else {
			f.Signal.Channels = 1
		}
	case given == 4 && flags&FlagQuad == 0:
		if flags&FlagStereo != 0 {
			f.Signal.Channels = 2
		} else {
			f.Signal.Channels = 1
		}
	}
	if f.Signal.Channels != given {
		f.ctx.log.Warn("can't encode requested channel count",
			zap.String("handler", f.handler.name()),
			zap.Uint("requested", given),
			zap.Uint("using", f.Signal.Channels))
	}
}

func (f *Stream) negotiateEncoding() {
	matrix := f.handler.WriteFormats
	if len(matrix) == 0 {
		// No declared restriction: accept the caller's values as-is.
		return
	}
	log := f.ctx.log
	enc := &f.Encoding

	// Caller specified an encoding: require it in the matrix, then pick
	// the best depth for it.
	if enc.Encoding != EncodingUnknown {
		spec := findSpec(matrix, enc.Encoding)
		if spec == nil {
			log.Warn("handler can't encode requested encoding",
				zap.String("handler", f.handler.name()),
				zap.Stringer("encoding", enc.Encoding))
			enc.Encoding = EncodingUnknown
		} else {
			given := enc.BitsPerSample
			var maxP, maxPBits uint
			found := false
			enc.BitsPerSample = bitsSentinel
			for _, s := range spec.Bits {
				if s == given {
					found = true
				}
				if p := Precision(spec.Encoding, s); p >= f.Signal.Precision {
					if s < enc.BitsPerSample {
						enc.BitsPerSample = s
					}
				} else if p > maxP {
					maxP = p
					maxPBits = s
				}
			}
			if enc.BitsPerSample == bitsSentinel {
				enc.BitsPerSample = maxPBits
			}
			if given != 0 {
				if found {
					enc.BitsPerSample = given
				} else {
					log.Warn("handler can't encode requested depth for encoding",
						zap.String("handler", f.handler.name()),
						zap.Stringer("encoding", enc.Encoding),
						zap.Uint("bits", given))
				}
			}
		}
	}

	// Caller specified only a depth: the first-listed encoding offering
	// that exact depth wins.
	if enc.Encoding == EncodingUnknown && enc.BitsPerSample != 0 {
		for i := range matrix {
			if containsBits(matrix[i].Bits, enc.BitsPerSample) {
				enc.Encoding = matrix[i].Encoding
				break
			}
		}
		if enc.Encoding == EncodingUnknown {
			log.Warn("handler can't encode requested depth",
				zap.String("handler", f.handler.name()),
				zap.Uint("bits", enc.BitsPerSample))
			enc.BitsPerSample = 0
		}
	}

	// Neither specified: the smallest lossless depth reaching the
	// requested precision.
	if enc.Encoding == EncodingUnknown {
		enc.BitsPerSample = bitsSentinel
		for i := range matrix {
			e := matrix[i].Encoding
			if !e.Lossless() {
				continue
			}
			for _, s := range matrix[i].Bits {
				if Precision(e, s) >= f.Signal.Precision && s < enc.BitsPerSample {
					enc.Encoding = e
					enc.BitsPerSample = s
				}
			}
		}
		if enc.Encoding != EncodingUnknown {
			return
		}
	}

	// Still nothing: the smallest depth of any encoding reaching the
	// requested precision, or failing that the combination with the
	// globally highest precision. Depth 0 counts here so frame-based
	// codecs are reachable.
	if enc.Encoding == EncodingUnknown {
		var maxP, maxPBits uint
		var maxPEnc Encoding
		for i := range matrix {
			e := matrix[i].Encoding
			for _, s := range append(append([]uint{}, matrix[i].Bits...), 0) {
				if p := Precision(e, s); p >= f.Signal.Precision {
					if s < enc.BitsPerSample {
						enc.Encoding = e
						enc.BitsPerSample = s
					}
				} else if p > maxP {
					maxP = p
					maxPEnc = e
					maxPBits = s
				}
			}
		}
		if enc.Encoding == EncodingUnknown {
			enc.Encoding = maxPEnc
			enc.BitsPerSample = maxPBits
		}
	}
}

func findSpec(matrix []FormatSpec, e Encoding) *FormatSpec {
	for i := range matrix {
		if matrix[i].Encoding == e {
			return &matrix[i]
		}
	}
	return nil
}

func containsBits(bits []uint, b uint) bool {
	for _, s := range bits {
		if s == b {
			return true
		}
	}
	return false
}

// SupportsEncoding reports whether the handler resolved for path (or the
// explicit filetype, when given) declares the exact encoding/depth pair
// for writing. It mutates nothing.
func (c *Context) SupportsEncoding(path, filetype string, encoding *EncodingInfo) bool {
	var h *Handler
	if filetype != "" {
		h = c.FindByName(filetype)
	} else {
		h = c.FindByExtension(fileExtension(path))
	}
	if h == nil || len(h.WriteFormats) == 0 {
		return false
	}
	spec := findSpec(h.WriteFormats, encoding.Encoding)
	return spec != nil && containsBits(spec.Bits, encoding.BitsPerSample)
}

// fileExtension returns the path's extension without the dot, or "".
func fileExtension(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimPrefix(ext, ".")
}
