// SPDX-License-Identifier: EPL-2.0

package sox

import (
	"github.com/wen501271303/sox/format"
	"github.com/wen501271303/sox/formats/aiff"
	"github.com/wen501271303/sox/formats/au"
	"github.com/wen501271303/sox/formats/mp3"
	"github.com/wen501271303/sox/formats/null"
	"github.com/wen501271303/sox/formats/raw"
	"github.com/wen501271303/sox/formats/vorbis"
	"github.com/wen501271303/sox/formats/wav"
)

// NewContext returns a format context with every built-in format handler
// registered, in magic-detection priority order.
func NewContext(opts ...format.ContextOption) *format.Context {
	c := format.NewContext(opts...)
	for _, h := range []format.Handler{
		wav.Format(),
		aiff.Format(),
		au.Format(),
		mp3.Format(),
		vorbis.Format(),
		raw.Format(),
		null.Format(),
	} {
		c.Register(h)
	}
	return c
}
