// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/wen501271303/sox/format"
)

// Format returns the read-only handler for Ogg Vorbis streams, decoded
// with github.com/jfreymuth/oggvorbis.
func Format() format.Handler {
	return format.Handler{
		Names:      []string{"vorbis", "ogg"},
		Extensions: []string{"ogg", "oga", "vorbis"},
		Version:    format.Version,
		StartRead:  startRead,
		Read:       read,
		Seek:       seek,
	}
}

type priv struct {
	dec *oggvorbis.Reader
	buf []float32
}

func startRead(f *format.Stream) error {
	dec, err := oggvorbis.NewReader(format.NewTransport(f))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotVorbis, err)
	}

	f.Encoding.Encoding = format.EncodingVorbis
	f.Encoding.BitsPerSample = 0
	f.Signal.Rate = float64(dec.SampleRate())
	f.Signal.Channels = uint(dec.Channels())
	for _, c := range dec.CommentHeader().Comments {
		f.Comments = append(f.Comments, c)
	}
	if n := dec.Length(); n > 0 {
		f.SetDeclaredLength(uint64(n) * uint64(dec.Channels()))
	}
	f.SetPriv(&priv{dec: dec})
	return nil
}

func read(f *format.Stream, buf []format.Sample) (int, error) {
	p, _ := f.Priv().(*priv)
	ch := int(f.Signal.Channels)
	if ch == 0 {
		ch = 1
	}
	// The decoder hands back whole frames only.
	want := len(buf) / ch * ch
	if want == 0 {
		return 0, nil
	}
	if cap(p.buf) < want {
		p.buf = make([]float32, want)
	}
	n, err := p.dec.Read(p.buf[:want])
	for i := 0; i < n; i++ {
		buf[i] = format.SampleFromFloat64(float64(p.buf[i]))
	}
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	if n > 0 && err == io.EOF {
		err = nil
	}
	return n, err
}

func seek(f *format.Stream, offset int64) error {
	p, _ := f.Priv().(*priv)
	ch := int64(f.Signal.Channels)
	if ch == 0 {
		ch = 1
	}
	return p.dec.SetPosition(offset / ch)
}
