// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	id3v2 "github.com/bogem/id3v2/v2"
	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/wen501271303/sox/format"
)

// Format returns the read-only handler for MPEG layer III streams,
// decoded with github.com/hajimehoshi/go-mp3. The decoder always emits
// 16-bit little-endian stereo PCM regardless of the source layout.
func Format() format.Handler {
	return format.Handler{
		Names:      []string{"mp3", "mp2", "audio/mpeg"},
		Extensions: []string{"mp3", "mp2"},
		Version:    format.Version,
		StartRead:  startRead,
		Read:       read,
		Seek:       seek,
	}
}

type priv struct {
	dec *gomp3.Decoder
	buf []byte
}

func startRead(f *format.Stream) error {
	t := format.NewTransport(f)

	// ID3v2 tags sit ahead of the first audio frame; pull the common
	// ones into comments when the transport can rewind afterwards.
	var comments []string
	if f.Seekable() {
		if tag, err := id3v2.ParseReader(t, id3v2.Options{Parse: true}); err == nil && tag != nil {
			comments = tagComments(tag)
		}
		if err := f.TransportSeek(0, io.SeekStart); err != nil {
			return err
		}
		t = format.NewTransport(f)
	}

	dec, err := gomp3.NewDecoder(t)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotMP3, err)
	}

	f.Encoding.Encoding = format.EncodingMP3
	f.Encoding.BitsPerSample = 0
	f.Signal.Rate = float64(dec.SampleRate())
	f.Signal.Channels = 2
	f.Comments = append(f.Comments, comments...)
	if n := dec.Length(); n > 0 {
		f.SetDeclaredLength(uint64(n) / 2)
	}
	f.SetPriv(&priv{dec: dec})
	return nil
}

func tagComments(tag *id3v2.Tag) []string {
	var out []string
	add := func(key, val string) {
		if val != "" {
			out = append(out, key+"="+val)
		}
	}
	add("Title", tag.Title())
	add("Artist", tag.Artist())
	add("Album", tag.Album())
	add("Year", tag.Year())
	add("Genre", tag.Genre())
	return out
}

func read(f *format.Stream, buf []format.Sample) (int, error) {
	p, _ := f.Priv().(*priv)
	want := len(buf) * 2
	if cap(p.buf) < want {
		p.buf = make([]byte, want)
	}
	n, err := io.ReadFull(p.dec, p.buf[:want])
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(uint16(p.buf[2*i]) | uint16(p.buf[2*i+1])<<8)
		buf[i] = format.SampleFromInt16(v)
	}
	if samples == 0 && err == nil {
		return 0, io.EOF
	}
	if samples > 0 && err == io.EOF {
		err = nil
	}
	return samples, err
}

// seek positions the decoder at a decoded-sample offset; go-mp3 exposes
// the decoded stream as a seekable byte sequence of 16-bit samples.
func seek(f *format.Stream, offset int64) error {
	p, _ := f.Priv().(*priv)
	_, err := p.dec.Seek(offset*2, io.SeekStart)
	return err
}
