// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/wen501271303/sox/format"
)

// Format returns the handler for Apple/SGI AIFF files, big-endian signed
// PCM in an IFF container. Parsing is delegated to github.com/go-audio/aiff.
func Format() format.Handler {
	return format.Handler{
		Names:      []string{"aiff", "aif", "aifc"},
		Extensions: []string{"aiff", "aif", "aifc"},
		Flags:      format.FlagEndian | format.FlagEndianBig,
		Version:    format.Version,
		WriteFormats: []format.FormatSpec{
			{Encoding: format.EncodingSigned, Bits: []uint{8, 16, 24, 32}},
		},
		StartRead:  startRead,
		Read:       read,
		StartWrite: startWrite,
		StopWrite:  stopWrite,
		Write:      write,
	}
}

type priv struct {
	dec *goaiff.Decoder
	enc *goaiff.Encoder
	buf *goaudio.IntBuffer
}

func getPriv(f *format.Stream) *priv {
	p, _ := f.Priv().(*priv)
	if p == nil {
		p = &priv{}
		f.SetPriv(p)
	}
	return p
}

func (p *priv) intBuf(f *format.Stream, n int) *goaudio.IntBuffer {
	if p.buf == nil || cap(p.buf.Data) < n {
		p.buf = &goaudio.IntBuffer{
			Data: make([]int, n),
			Format: &goaudio.Format{
				NumChannels: int(f.Signal.Channels),
				SampleRate:  int(f.Signal.Rate),
			},
			SourceBitDepth: int(f.Encoding.BitsPerSample),
		}
	}
	p.buf.Data = p.buf.Data[:n]
	return p.buf
}

func startRead(f *format.Stream) error {
	var rs io.ReadSeeker = format.NewTransport(f)
	if !f.Seekable() {
		data, err := io.ReadAll(rs)
		if err != nil {
			return err
		}
		rs = bytes.NewReader(data)
	}
	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return ErrNotAIFF
	}
	dec.ReadInfo()
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedEncoding, dec.BitDepth)
	}
	f.Encoding.Encoding = format.EncodingSigned
	f.Encoding.BitsPerSample = uint(dec.BitDepth)
	f.Signal.Rate = float64(dec.SampleRate)
	f.Signal.Channels = uint(dec.NumChans)
	if dec.NumSampleFrames > 0 {
		f.SetDeclaredLength(uint64(dec.NumSampleFrames) * uint64(dec.NumChans))
	}
	getPriv(f).dec = dec
	return nil
}

func read(f *format.Stream, buf []format.Sample) (int, error) {
	p := getPriv(f)
	ib := p.intBuf(f, len(buf))
	n, err := p.dec.PCMBuffer(ib)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		v := ib.Data[i]
		switch f.Encoding.BitsPerSample {
		case 8:
			buf[i] = format.SampleFromInt8(int8(v))
		case 16:
			buf[i] = format.SampleFromInt16(int16(v))
		case 24:
			buf[i] = format.SampleFromInt24(int32(v))
		default:
			buf[i] = format.SampleFromInt32(int32(v))
		}
	}
	return n, err
}

func startWrite(f *format.Stream) error {
	if !f.Seekable() {
		return fmt.Errorf("%w: AIFF write requires a seekable stream", format.ErrUnsupported)
	}
	getPriv(f).enc = goaiff.NewEncoder(format.NewTransport(f),
		int(f.Signal.Rate), int(f.Encoding.BitsPerSample), int(f.Signal.Channels))
	return nil
}

func write(f *format.Stream, buf []format.Sample) (int, error) {
	p := getPriv(f)
	ib := p.intBuf(f, len(buf))
	for i, s := range buf {
		switch f.Encoding.BitsPerSample {
		case 8:
			ib.Data[i] = int(format.SampleToInt8(s))
		case 16:
			ib.Data[i] = int(format.SampleToInt16(s))
		case 24:
			ib.Data[i] = int(format.SampleToInt24(s))
		default:
			ib.Data[i] = int(format.SampleToInt32(s))
		}
	}
	if err := p.enc.Write(ib); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func stopWrite(f *format.Stream) error {
	p := getPriv(f)
	if p.enc == nil {
		return nil
	}
	return p.enc.Close()
}
