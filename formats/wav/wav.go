// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/wen501271303/sox/format"
)

const wavFormatPCM = 1

// Format returns the handler for Microsoft RIFF/WAVE files. Parsing is
// delegated to github.com/go-audio/wav; the handler maps its integer PCM
// buffers onto the stream's sample space.
func Format() format.Handler {
	return format.Handler{
		Names:      []string{"wav", "wave", "riff"},
		Extensions: []string{"wav"},
		Flags:      format.FlagEndian,
		Version:    format.Version,
		WriteFormats: []format.FormatSpec{
			{Encoding: format.EncodingSigned, Bits: []uint{16, 24, 32}},
			{Encoding: format.EncodingUnsigned, Bits: []uint{8}},
		},
		StartRead:  startRead,
		Read:       read,
		StartWrite: startWrite,
		StopWrite:  stopWrite,
		Write:      write,
	}
}

type priv struct {
	dec *gowav.Decoder
	enc *gowav.Encoder
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

// transportSource returns an io.ReadSeeker over the stream, falling back
// to an in-memory copy when the transport cannot seek.
func transportSource(f *format.Stream) (io.ReadSeeker, error) {
	t := format.NewTransport(f)
	if f.Seekable() {
		return t, nil
	}
	data, err := io.ReadAll(t)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func startRead(f *format.Stream) error {
	rs, err := transportSource(f)
	if err != nil {
		return err
	}
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return ErrNotWAV
	}
	dec.ReadInfo()
	if dec.WavAudioFormat != wavFormatPCM {
		return fmt.Errorf("%w: audio format %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}
	switch dec.BitDepth {
	case 8:
		f.Encoding.Encoding = format.EncodingUnsigned
	case 16, 24, 32:
		f.Encoding.Encoding = format.EncodingSigned
	default:
		return fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedEncoding, dec.BitDepth)
	}
	f.Encoding.BitsPerSample = uint(dec.BitDepth)
	f.Signal.Rate = float64(dec.SampleRate)
	f.Signal.Channels = uint(dec.NumChans)

	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("locating PCM data: %w", err)
	}
	if dec.PCMSize > 0 {
		f.SetDeclaredLength(uint64(dec.PCMSize) * 8 / uint64(dec.BitDepth))
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
	unsigned := f.Encoding.Encoding == format.EncodingUnsigned
	for i := 0; i < n; i++ {
		v := ib.Data[i]
		switch f.Encoding.BitsPerSample {
		case 8:
			if unsigned {
				buf[i] = format.SampleFromUint8(uint8(v))
			} else {
				buf[i] = format.SampleFromInt8(int8(v))
			}
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
		return fmt.Errorf("%w: WAV write requires a seekable stream", format.ErrUnsupported)
	}
	enc := gowav.NewEncoder(format.NewTransport(f),
		int(f.Signal.Rate), int(f.Encoding.BitsPerSample),
		int(f.Signal.Channels), wavFormatPCM)
	if len(f.Comments) > 0 {
		enc.Metadata = &gowav.Metadata{Comments: strings.Join(f.Comments, "\n")}
	}
	getPriv(f).enc = enc
	return nil
}

func write(f *format.Stream, buf []format.Sample) (int, error) {
	p := getPriv(f)
	ib := p.intBuf(f, len(buf))
	unsigned := f.Encoding.Encoding == format.EncodingUnsigned
	for i, s := range buf {
		switch f.Encoding.BitsPerSample {
		case 8:
			if unsigned {
				ib.Data[i] = int(format.SampleToUint8(s))
			} else {
				ib.Data[i] = int(format.SampleToInt8(s))
			}
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

// stopWrite finalizes the RIFF container; the encoder seeks back to patch
// the chunk sizes it could not know up front.
func stopWrite(f *format.Stream) error {
	p := getPriv(f)
	if p.enc == nil {
		return nil
	}
	return p.enc.Close()
}
