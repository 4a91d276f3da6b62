// SPDX-License-Identifier: EPL-2.0

package format

import "io"

// Transport adapts a stream's byte transport to the standard io
// interfaces, for handlers that delegate parsing to codec libraries.
// Seek fails on non-seekable streams.
type Transport struct {
	f   *Stream
	pos int64
}

// NewTransport returns an io.Reader/io.Writer/io.Seeker view of the
// stream's transport.
func NewTransport(f *Stream) *Transport {
	return &Transport{f: f}
}

func (t *Transport) Read(p []byte) (int, error) {
	if t.f.r == nil {
		return 0, io.EOF
	}
	n, err := t.f.r.Read(p)
	t.pos += int64(n)
	return n, err
}

func (t *Transport) Write(p []byte) (int, error) {
	n, err := t.f.WriteBytes(p)
	t.pos += int64(n)
	return n, err
}

func (t *Transport) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		if err := t.f.TransportSeek(offset, io.SeekStart); err != nil {
			return 0, err
		}
		t.pos = offset
	case io.SeekCurrent:
		if offset == 0 {
			return t.pos, nil
		}
		if err := t.f.TransportSeek(t.pos+offset, io.SeekStart); err != nil {
			return 0, err
		}
		t.pos += offset
	case io.SeekEnd:
		if t.f.file == nil || !t.f.seekable {
			return 0, ErrUnsupported
		}
		if t.f.w != nil {
			if err := t.f.w.Flush(); err != nil {
				return 0, err
			}
		}
		end, err := t.f.file.Seek(offset, io.SeekEnd)
		if err != nil {
			return 0, err
		}
		if t.f.r != nil {
			t.f.r.Reset(t.f.file)
		}
		if t.f.w != nil {
			t.f.w.Reset(t.f.file)
		}
		t.pos = end
	default:
		return 0, ErrUnsupported
	}
	return t.pos, nil
}
