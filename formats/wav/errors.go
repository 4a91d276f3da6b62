// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWAV              = errors.New("not a RIFF/WAVE file")
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")
)
