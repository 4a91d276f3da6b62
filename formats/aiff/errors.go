// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAIFF             = errors.New("not an AIFF file")
	ErrUnsupportedEncoding = errors.New("unsupported AIFF encoding")
)
