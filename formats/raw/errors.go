// SPDX-License-Identifier: EPL-2.0

package raw

import "errors"

var (
	ErrRateRequired        = errors.New("sample rate must be specified for raw data")
	ErrEncodingRequired    = errors.New("data encoding must be specified for raw data")
	ErrUnsupportedEncoding = errors.New("unsupported encoding for raw data")
)
