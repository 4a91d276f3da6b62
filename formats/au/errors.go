// SPDX-License-Identifier: EPL-2.0

package au

import "errors"

var (
	ErrBadHeader           = errors.New("bad AU header")
	ErrUnsupportedEncoding = errors.New("unsupported AU encoding")
)
