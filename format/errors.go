// SPDX-License-Identifier: EPL-2.0

package format

import "errors"

var (
	// ErrUnknownFormat means no stream type could be determined, or no
	// registered handler matched the determined type.
	ErrUnknownFormat = errors.New("unknown file type")

	// ErrUnsupported means the resolved handler lacks the callbacks the
	// requested operation needs, or the operation itself is unavailable
	// on this stream (e.g. seeking a pipe).
	ErrUnsupported = errors.New("operation not supported")

	// ErrAlreadyInUse means stdin or stdout is already bound to another
	// open stream.
	ErrAlreadyInUse = errors.New("already in use")

	// ErrIncompleteFormat means rate or precision was still unset after
	// negotiation and the handler's start callback.
	ErrIncompleteFormat = errors.New("incomplete format")

	// ErrPrematureEnd means a scalar read hit end of input with no other
	// error recorded.
	ErrPrematureEnd = errors.New("premature EOF")

	// ErrPermissionDenied means the caller's overwrite predicate refused
	// to replace an existing file.
	ErrPermissionDenied = errors.New("permission to overwrite denied")
)
