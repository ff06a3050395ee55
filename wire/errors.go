// SPDX-License-Identifier: MIT

package wire

import "errors"

var (
	// ErrShortArray indicates an array holds fewer elements than its count field declares.
	ErrShortArray = errors.New("wire: array shorter than declared count")

	// ErrNilStorage indicates Load or Store was called without a Storage.
	ErrNilStorage = errors.New("wire: nil storage")

	// ErrNilPanel indicates Store was called with a nil Panel.
	ErrNilPanel = errors.New("wire: nil panel")
)
