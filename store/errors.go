// SPDX-License-Identifier: MIT

package store

import "errors"

var (
	// ErrClosed indicates the store was used after Close.
	ErrClosed = errors.New("store: closed")

	// ErrNegativeCount indicates ReadInts or ReadFloats was asked for fewer than zero values.
	ErrNegativeCount = errors.New("store: negative count")

	// ErrUnknownDialect indicates an SQL dialect other than sqlite or postgres.
	ErrUnknownDialect = errors.New("store: unknown dialect")
)
