package store

import (
	"context"

	"github.com/katalvlaran/panelwire/wire"
)

// Lister is a Storage that can enumerate the objects it holds.
type Lister interface {
	wire.Storage
	Objects(ctx context.Context) ([]wire.ObjectID, error)
}

var (
	_ Lister = (*Memory)(nil)
	_ Lister = (*SQL)(nil)
)
