// Package codec converts between the flat wire form of a panel and its grid
// model.
//
// Decode reads a wire.Panel into a grid.Grid; Encode writes one back. Both
// take a PanelContext naming the panel and its quirks. Neither touches
// storage: pair them with wire.Load and wire.Store.
//
//	p, _ := wire.Load(ctx, st, id)
//	g, rep, err := codec.Decode(codec.PanelContext{ID: id}, p)
//	// edit g
//	out, rep, err := codec.Encode(codec.PanelContext{ID: id}, g, codec.WithPrevious(p))
//	err = wire.Store(ctx, st, id, out)
//
// Wire indices are canonical: intersection (x, y) is point
// g.CanonicalIndex(x, y), bottom row first. Endpoints, edge dots, gaps and
// glyph geometry follow in that order.
package codec
