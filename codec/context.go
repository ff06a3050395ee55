// SPDX-License-Identifier: MIT

package codec

import (
	"cmp"
	"errors"
	"log"
	"slices"
	"sync"

	"github.com/katalvlaran/panelwire/wire"
)

// Sentinel errors.
var (
	// ErrGridConsumed indicates a second Encode of the same grid.
	ErrGridConsumed = errors.New("codec: grid already encoded")
	// ErrNilGrid indicates Encode was handed no grid.
	ErrNilGrid = errors.New("codec: nil grid")
	// ErrNoPoints indicates a panel with fewer points than its canonical set.
	ErrNoPoints = errors.New("codec: panel has too few points")
	// ErrNoPrevious indicates a decorations-only encode without previous state.
	ErrNoPrevious = errors.New("codec: decorations-only encode needs the previous panel")
)

// DefaultMaxDimension bounds the grid size trusted from GridSizeX/GridSizeY.
const DefaultMaxDimension = 30

// Panels with known quirks.
var (
	// DefaultNoSymmetryIDs always get their reflection table cleared when
	// encoded without symmetry.
	DefaultNoSymmetryIDs = []wire.ObjectID{0x01D3F, 0x00076}
	// DefaultSideExitIDs place their exits on the side columns.
	DefaultSideExitIDs = []wire.ObjectID{0x033D4, 0x0A3B5}
)

// PanelContext carries the identity and quirks of one Decode or Encode call.
// The zero value, apart from ID, is usable: empty lists fall back to the
// defaults above and a nil Logger is silent.
type PanelContext struct {
	ID           wire.ObjectID
	Logger       *log.Logger
	MaxDimension int

	NoSymmetryIDs []wire.ObjectID
	SideExitIDs   []wire.ObjectID
}

func (c PanelContext) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf("panel %s: "+format, append([]any{c.ID}, args...)...)
	}
}

func (c PanelContext) maxDimension() int {
	if c.MaxDimension > 0 {
		return c.MaxDimension
	}
	return DefaultMaxDimension
}

func (c PanelContext) noSymmetry() bool {
	ids := c.NoSymmetryIDs
	if ids == nil {
		ids = DefaultNoSymmetryIDs
	}
	return slices.Contains(ids, c.ID)
}

func (c PanelContext) sideExits() bool {
	ids := c.SideExitIDs
	if ids == nil {
		ids = DefaultSideExitIDs
	}
	return slices.Contains(ids, c.ID)
}

// Report counts the irregularities a call tolerated.
type Report struct {
	// DimensionFallback is set when the declared size was unusable and the
	// grid was inferred from the point count.
	DimensionFallback bool `json:"dimensionFallback,omitempty"`
	// SymmetryGuessed is set when no family reproduced the reflection table
	// and the first-entry heuristic was used.
	SymmetryGuessed bool `json:"symmetryGuessed,omitempty"`

	IgnoredConnections int `json:"ignoredConnections,omitempty"`
	FakeGaps           int `json:"fakeGaps,omitempty"`
	GlyphPoints        int `json:"glyphPoints,omitempty"`
	OrphanEndpoints    int `json:"orphanEndpoints,omitempty"`
	ExtraDecorations   int `json:"extraDecorations,omitempty"`

	SkippedEndpoints int `json:"skippedEndpoints,omitempty"`
	SkippedBreaks    int `json:"skippedBreaks,omitempty"`
	FailedGlyphs     int `json:"failedGlyphs,omitempty"`
}

// CustomPanel is one Registry entry.
type CustomPanel struct {
	ID          wire.ObjectID `json:"id"`
	PillarWidth int           `json:"pillarWidth"`
}

// Registry collects the panels whose decorations need the custom glyph
// renderer. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	panels map[wire.ObjectID]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{panels: make(map[wire.ObjectID]int)}
}

// Record marks id, remembering its pillar width (0 when flat). Recording an
// id again replaces the width.
func (r *Registry) Record(id wire.ObjectID, pillarWidth int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panels == nil {
		r.panels = make(map[wire.ObjectID]int)
	}
	r.panels[id] = pillarWidth
}

// Forget drops id.
func (r *Registry) Forget(id wire.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.panels, id)
}

// Len returns the number of recorded panels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.panels)
}

// List returns the entries ordered by id.
func (r *Registry) List() []CustomPanel {
	r.mu.RLock()
	out := make([]CustomPanel, 0, len(r.panels))
	for id, w := range r.panels {
		out = append(out, CustomPanel{ID: id, PillarWidth: w})
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b CustomPanel) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
