package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/panelwire/store"
	"github.com/katalvlaran/panelwire/wire"
)

const panelID wire.ObjectID = 0x00182

// backends returns a fresh instance of every Lister under test.
func backends(t *testing.T) map[string]store.Lister {
	t.Helper()
	db, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]store.Lister{
		"Memory": store.NewMemory(),
		"SQLite": db,
	}
}

// TestStorage_Contract checks absent reads, truncation and the empty sentinel.
func TestStorage_Contract(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, err := st.ReadInt(ctx, panelID, wire.FieldGridSizeX)
			require.NoError(t, err)
			assert.Zero(t, v)
			fs, err := st.ReadFloats(ctx, panelID, wire.FieldDotPositions, 4)
			require.NoError(t, err)
			assert.Empty(t, fs)

			require.NoError(t, st.WriteInt(ctx, panelID, wire.FieldGridSizeX, 5))
			require.NoError(t, st.WriteFloat(ctx, panelID, wire.FieldPathWidthScale, 0.6))
			require.NoError(t, st.WriteInts(ctx, panelID, wire.FieldDotFlags, []int32{1, 2, 3, 4}))
			require.NoError(t, st.WriteFloats(ctx, panelID, wire.FieldDotPositions, []float32{0.1, 0.2, 0.9}))

			v, err = st.ReadInt(ctx, panelID, wire.FieldGridSizeX)
			require.NoError(t, err)
			assert.Equal(t, int32(5), v)
			f, err := st.ReadFloat(ctx, panelID, wire.FieldPathWidthScale)
			require.NoError(t, err)
			assert.Equal(t, float32(0.6), f)

			is, err := st.ReadInts(ctx, panelID, wire.FieldDotFlags, 2)
			require.NoError(t, err)
			assert.Equal(t, []int32{1, 2}, is)
			fs, err = st.ReadFloats(ctx, panelID, wire.FieldDotPositions, 10)
			require.NoError(t, err)
			assert.Equal(t, []float32{0.1, 0.2, 0.9}, fs)

			require.NoError(t, st.WriteInts(ctx, panelID, wire.FieldDotFlags, nil))
			is, err = st.ReadInts(ctx, panelID, wire.FieldDotFlags, 4)
			require.NoError(t, err)
			assert.Empty(t, is)

			_, err = st.ReadInts(ctx, panelID, wire.FieldDotFlags, -1)
			assert.ErrorIs(t, err, store.ErrNegativeCount)

			ids, err := st.Objects(ctx)
			require.NoError(t, err)
			assert.Equal(t, []wire.ObjectID{panelID}, ids)
		})
	}
}

// TestStorage_ScalarAsArray verifies a scalar reads back as a one-element array.
func TestStorage_ScalarAsArray(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.WriteInt(ctx, panelID, wire.FieldNumDots, 7))
			is, err := st.ReadInts(ctx, panelID, wire.FieldNumDots, 3)
			require.NoError(t, err)
			assert.Equal(t, []int32{7}, is)
		})
	}
}

// TestStorage_PanelRoundTrip moves a whole panel through wire.Store and wire.Load.
func TestStorage_PanelRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := &wire.Panel{
		GridSizeX:      2,
		GridSizeY:      2,
		Style:          wire.HasStones,
		PathWidthScale: 0.8,
		NeedsRedraw:    true,
		Positions:      []float32{0.1, 0.1, 0.9, 0.1, 0.1, 0.9, 0.9, 0.9},
		Flags:          []wire.PointFlag{wire.Intersection, wire.Intersection, wire.Intersection | wire.Startpoint, wire.Intersection},
		Connections:    []wire.Connection{{A: 0, B: 1}, {A: 0, B: 2}, {A: 1, B: 3}, {A: 2, B: 3}},
		Decorations:    []int32{0x101},
		ColoredRegions: []int32{0, 1, 2, 0},
	}
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, wire.Store(ctx, st, panelID, p))
			got, err := wire.Load(ctx, st, panelID)
			require.NoError(t, err)
			assert.Equal(t, p.Positions, got.Positions)
			assert.Equal(t, p.Flags, got.Flags)
			assert.Equal(t, p.Connections, got.Connections)
			assert.Equal(t, p.Decorations, got.Decorations)
			assert.Equal(t, p.ColoredRegions, got.ColoredRegions)
			assert.Equal(t, p.Style, got.Style)
			assert.Equal(t, p.PathWidthScale, got.PathWidthScale)
			assert.True(t, got.NeedsRedraw)
			assert.Nil(t, got.Reflection)
			assert.Nil(t, got.SymbolColors)
		})
	}
}

// TestMemory_Concurrent hammers one Memory from several goroutines.
func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id wire.ObjectID) {
			defer wg.Done()
			for j := int32(0); j < 100; j++ {
				_ = m.WriteInt(ctx, id, wire.FieldGridSizeX, j)
				_, _ = m.ReadInt(ctx, id, wire.FieldGridSizeX)
			}
		}(wire.ObjectID(i + 1))
	}
	wg.Wait()
	ids, err := m.Objects(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 8)

	m.Delete(3)
	ids, _ = m.Objects(ctx)
	assert.NotContains(t, ids, wire.ObjectID(3))
}

// TestSQL_Closed verifies every call after Close fails with ErrClosed.
func TestSQL_Closed(t *testing.T) {
	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	assert.Equal(t, store.SQLite, db.Dialect())
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	_, err = db.ReadInt(ctx, panelID, wire.FieldGridSizeX)
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, db.WriteInt(ctx, panelID, wire.FieldGridSizeX, 1), store.ErrClosed)
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := store.Open(context.Background(), "mysql", "")
	assert.ErrorIs(t, err, store.ErrUnknownDialect)
}
