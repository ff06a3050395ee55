package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/panelwire/wire"
)

type key struct {
	id wire.ObjectID
	f  wire.Field
}

// slot holds whichever representation was written last.
type slot struct {
	ints   []int32
	floats []float32
}

// Memory is an in-process wire.Storage. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	fields map[key]slot
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory { return &Memory{fields: make(map[key]slot)} }

func (m *Memory) get(id wire.ObjectID, f wire.Field) slot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fields[key{id, f}]
}

func (m *Memory) put(id wire.ObjectID, f wire.Field, s slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fields == nil {
		m.fields = make(map[key]slot)
	}
	m.fields[key{id, f}] = s
}

// ReadInt implements wire.Storage.
func (m *Memory) ReadInt(_ context.Context, id wire.ObjectID, f wire.Field) (int32, error) {
	vs := m.get(id, f).asInts()
	if len(vs) == 0 {
		return 0, nil
	}
	return vs[0], nil
}

// ReadFloat implements wire.Storage.
func (m *Memory) ReadFloat(_ context.Context, id wire.ObjectID, f wire.Field) (float32, error) {
	vs := m.get(id, f).asFloats()
	if len(vs) == 0 {
		return 0, nil
	}
	return vs[0], nil
}

// ReadInts implements wire.Storage.
func (m *Memory) ReadInts(_ context.Context, id wire.ObjectID, f wire.Field, n int) ([]int32, error) {
	if n < 0 {
		return nil, fmt.Errorf("Memory.ReadInts(%s, %s, %d): %w", id, f, n, ErrNegativeCount)
	}
	vs := m.get(id, f).asInts()
	return append([]int32{}, vs[:min(n, len(vs))]...), nil
}

// ReadFloats implements wire.Storage.
func (m *Memory) ReadFloats(_ context.Context, id wire.ObjectID, f wire.Field, n int) ([]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("Memory.ReadFloats(%s, %s, %d): %w", id, f, n, ErrNegativeCount)
	}
	vs := m.get(id, f).asFloats()
	return append([]float32{}, vs[:min(n, len(vs))]...), nil
}

// WriteInt implements wire.Storage.
func (m *Memory) WriteInt(_ context.Context, id wire.ObjectID, f wire.Field, v int32) error {
	m.put(id, f, slot{ints: []int32{v}})
	return nil
}

// WriteFloat implements wire.Storage.
func (m *Memory) WriteFloat(_ context.Context, id wire.ObjectID, f wire.Field, v float32) error {
	m.put(id, f, slot{floats: []float32{v}})
	return nil
}

// WriteInts implements wire.Storage.
func (m *Memory) WriteInts(_ context.Context, id wire.ObjectID, f wire.Field, vs []int32) error {
	m.put(id, f, slot{ints: append([]int32{}, vs...)})
	return nil
}

// WriteFloats implements wire.Storage.
func (m *Memory) WriteFloats(_ context.Context, id wire.ObjectID, f wire.Field, vs []float32) error {
	m.put(id, f, slot{floats: append([]float32{}, vs...)})
	return nil
}

// Objects returns every object with at least one field, ascending.
func (m *Memory) Objects(context.Context) ([]wire.ObjectID, error) {
	m.mu.RLock()
	seen := make(map[wire.ObjectID]struct{})
	for k := range m.fields {
		seen[k.id] = struct{}{}
	}
	m.mu.RUnlock()

	out := make([]wire.ObjectID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Delete drops every field of id.
func (m *Memory) Delete(id wire.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.fields {
		if k.id == id {
			delete(m.fields, k)
		}
	}
}

func (s slot) asInts() []int32 {
	if s.ints != nil || s.floats == nil {
		return s.ints
	}
	out := make([]int32, len(s.floats))
	for i, v := range s.floats {
		out[i] = int32(v)
	}
	return out
}

func (s slot) asFloats() []float32 {
	if s.floats != nil || s.ints == nil {
		return s.floats
	}
	out := make([]float32, len(s.ints))
	for i, v := range s.ints {
		out[i] = float32(v)
	}
	return out
}

var _ wire.Storage = (*Memory)(nil)
