package world

import (
	"cmp"
	"fmt"
	"slices"
)

// Map holds what is placed on each hex of a hexagon-shaped grid.
// T is usually a resolved tile identifier.
type Map[T any] struct {
	Tiles  map[HexCoord]T // All placed tiles keyed by coordinate
	Radius int32
}

// NewMap creates an empty map with the given radius.
// A hex grid of radius R contains hexes where max(|q|, |r|, |s|) <= R.
func NewMap[T any](radius int32) *Map[T] {
	return &Map[T]{
		Tiles:  make(map[HexCoord]T),
		Radius: radius,
	}
}

// Get returns the tile at coord.
func (m *Map[T]) Get(coord HexCoord) (T, bool) {
	t, ok := m.Tiles[coord]
	return t, ok
}

// Set places a tile at coord. Coordinates outside the radius are rejected.
func (m *Map[T]) Set(coord HexCoord, tile T) error {
	if !m.InBounds(coord) {
		return fmt.Errorf("set tile: %s outside radius %d", coord, m.Radius)
	}
	m.Tiles[coord] = tile
	return nil
}

// Remove clears coord.
func (m *Map[T]) Remove(coord HexCoord) {
	delete(m.Tiles, coord)
}

// InBounds returns true if the coordinate is within the map radius.
func (m *Map[T]) InBounds(coord HexCoord) bool {
	return m.Radius >= 0 && Distance(coord, Zero) <= uint32(m.Radius)
}

// Adjacent returns the occupied neighbors of coord, keyed by direction.
func (m *Map[T]) Adjacent(coord HexCoord) map[Direction]T {
	out := make(map[Direction]T, 6)
	for d := Left; d <= BottomLeft; d++ {
		if t, ok := m.Tiles[coord.Neighbor(d)]; ok {
			out[d] = t
		}
	}
	return out
}

// Coords returns every occupied coordinate ordered by (q, r).
func (m *Map[T]) Coords() []HexCoord {
	out := make([]HexCoord, 0, len(m.Tiles))
	for c := range m.Tiles {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b HexCoord) int {
		return cmp.Or(cmp.Compare(a.Q, b.Q), cmp.Compare(a.R, b.R))
	})
	return out
}

// Len returns the number of placed tiles.
func (m *Map[T]) Len() int {
	return len(m.Tiles)
}

// String returns a summary of the map.
func (m *Map[T]) String() string {
	return fmt.Sprintf("Map(radius=%d, tiles=%d)", m.Radius, m.Len())
}
