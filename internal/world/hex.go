// Package world provides the hex coordinate algebra and the tile map built on it.
// Uses axial coordinates (q, r) for the hex grid; the third cube coordinate is
// always derived, so every HexCoord satisfies q + r + s = 0.
package world

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r. Equality and hashing
// only ever look at (Q, R).
type HexCoord struct {
	Q int32
	R int32
}

// Zero is the origin (0, 0, 0) and the identity of addition.
var Zero = HexCoord{}

// NewHexCoord creates the coordinate (q, r, -q - r).
func NewHexCoord(q, r int32) HexCoord {
	return HexCoord{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int32 {
	return -h.Q - h.R
}

// Add returns the component-wise sum.
func (h HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q + o.Q, R: h.R + o.R}
}

// Sub returns the component-wise difference.
func (h HexCoord) Sub(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q - o.Q, R: h.R - o.R}
}

// Neg returns the additive inverse.
func (h HexCoord) Neg() HexCoord {
	return HexCoord{Q: -h.Q, R: -h.R}
}

// Mul scales every component by k.
func (h HexCoord) Mul(k int32) HexCoord {
	return HexCoord{Q: h.Q * k, R: h.R * k}
}

// Div divides q and r by k, truncating toward zero, and re-derives s.
// Dividing by zero is a programming error and panics.
func (h HexCoord) Div(k int32) HexCoord {
	if k == 0 {
		panic(fmt.Sprintf("world: hex coordinate %s divided by zero", h.FormalString()))
	}
	return HexCoord{Q: h.Q / k, R: h.R / k}
}

// Distance returns the hex distance between two coordinates. Differences
// are taken in int64 so coordinates near the int32 limits do not wrap; the
// result saturates at math.MaxUint32.
func Distance(a, b HexCoord) uint32 {
	dq := int64(a.Q) - int64(b.Q)
	dr := int64(a.R) - int64(b.R)
	ds := -(dq + dr)
	// Max of the three absolute differences in cube coordinates.
	d := max(abs64(dq), abs64(dr), abs64(ds))
	if d > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(d)
}

// Distance is the method form of Distance.
func (h HexCoord) Distance(o HexCoord) uint32 {
	return Distance(h, o)
}

// Direction indexes the six neighbor offsets. Opposite directions are 3 apart.
// Names follow the renderer's orientation.
type Direction int

const (
	Left Direction = iota
	TopLeft
	TopRight
	Right
	BottomRight
	BottomLeft
)

var directionNames = [6]string{"left", "top_left", "top_right", "right", "bottom_right", "bottom_left"}

func (d Direction) String() string {
	if d < 0 || d > 5 {
		return "direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionNames[d]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates,
// indexed by Direction.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbor returns the adjacent coordinate in direction d.
func (h HexCoord) Neighbor(d Direction) HexCoord {
	return h.Add(HexNeighborDirections[((int(d)%6)+6)%6])
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = h.Add(dir)
	}
	return result
}

// Ring returns the coordinates exactly radius steps from h, walking the ring
// from the BottomRight corner. Radius 0 yields h itself.
func (h HexCoord) Ring(radius int32) []HexCoord {
	if radius <= 0 {
		return []HexCoord{h}
	}
	out := make([]HexCoord, 0, 6*radius)
	cur := h.Add(HexNeighborDirections[BottomRight].Mul(radius))
	for i := 0; i < 6; i++ {
		for j := int32(0); j < radius; j++ {
			out = append(out, cur)
			cur = cur.Neighbor(Direction(i))
		}
	}
	return out
}

// Range returns every coordinate within radius steps of h.
func (h HexCoord) Range(radius int32) []HexCoord {
	if radius < 0 {
		return nil
	}
	out := make([]HexCoord, 0, 3*radius*(radius+1)+1)
	for q := -radius; q <= radius; q++ {
		lo, hi := -radius, radius
		if -q-radius > lo {
			lo = -q - radius
		}
		if -q+radius < hi {
			hi = -q + radius
		}
		for r := lo; r <= hi; r++ {
			out = append(out, h.Add(HexCoord{Q: q, R: r}))
		}
	}
	return out
}

// FormalString renders the coordinate as "q,r".
func (h HexCoord) FormalString() string {
	return fmt.Sprintf("%d,%d", h.Q, h.R)
}

func (h HexCoord) String() string {
	return fmt.Sprintf("[%d, %d]", h.Q, h.R)
}

// ParseHexCoord parses the "q,r" form produced by FormalString.
func ParseHexCoord(s string) (HexCoord, error) {
	qs, rs, ok := strings.Cut(s, ",")
	if !ok {
		return HexCoord{}, fmt.Errorf("parse hex coord %q: missing comma", s)
	}
	q, err := strconv.ParseInt(strings.TrimSpace(qs), 10, 32)
	if err != nil {
		return HexCoord{}, fmt.Errorf("parse hex coord %q: %w", s, err)
	}
	r, err := strconv.ParseInt(strings.TrimSpace(rs), 10, 32)
	if err != nil {
		return HexCoord{}, fmt.Errorf("parse hex coord %q: %w", s, err)
	}
	return NewHexCoord(int32(q), int32(r)), nil
}

// MarshalJSON writes the wire form [q, r]. s is never stored.
func (h HexCoord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int32{h.Q, h.R})
}

// UnmarshalJSON reads [q, r]; s is re-derived.
func (h *HexCoord) UnmarshalJSON(data []byte) error {
	var pair []int32
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode hex coord: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode hex coord: expected 2 integers, got %d", len(pair))
	}
	*h = NewHexCoord(pair[0], pair[1])
	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
