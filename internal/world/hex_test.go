package world

import (
	"encoding/json"
	"math"
	"testing"
)

var sampleCoords = []HexCoord{
	Zero,
	NewHexCoord(1, 0),
	NewHexCoord(-3, 2),
	NewHexCoord(4, -7),
	NewHexCoord(-5, -5),
	NewHexCoord(12, 3),
}

func TestCubeInvariant(t *testing.T) {
	for _, a := range sampleCoords {
		for _, b := range sampleCoords {
			for _, c := range []HexCoord{a.Add(b), a.Sub(b), a.Neg(), a.Mul(3), a.Mul(-2), a.Div(2)} {
				if c.Q+c.R+c.S() != 0 {
					t.Fatalf("%v breaks q+r+s=0 (s=%d)", c, c.S())
				}
			}
		}
	}
}

func TestGroupLaws(t *testing.T) {
	for _, a := range sampleCoords {
		if a.Add(Zero) != a {
			t.Errorf("%v + 0 = %v", a, a.Add(Zero))
		}
		if a.Add(a.Neg()) != Zero {
			t.Errorf("%v + -%v = %v", a, a, a.Add(a.Neg()))
		}
		if a.Neg().Neg() != a {
			t.Errorf("--%v = %v", a, a.Neg().Neg())
		}
		for _, b := range sampleCoords {
			if a.Add(b) != b.Add(a) {
				t.Errorf("addition not commutative for %v, %v", a, b)
			}
			if a.Sub(b) != a.Add(b.Neg()) {
				t.Errorf("%v - %v != %v + -%v", a, b, a, b)
			}
			for _, c := range sampleCoords {
				if a.Add(b).Add(c) != a.Add(b.Add(c)) {
					t.Errorf("addition not associative for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestMulDiv(t *testing.T) {
	a := NewHexCoord(3, -2)
	if got := a.Mul(2); got != NewHexCoord(6, -4) {
		t.Fatalf("Mul(2) = %v", got)
	}
	if got := a.Mul(0); got != Zero {
		t.Fatalf("Mul(0) = %v", got)
	}
	if got := a.Mul(2).Div(2); got != a {
		t.Fatalf("Mul(2).Div(2) = %v, want %v", got, a)
	}
	// Truncation toward zero per component.
	if got := NewHexCoord(3, -3).Div(2); got != NewHexCoord(1, -1) {
		t.Fatalf("Div(2) = %v", got)
	}
}

func TestDivZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic dividing by zero")
		}
	}()
	NewHexCoord(1, 1).Div(0)
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b HexCoord
		want uint32
	}{
		{Zero, Zero, 0},
		{Zero, NewHexCoord(1, 0), 1},
		{Zero, NewHexCoord(2, -1), 2},
		{NewHexCoord(-3, 2), NewHexCoord(4, -7), 9},
		{Zero, NewHexCoord(3, 3), 6},
		{NewHexCoord(math.MaxInt32, 0), NewHexCoord(-2, 0), 1<<31 + 1},
		{NewHexCoord(math.MaxInt32, math.MinInt32), Zero, 1 << 31},
		{NewHexCoord(math.MaxInt32, 0), NewHexCoord(math.MinInt32, 0), math.MaxUint32},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Distance(tt.a); got != tt.want {
			t.Errorf("Distance not symmetric for %v, %v", tt.a, tt.b)
		}
	}

	for _, a := range sampleCoords {
		for _, b := range sampleCoords {
			for _, c := range sampleCoords {
				if Distance(a, c) > Distance(a, b)+Distance(b, c) {
					t.Fatalf("triangle inequality broken for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestNeighbors(t *testing.T) {
	c := NewHexCoord(2, -5)
	seen := make(map[HexCoord]bool)
	for d := Left; d <= BottomLeft; d++ {
		n := c.Neighbor(d)
		if Distance(c, n) != 1 {
			t.Errorf("neighbor %s of %v is %d away", d, c, Distance(c, n))
		}
		if n.Neighbor(d.Opposite()) != c {
			t.Errorf("opposite of %s does not lead back", d)
		}
		seen[n] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct neighbors, got %d", len(seen))
	}
	if c.Neighbors()[TopRight] != c.Neighbor(TopRight) {
		t.Fatal("Neighbors and Neighbor disagree")
	}
	for d := Left; d <= BottomLeft; d++ {
		if HexNeighborDirections[d].Add(HexNeighborDirections[d.Opposite()]) != Zero {
			t.Errorf("direction %s and its opposite do not cancel", d)
		}
	}
}

func TestRingAndRange(t *testing.T) {
	center := NewHexCoord(1, -2)
	for radius := int32(0); radius <= 4; radius++ {
		ring := center.Ring(radius)
		want := 6 * int(radius)
		if radius == 0 {
			want = 1
		}
		if len(ring) != want {
			t.Fatalf("Ring(%d) has %d hexes, want %d", radius, len(ring), want)
		}
		seen := make(map[HexCoord]bool)
		for _, c := range ring {
			if Distance(center, c) != uint32(radius) {
				t.Fatalf("Ring(%d) contains %v at distance %d", radius, c, Distance(center, c))
			}
			seen[c] = true
		}
		if len(seen) != len(ring) {
			t.Fatalf("Ring(%d) repeats hexes", radius)
		}

		area := center.Range(radius)
		if got, want := len(area), 3*int(radius)*(int(radius)+1)+1; got != want {
			t.Fatalf("Range(%d) has %d hexes, want %d", radius, got, want)
		}
		for _, c := range area {
			if Distance(center, c) > uint32(radius) {
				t.Fatalf("Range(%d) contains %v", radius, c)
			}
		}
	}
}

func TestStringForms(t *testing.T) {
	c := NewHexCoord(-3, 7)
	if got := c.FormalString(); got != "-3,7" {
		t.Fatalf("FormalString = %q", got)
	}
	if got := c.String(); got != "[-3, 7]" {
		t.Fatalf("String = %q", got)
	}
	parsed, err := ParseHexCoord(c.FormalString())
	if err != nil {
		t.Fatalf("ParseHexCoord: %v", err)
	}
	if parsed != c {
		t.Fatalf("ParseHexCoord = %v, want %v", parsed, c)
	}
	for _, bad := range []string{"", "3", "a,b", "1,2,3"} {
		if _, err := ParseHexCoord(bad); err == nil {
			t.Errorf("ParseHexCoord(%q) succeeded", bad)
		}
	}
}

func TestJSONWireForm(t *testing.T) {
	c := NewHexCoord(4, -1)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[4,-1]" {
		t.Fatalf("marshal = %s, want [4,-1]", data)
	}

	var back HexCoord
	if err := json.Unmarshal([]byte("[-2, 5]"), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != NewHexCoord(-2, 5) || back.S() != -3 {
		t.Fatalf("unmarshal = %v (s=%d)", back, back.S())
	}
	for _, bad := range []string{"[1]", "[1,2,3]", `{"q":1}`} {
		if err := json.Unmarshal([]byte(bad), &back); err == nil {
			t.Errorf("unmarshal %s succeeded", bad)
		}
	}
}
