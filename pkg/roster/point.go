package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Point is a point allocation that is either unset or a non-negative
// integer. Unset is meaningful: it is "not yet entered", distinct from
// an entered 0, and the two must never collapse into each other.
type Point struct {
	pt  int
	set bool
}

// PointOf returns a set point. Negative input is clamped to 0.
func PointOf(n int) Point {
	if n < 0 {
		n = 0
	}
	return Point{pt: n, set: true}
}

// Unset returns the absent point.
func Unset() Point {
	return Point{}
}

// Set reports whether a value has been entered.
func (p Point) Set() bool { return p.set }

// Value returns the entered value, or 0 when unset. Aggregation treats
// unset as 0; callers that must distinguish check Set first.
func (p Point) Value() int { return p.pt }

// String renders the entered value, or "" when unset.
func (p Point) String() string {
	if !p.set {
		return ""
	}
	return strconv.Itoa(p.pt)
}

var nullLiteral = []byte("null")

// MarshalJSON encodes unset as null, otherwise the bare integer.
func (p Point) MarshalJSON() ([]byte, error) {
	if !p.set {
		return nullLiteral, nil
	}
	return json.Marshal(p.pt)
}

// UnmarshalJSON accepts null for unset and a non-negative integer otherwise.
func (p *Point) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		*p = Unset()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("roster: point: %w", err)
	}
	*p = PointOf(n)
	return nil
}
