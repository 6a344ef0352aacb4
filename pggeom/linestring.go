// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// LineString represents an ordered sequence of points sharing the line
// string's dimensionality.
type LineString struct {
	header
	points []*Point
}

/*
resolveDims derives the dimensionality of a coordinate list. Without an
explicit declaration the arity of the first coordinate decides; 3 components
are read as x, y, z. All coordinates have to share the arity.
*/
func resolveDims(coords [][]float64, o geoOptions) (bool, bool, error) {
	z, m := o.dimZ, o.dimM
	if len(coords) == 0 {
		return z, m, nil
	}
	if !o.dimsSet {
		switch len(coords[0]) {
		case 2:
		case 3:
			z = true
		case 4:
			z, m = true, true
		default:
			return false, false, &CoordinateError{Reason: fmt.Sprintf("got %d coordinates, want 2 to 4", len(coords[0]))}
		}
	}
	want := 2 + btoi(z) + btoi(m)
	for _, c := range coords {
		if len(c) != want {
			return false, false, &CoordinateError{Reason: fmt.Sprintf("got %d coordinates, declared dimensions require %d", len(c), want)}
		}
	}
	return z, m, nil
}

// newPointDims creates a point from a coordinate of validated arity.
func newPointDims(c []float64, z, m bool) *Point {
	p := &Point{header: header{dimZ: z, dimM: m}}
	p.x, p.y = c[0], c[1]
	i := 2
	if z {
		p.z = c[i]
		i++
	}
	if m {
		p.m = c[i]
	}
	return p
}

// NewLineString creates a line string from a list of coordinates.
func NewLineString(coords [][]float64, opts ...Option) (*LineString, error) {
	o := applyOptions(opts)
	z, m, err := resolveDims(coords, o)
	if err != nil {
		return nil, err
	}
	l := &LineString{header: header{srid: o.srid, hasSRID: o.hasSRID, dimZ: z, dimM: m}}
	l.points = make([]*Point, len(coords))
	for i, c := range coords {
		l.points[i] = newPointDims(c, z, m)
	}
	return l, nil
}

// Type returns TypeLineString.
func (l *LineString) Type() GeometryType { return TypeLineString }

// Points returns the vertices of the line string.
func (l *LineString) Points() ([]*Point, error) {
	if err := l.materialize(); err != nil {
		return nil, err
	}
	return l.points, nil
}

// NumPoints returns the number of vertices (0 if the line string cannot be
// materialized).
func (l *LineString) NumPoints() int {
	if err := l.materialize(); err != nil {
		return 0
	}
	return len(l.points)
}

// SetDimZ adds the Z dimension to the line string and all vertices; removing
// a declared dimension fails.
func (l *LineString) SetDimZ(v bool) error { return applyDim(l, true, v) }

// SetDimM adds the M dimension to the line string and all vertices; removing
// a declared dimension fails.
func (l *LineString) SetDimM(v bool) error { return applyDim(l, false, v) }

// Bounds returns the X / Y envelope.
func (l *LineString) Bounds() (Bounds, error) { return boundsOf(l) }

// Clone returns a deep copy.
func (l *LineString) Clone() Geometry { return l.clone() }

func (l *LineString) clone() *LineString {
	c := &LineString{header: l.cloneHeader()}
	c.points = make([]*Point, len(l.points))
	for i, p := range l.points {
		c.points[i] = p.clone()
	}
	return c
}

// GeoInterface returns the GeoJSON shaped map of the line string.
func (l *LineString) GeoInterface() map[string]any { return geoInterface(l) }

// MarshalJSON encodes the line string as a GeoJSON object.
func (l *LineString) MarshalJSON() ([]byte, error) { return marshalGeoJSON(l) }

// UnmarshalJSON decodes a GeoJSON object into the line string.
func (l *LineString) UnmarshalJSON(b []byte) error {
	g, err := unmarshalGeoJSON(b)
	if err != nil {
		return err
	}
	q, ok := g.(*LineString)
	if !ok {
		return &GeoJSONError{Reason: fmt.Sprintf("got %s, want LineString", g.Type())}
	}
	*l = *q
	return nil
}

func (l *LineString) String() string { return geomString(l) }

func (l *LineString) materialize() error {
	if l.pending == nil {
		return nil
	}
	g, err := decodeFull(l.pending)
	if err != nil {
		return err
	}
	l.points = g.(*LineString).points
	l.pending, l.cached = nil, nil
	return nil
}

func (l *LineString) lift(z, m bool) {
	l.dimZ, l.dimM = z, m
	for _, p := range l.points {
		p.lift(z, m)
	}
}

func (l *LineString) encodeBody(e *encoding.Encoder) {
	e.Uint32(uint32(len(l.points)))
	for _, p := range l.points {
		p.encodeBody(e)
	}
}

func (l *LineString) writeWKTBody(w *strings.Builder, prec int) error {
	return writeWKTCoordList(w, l.points, prec)
}

func (l *LineString) jsonCoordinates() any {
	coords := make([]any, len(l.points))
	for i, p := range l.points {
		coords[i] = p.position()
	}
	return coords
}

func (l *LineString) extend(b *Bounds) {
	for _, p := range l.points {
		p.extend(b)
	}
}

func (l *LineString) equalGeom(o Geometry) bool {
	q := o.(*LineString)
	if len(l.points) != len(q.points) {
		return false
	}
	for i, p := range l.points {
		if !p.equalGeom(q.points[i]) {
			return false
		}
	}
	return true
}
