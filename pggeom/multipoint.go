// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// MultiPoint represents an ordered sequence of points sharing the container's
// dimensionality. Members either carry the container's SRID or none.
type MultiPoint struct {
	header
	points []*Point
}

// NewMultiPoint creates a multi point from its members. Members are deep
// copied on insertion.
func NewMultiPoint(points []*Point, opts ...Option) (*MultiPoint, error) {
	children := make([]Geometry, len(points))
	for i, p := range points {
		children[i] = p
	}
	h, err := resolveComposite(children, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	m := &MultiPoint{header: h}
	m.points = make([]*Point, len(points))
	for i, p := range points {
		if err := p.materialize(); err != nil {
			return nil, err
		}
		m.points[i] = p.clone()
	}
	return m, nil
}

// Type returns TypeMultiPoint.
func (m *MultiPoint) Type() GeometryType { return TypeMultiPoint }

// Points returns the members of the multi point.
func (m *MultiPoint) Points() ([]*Point, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	return m.points, nil
}

// Len returns the number of members (0 if the multi point cannot be
// materialized).
func (m *MultiPoint) Len() int {
	if err := m.materialize(); err != nil {
		return 0
	}
	return len(m.points)
}

// At returns the member at index i.
func (m *MultiPoint) At(i int) (*Point, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(m.points) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	return m.points[i], nil
}

// Append validates and deep copies a point into the multi point.
func (m *MultiPoint) Append(p *Point) error {
	if err := m.materialize(); err != nil {
		return err
	}
	if err := checkChild(&m.header, p); err != nil {
		return err
	}
	if err := p.materialize(); err != nil {
		return err
	}
	m.points = append(m.points, p.clone())
	m.invalidate()
	return nil
}

// Pop removes and returns the member at index i.
func (m *MultiPoint) Pop(i int) (*Point, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(m.points) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	p := m.points[i]
	m.points = append(m.points[:i], m.points[i+1:]...)
	m.invalidate()
	return p, nil
}

// SetDimZ adds the Z dimension to the container and all members; removing a
// declared dimension fails.
func (m *MultiPoint) SetDimZ(v bool) error { return applyDim(m, true, v) }

// SetDimM adds the M dimension to the container and all members; removing a
// declared dimension fails.
func (m *MultiPoint) SetDimM(v bool) error { return applyDim(m, false, v) }

// Bounds returns the X / Y envelope.
func (m *MultiPoint) Bounds() (Bounds, error) { return boundsOf(m) }

// Clone returns a deep copy.
func (m *MultiPoint) Clone() Geometry { return m.clone() }

// ShallowClone returns a copy sharing the member references.
func (m *MultiPoint) ShallowClone() Geometry {
	_ = m.materialize()
	c := &MultiPoint{header: m.cloneHeader()}
	c.points = append([]*Point(nil), m.points...)
	return c
}

func (m *MultiPoint) clone() *MultiPoint {
	c := &MultiPoint{header: m.cloneHeader()}
	c.points = make([]*Point, len(m.points))
	for i, p := range m.points {
		c.points[i] = p.clone()
	}
	return c
}

// GeoInterface returns the GeoJSON shaped map of the multi point.
func (m *MultiPoint) GeoInterface() map[string]any { return geoInterface(m) }

// MarshalJSON encodes the multi point as a GeoJSON object.
func (m *MultiPoint) MarshalJSON() ([]byte, error) { return marshalGeoJSON(m) }

// UnmarshalJSON decodes a GeoJSON object into the multi point.
func (m *MultiPoint) UnmarshalJSON(b []byte) error {
	g, err := unmarshalGeoJSON(b)
	if err != nil {
		return err
	}
	q, ok := g.(*MultiPoint)
	if !ok {
		return &GeoJSONError{Reason: fmt.Sprintf("got %s, want MultiPoint", g.Type())}
	}
	*m = *q
	return nil
}

func (m *MultiPoint) String() string { return geomString(m) }

func (m *MultiPoint) materialize() error {
	if m.pending == nil {
		return nil
	}
	g, err := decodeFull(m.pending)
	if err != nil {
		return err
	}
	m.points = g.(*MultiPoint).points
	m.pending, m.cached = nil, nil
	return nil
}

func (m *MultiPoint) lift(z, mm bool) {
	m.dimZ, m.dimM = z, mm
	for _, p := range m.points {
		p.lift(z, mm)
	}
}

func (m *MultiPoint) encodeBody(e *encoding.Encoder) {
	e.Uint32(uint32(len(m.points)))
	for _, p := range m.points {
		writeWKBRecord(e, p)
	}
}

func (m *MultiPoint) writeWKTBody(w *strings.Builder, prec int) error {
	return writeWKTCoordList(w, m.points, prec)
}

func (m *MultiPoint) jsonCoordinates() any {
	coords := make([]any, len(m.points))
	for i, p := range m.points {
		coords[i] = p.position()
	}
	return coords
}

func (m *MultiPoint) extend(b *Bounds) {
	for _, p := range m.points {
		p.extend(b)
	}
}

func (m *MultiPoint) equalGeom(o Geometry) bool {
	q := o.(*MultiPoint)
	if len(m.points) != len(q.points) {
		return false
	}
	for i, p := range m.points {
		if !Equal(p, q.points[i]) {
			return false
		}
	}
	return true
}
