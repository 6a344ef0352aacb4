// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// MultiPolygon represents an ordered sequence of polygons sharing the
// container's dimensionality. Members either carry the container's SRID or
// none.
type MultiPolygon struct {
	header
	polygons []*Polygon
}

// NewMultiPolygon creates a multi polygon from its members. Members are deep
// copied on insertion.
func NewMultiPolygon(polygons []*Polygon, opts ...Option) (*MultiPolygon, error) {
	children := make([]Geometry, len(polygons))
	for i, p := range polygons {
		children[i] = p
	}
	h, err := resolveComposite(children, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	m := &MultiPolygon{header: h}
	m.polygons = make([]*Polygon, len(polygons))
	for i, p := range polygons {
		if err := p.materialize(); err != nil {
			return nil, err
		}
		m.polygons[i] = p.clone()
	}
	return m, nil
}

// Type returns TypeMultiPolygon.
func (m *MultiPolygon) Type() GeometryType { return TypeMultiPolygon }

// Polygons returns the members of the multi polygon.
func (m *MultiPolygon) Polygons() ([]*Polygon, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	return m.polygons, nil
}

// Len returns the number of members (0 if the multi polygon cannot be
// materialized).
func (m *MultiPolygon) Len() int {
	if err := m.materialize(); err != nil {
		return 0
	}
	return len(m.polygons)
}

// At returns the member at index i.
func (m *MultiPolygon) At(i int) (*Polygon, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(m.polygons) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	return m.polygons[i], nil
}

// Append validates and deep copies a polygon into the multi polygon.
func (m *MultiPolygon) Append(p *Polygon) error {
	if err := m.materialize(); err != nil {
		return err
	}
	if err := checkChild(&m.header, p); err != nil {
		return err
	}
	if err := p.materialize(); err != nil {
		return err
	}
	m.polygons = append(m.polygons, p.clone())
	m.invalidate()
	return nil
}

// Pop removes and returns the member at index i.
func (m *MultiPolygon) Pop(i int) (*Polygon, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(m.polygons) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	p := m.polygons[i]
	m.polygons = append(m.polygons[:i], m.polygons[i+1:]...)
	m.invalidate()
	return p, nil
}

// SetDimZ adds the Z dimension to the container and all members; removing a
// declared dimension fails.
func (m *MultiPolygon) SetDimZ(v bool) error { return applyDim(m, true, v) }

// SetDimM adds the M dimension to the container and all members; removing a
// declared dimension fails.
func (m *MultiPolygon) SetDimM(v bool) error { return applyDim(m, false, v) }

// Bounds returns the X / Y envelope.
func (m *MultiPolygon) Bounds() (Bounds, error) { return boundsOf(m) }

// Clone returns a deep copy.
func (m *MultiPolygon) Clone() Geometry { return m.clone() }

// ShallowClone returns a copy sharing the member references.
func (m *MultiPolygon) ShallowClone() Geometry {
	_ = m.materialize()
	c := &MultiPolygon{header: m.cloneHeader()}
	c.polygons = append([]*Polygon(nil), m.polygons...)
	return c
}

func (m *MultiPolygon) clone() *MultiPolygon {
	c := &MultiPolygon{header: m.cloneHeader()}
	c.polygons = make([]*Polygon, len(m.polygons))
	for i, p := range m.polygons {
		c.polygons[i] = p.clone()
	}
	return c
}

// GeoInterface returns the GeoJSON shaped map of the multi polygon.
func (m *MultiPolygon) GeoInterface() map[string]any { return geoInterface(m) }

// MarshalJSON encodes the multi polygon as a GeoJSON object.
func (m *MultiPolygon) MarshalJSON() ([]byte, error) { return marshalGeoJSON(m) }

// UnmarshalJSON decodes a GeoJSON object into the multi polygon.
func (m *MultiPolygon) UnmarshalJSON(b []byte) error {
	g, err := unmarshalGeoJSON(b)
	if err != nil {
		return err
	}
	q, ok := g.(*MultiPolygon)
	if !ok {
		return &GeoJSONError{Reason: fmt.Sprintf("got %s, want MultiPolygon", g.Type())}
	}
	*m = *q
	return nil
}

func (m *MultiPolygon) String() string { return geomString(m) }

func (m *MultiPolygon) materialize() error {
	if m.pending == nil {
		return nil
	}
	g, err := decodeFull(m.pending)
	if err != nil {
		return err
	}
	m.polygons = g.(*MultiPolygon).polygons
	m.pending, m.cached = nil, nil
	return nil
}

func (m *MultiPolygon) lift(z, mm bool) {
	m.dimZ, m.dimM = z, mm
	for _, p := range m.polygons {
		p.lift(z, mm)
	}
}

func (m *MultiPolygon) encodeBody(e *encoding.Encoder) {
	e.Uint32(uint32(len(m.polygons)))
	for _, p := range m.polygons {
		writeWKBRecord(e, p)
	}
}

func (m *MultiPolygon) writeWKTBody(w *strings.Builder, prec int) error {
	if len(m.polygons) == 0 {
		w.WriteString("EMPTY")
		return nil
	}
	w.WriteByte('(')
	for i, p := range m.polygons {
		if i > 0 {
			w.WriteString(", ")
		}
		if err := p.writeWKTBody(w, prec); err != nil {
			return err
		}
	}
	w.WriteByte(')')
	return nil
}

func (m *MultiPolygon) jsonCoordinates() any {
	coords := make([]any, len(m.polygons))
	for i, p := range m.polygons {
		coords[i] = p.jsonCoordinates()
	}
	return coords
}

func (m *MultiPolygon) extend(b *Bounds) {
	for _, p := range m.polygons {
		p.extend(b)
	}
}

func (m *MultiPolygon) equalGeom(o Geometry) bool {
	q := o.(*MultiPolygon)
	if len(m.polygons) != len(q.polygons) {
		return false
	}
	for i, p := range m.polygons {
		if !Equal(p, q.polygons[i]) {
			return false
		}
	}
	return true
}
