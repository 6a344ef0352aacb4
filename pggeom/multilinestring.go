// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// MultiLineString represents an ordered sequence of line strings sharing the
// container's dimensionality. Members either carry the container's SRID or
// none.
type MultiLineString struct {
	header
	lineStrings []*LineString
}

// NewMultiLineString creates a multi line string from its members. Members
// are deep copied on insertion.
func NewMultiLineString(lineStrings []*LineString, opts ...Option) (*MultiLineString, error) {
	children := make([]Geometry, len(lineStrings))
	for i, l := range lineStrings {
		children[i] = l
	}
	h, err := resolveComposite(children, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	m := &MultiLineString{header: h}
	m.lineStrings = make([]*LineString, len(lineStrings))
	for i, l := range lineStrings {
		if err := l.materialize(); err != nil {
			return nil, err
		}
		m.lineStrings[i] = l.clone()
	}
	return m, nil
}

// Type returns TypeMultiLineString.
func (m *MultiLineString) Type() GeometryType { return TypeMultiLineString }

// LineStrings returns the members of the multi line string.
func (m *MultiLineString) LineStrings() ([]*LineString, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	return m.lineStrings, nil
}

// Len returns the number of members (0 if the multi line string cannot be
// materialized).
func (m *MultiLineString) Len() int {
	if err := m.materialize(); err != nil {
		return 0
	}
	return len(m.lineStrings)
}

// At returns the member at index i.
func (m *MultiLineString) At(i int) (*LineString, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(m.lineStrings) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	return m.lineStrings[i], nil
}

// Append validates and deep copies a line string into the multi line string.
func (m *MultiLineString) Append(l *LineString) error {
	if err := m.materialize(); err != nil {
		return err
	}
	if err := checkChild(&m.header, l); err != nil {
		return err
	}
	if err := l.materialize(); err != nil {
		return err
	}
	m.lineStrings = append(m.lineStrings, l.clone())
	m.invalidate()
	return nil
}

// Pop removes and returns the member at index i.
func (m *MultiLineString) Pop(i int) (*LineString, error) {
	if err := m.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(m.lineStrings) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	l := m.lineStrings[i]
	m.lineStrings = append(m.lineStrings[:i], m.lineStrings[i+1:]...)
	m.invalidate()
	return l, nil
}

// SetDimZ adds the Z dimension to the container and all members; removing a
// declared dimension fails.
func (m *MultiLineString) SetDimZ(v bool) error { return applyDim(m, true, v) }

// SetDimM adds the M dimension to the container and all members; removing a
// declared dimension fails.
func (m *MultiLineString) SetDimM(v bool) error { return applyDim(m, false, v) }

// Bounds returns the X / Y envelope.
func (m *MultiLineString) Bounds() (Bounds, error) { return boundsOf(m) }

// Clone returns a deep copy.
func (m *MultiLineString) Clone() Geometry { return m.clone() }

// ShallowClone returns a copy sharing the member references.
func (m *MultiLineString) ShallowClone() Geometry {
	_ = m.materialize()
	c := &MultiLineString{header: m.cloneHeader()}
	c.lineStrings = append([]*LineString(nil), m.lineStrings...)
	return c
}

func (m *MultiLineString) clone() *MultiLineString {
	c := &MultiLineString{header: m.cloneHeader()}
	c.lineStrings = make([]*LineString, len(m.lineStrings))
	for i, l := range m.lineStrings {
		c.lineStrings[i] = l.clone()
	}
	return c
}

// GeoInterface returns the GeoJSON shaped map of the multi line string.
func (m *MultiLineString) GeoInterface() map[string]any { return geoInterface(m) }

// MarshalJSON encodes the multi line string as a GeoJSON object.
func (m *MultiLineString) MarshalJSON() ([]byte, error) { return marshalGeoJSON(m) }

// UnmarshalJSON decodes a GeoJSON object into the multi line string.
func (m *MultiLineString) UnmarshalJSON(b []byte) error {
	g, err := unmarshalGeoJSON(b)
	if err != nil {
		return err
	}
	q, ok := g.(*MultiLineString)
	if !ok {
		return &GeoJSONError{Reason: fmt.Sprintf("got %s, want MultiLineString", g.Type())}
	}
	*m = *q
	return nil
}

func (m *MultiLineString) String() string { return geomString(m) }

func (m *MultiLineString) materialize() error {
	if m.pending == nil {
		return nil
	}
	g, err := decodeFull(m.pending)
	if err != nil {
		return err
	}
	m.lineStrings = g.(*MultiLineString).lineStrings
	m.pending, m.cached = nil, nil
	return nil
}

func (m *MultiLineString) lift(z, mm bool) {
	m.dimZ, m.dimM = z, mm
	for _, l := range m.lineStrings {
		l.lift(z, mm)
	}
}

func (m *MultiLineString) encodeBody(e *encoding.Encoder) {
	e.Uint32(uint32(len(m.lineStrings)))
	for _, l := range m.lineStrings {
		writeWKBRecord(e, l)
	}
}

func (m *MultiLineString) writeWKTBody(w *strings.Builder, prec int) error {
	if len(m.lineStrings) == 0 {
		w.WriteString("EMPTY")
		return nil
	}
	w.WriteByte('(')
	for i, l := range m.lineStrings {
		if i > 0 {
			w.WriteString(", ")
		}
		if err := l.writeWKTBody(w, prec); err != nil {
			return err
		}
	}
	w.WriteByte(')')
	return nil
}

func (m *MultiLineString) jsonCoordinates() any {
	coords := make([]any, len(m.lineStrings))
	for i, l := range m.lineStrings {
		coords[i] = l.jsonCoordinates()
	}
	return coords
}

func (m *MultiLineString) extend(b *Bounds) {
	for _, l := range m.lineStrings {
		l.extend(b)
	}
}

func (m *MultiLineString) equalGeom(o Geometry) bool {
	q := o.(*MultiLineString)
	if len(m.lineStrings) != len(q.lineStrings) {
		return false
	}
	for i, l := range m.lineStrings {
		if !Equal(l, q.lineStrings[i]) {
			return false
		}
	}
	return true
}
