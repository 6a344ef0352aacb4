// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// GeometryCollection represents an ordered sequence of arbitrary geometries
// sharing the container's dimensionality. Members either carry the
// container's SRID or none.
type GeometryCollection struct {
	header
	geometries []Geometry
}

// NewGeometryCollection creates a geometry collection from its members.
// Members are deep copied on insertion.
func NewGeometryCollection(geometries []Geometry, opts ...Option) (*GeometryCollection, error) {
	h, err := resolveComposite(geometries, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	c := &GeometryCollection{header: h}
	c.geometries = make([]Geometry, len(geometries))
	for i, g := range geometries {
		if err := g.materialize(); err != nil {
			return nil, err
		}
		c.geometries[i] = g.Clone()
	}
	return c, nil
}

// Type returns TypeGeometryCollection.
func (c *GeometryCollection) Type() GeometryType { return TypeGeometryCollection }

// Geometries returns the members of the collection.
func (c *GeometryCollection) Geometries() ([]Geometry, error) {
	if err := c.materialize(); err != nil {
		return nil, err
	}
	return c.geometries, nil
}

// Len returns the number of members (0 if the collection cannot be
// materialized).
func (c *GeometryCollection) Len() int {
	if err := c.materialize(); err != nil {
		return 0
	}
	return len(c.geometries)
}

// At returns the member at index i.
func (c *GeometryCollection) At(i int) (Geometry, error) {
	if err := c.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(c.geometries) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	return c.geometries[i], nil
}

// Append validates and deep copies a geometry into the collection.
func (c *GeometryCollection) Append(g Geometry) error {
	if err := c.materialize(); err != nil {
		return err
	}
	if err := checkChild(&c.header, g); err != nil {
		return err
	}
	if err := g.materialize(); err != nil {
		return err
	}
	c.geometries = append(c.geometries, g.Clone())
	c.invalidate()
	return nil
}

// Pop removes and returns the member at index i.
func (c *GeometryCollection) Pop(i int) (Geometry, error) {
	if err := c.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(c.geometries) {
		return nil, &CollectionError{Reason: fmt.Sprintf("index %d out of range", i)}
	}
	g := c.geometries[i]
	c.geometries = append(c.geometries[:i], c.geometries[i+1:]...)
	c.invalidate()
	return g, nil
}

// SetDimZ adds the Z dimension to the container and all members; removing a
// declared dimension fails.
func (c *GeometryCollection) SetDimZ(v bool) error { return applyDim(c, true, v) }

// SetDimM adds the M dimension to the container and all members; removing a
// declared dimension fails.
func (c *GeometryCollection) SetDimM(v bool) error { return applyDim(c, false, v) }

// Bounds returns the X / Y envelope.
func (c *GeometryCollection) Bounds() (Bounds, error) { return boundsOf(c) }

// Clone returns a deep copy.
func (c *GeometryCollection) Clone() Geometry { return c.clone() }

// ShallowClone returns a copy sharing the member references.
func (c *GeometryCollection) ShallowClone() Geometry {
	_ = c.materialize()
	d := &GeometryCollection{header: c.cloneHeader()}
	d.geometries = append([]Geometry(nil), c.geometries...)
	return d
}

func (c *GeometryCollection) clone() *GeometryCollection {
	d := &GeometryCollection{header: c.cloneHeader()}
	d.geometries = make([]Geometry, len(c.geometries))
	for i, g := range c.geometries {
		d.geometries[i] = g.Clone()
	}
	return d
}

// GeoInterface returns the GeoJSON shaped map of the collection.
func (c *GeometryCollection) GeoInterface() map[string]any { return geoInterface(c) }

// MarshalJSON encodes the collection as a GeoJSON object.
func (c *GeometryCollection) MarshalJSON() ([]byte, error) { return marshalGeoJSON(c) }

// UnmarshalJSON decodes a GeoJSON object into the collection.
func (c *GeometryCollection) UnmarshalJSON(b []byte) error {
	g, err := unmarshalGeoJSON(b)
	if err != nil {
		return err
	}
	q, ok := g.(*GeometryCollection)
	if !ok {
		return &GeoJSONError{Reason: fmt.Sprintf("got %s, want GeometryCollection", g.Type())}
	}
	*c = *q
	return nil
}

func (c *GeometryCollection) String() string { return geomString(c) }

func (c *GeometryCollection) materialize() error {
	if c.pending == nil {
		return nil
	}
	g, err := decodeFull(c.pending)
	if err != nil {
		return err
	}
	c.geometries = g.(*GeometryCollection).geometries
	c.pending, c.cached = nil, nil
	return nil
}

func (c *GeometryCollection) lift(z, m bool) {
	c.dimZ, c.dimM = z, m
	for _, g := range c.geometries {
		g.lift(z, m)
	}
}

func (c *GeometryCollection) encodeBody(e *encoding.Encoder) {
	e.Uint32(uint32(len(c.geometries)))
	for _, g := range c.geometries {
		writeWKBRecord(e, g)
	}
}

func (c *GeometryCollection) writeWKTBody(w *strings.Builder, prec int) error {
	if len(c.geometries) == 0 {
		w.WriteString("EMPTY")
		return nil
	}
	w.WriteByte('(')
	for i, g := range c.geometries {
		if i > 0 {
			w.WriteString(", ")
		}
		if err := writeWKTGeometry(w, g, prec); err != nil {
			return err
		}
	}
	w.WriteByte(')')
	return nil
}

func (c *GeometryCollection) jsonCoordinates() any { return nil }

func (c *GeometryCollection) extend(b *Bounds) {
	for _, g := range c.geometries {
		g.extend(b)
	}
}

func (c *GeometryCollection) equalGeom(o Geometry) bool {
	q := o.(*GeometryCollection)
	if len(c.geometries) != len(q.geometries) {
		return false
	}
	for i, g := range c.geometries {
		if !Equal(g, q.geometries[i]) {
			return false
		}
	}
	return true
}

// multiClass maps a geometry class to the multi geometry class absorbing it
// on concatenation.
func multiClass(t GeometryType) GeometryType {
	switch t {
	case TypePoint, TypeMultiPoint:
		return TypeMultiPoint
	case TypeLineString, TypeMultiLineString:
		return TypeMultiLineString
	case TypePolygon, TypeMultiPolygon:
		return TypeMultiPolygon
	default:
		return TypeGeometryCollection
	}
}

/*
Concat combines two geometries into a multi geometry. Combining geometries of
one class (or that class and its multi class) yields the multi class;
combining unrelated classes yields a GeometryCollection; combining anything
with a GeometryCollection yields a GeometryCollection. The operands' SRIDs
have to be absent or equal.
*/
func Concat(a, b Geometry) (Geometry, error) {
	asrid, aok := a.SRID()
	bsrid, bok := b.SRID()
	var opts []Option
	switch {
	case aok && bok:
		if asrid != bsrid {
			return nil, &SRIDError{Reason: fmt.Sprintf("cannot combine srid %d with srid %d", asrid, bsrid)}
		}
		opts = append(opts, WithSRID(asrid))
	case aok:
		opts = append(opts, WithSRID(asrid))
	case bok:
		opts = append(opts, WithSRID(bsrid))
	}

	class := multiClass(a.Type())
	if class != multiClass(b.Type()) || a.Type() == TypeGeometryCollection || b.Type() == TypeGeometryCollection {
		class = TypeGeometryCollection
	}

	if err := a.materialize(); err != nil {
		return nil, err
	}
	if err := b.materialize(); err != nil {
		return nil, err
	}

	switch class {
	case TypeMultiPoint:
		var points []*Point
		for _, g := range []Geometry{a, b} {
			switch v := g.(type) {
			case *Point:
				points = append(points, v)
			case *MultiPoint:
				points = append(points, v.points...)
			}
		}
		return NewMultiPoint(points, opts...)
	case TypeMultiLineString:
		var lineStrings []*LineString
		for _, g := range []Geometry{a, b} {
			switch v := g.(type) {
			case *LineString:
				lineStrings = append(lineStrings, v)
			case *MultiLineString:
				lineStrings = append(lineStrings, v.lineStrings...)
			}
		}
		return NewMultiLineString(lineStrings, opts...)
	case TypeMultiPolygon:
		var polygons []*Polygon
		for _, g := range []Geometry{a, b} {
			switch v := g.(type) {
			case *Polygon:
				polygons = append(polygons, v)
			case *MultiPolygon:
				polygons = append(polygons, v.polygons...)
			}
		}
		return NewMultiPolygon(polygons, opts...)
	default:
		var members []Geometry
		for _, g := range []Geometry{a, b} {
			if c, ok := g.(*GeometryCollection); ok {
				members = append(members, c.geometries...)
				continue
			}
			members = append(members, g)
		}
		return NewGeometryCollection(members, opts...)
	}
}
