// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// Point represents a 2d, Z, M or ZM dimensional point. Coordinates of
// dimensions the point does not declare are stored as 0.
type Point struct {
	header
	x, y, z, m float64
}

/*
NewPoint creates a point from 2, 3 or 4 coordinates. Without an explicit
WithDims option the dimensionality is inferred from the coordinate count;
3 coordinates are read as x, y, z. With WithDims the coordinate count has to
match the declaration.
*/
func NewPoint(coords []float64, opts ...Option) (*Point, error) {
	o := applyOptions(opts)
	z, m := o.dimZ, o.dimM
	if o.dimsSet {
		if want := 2 + btoi(z) + btoi(m); len(coords) != want {
			return nil, &CoordinateError{Reason: fmt.Sprintf("got %d coordinates, declared dimensions require %d", len(coords), want)}
		}
	} else {
		switch len(coords) {
		case 2:
		case 3:
			z = true
		case 4:
			z, m = true, true
		default:
			return nil, &CoordinateError{Reason: fmt.Sprintf("got %d coordinates, want 2 to 4", len(coords))}
		}
	}
	p := &Point{header: header{srid: o.srid, hasSRID: o.hasSRID, dimZ: z, dimM: m}}
	p.x, p.y = coords[0], coords[1]
	i := 2
	if z {
		p.z = coords[i]
		i++
	}
	if m {
		p.m = coords[i]
	}
	return p, nil
}

// Type returns TypePoint.
func (p *Point) Type() GeometryType { return TypePoint }

// X returns the x coordinate.
func (p *Point) X() (float64, error) {
	if err := p.materialize(); err != nil {
		return 0, err
	}
	return p.x, nil
}

// Y returns the y coordinate.
func (p *Point) Y() (float64, error) {
	if err := p.materialize(); err != nil {
		return 0, err
	}
	return p.y, nil
}

// Z returns the z coordinate. Reading z of a point without a Z dimension fails.
func (p *Point) Z() (float64, error) {
	if !p.dimZ {
		return 0, &DimensionalityError{Reason: "point has no z dimension"}
	}
	if err := p.materialize(); err != nil {
		return 0, err
	}
	return p.z, nil
}

// M returns the m coordinate. Reading m of a point without an M dimension fails.
func (p *Point) M() (float64, error) {
	if !p.dimM {
		return 0, &DimensionalityError{Reason: "point has no m dimension"}
	}
	if err := p.materialize(); err != nil {
		return 0, err
	}
	return p.m, nil
}

// SetX replaces the x coordinate and drops cached source bytes.
func (p *Point) SetX(v float64) error {
	if err := p.materialize(); err != nil {
		return err
	}
	p.x = v
	p.invalidate()
	return nil
}

// SetY replaces the y coordinate and drops cached source bytes.
func (p *Point) SetY(v float64) error {
	if err := p.materialize(); err != nil {
		return err
	}
	p.y = v
	p.invalidate()
	return nil
}

// SetZ replaces the z coordinate, declaring the Z dimension if missing, and
// drops cached source bytes.
func (p *Point) SetZ(v float64) error {
	if err := p.materialize(); err != nil {
		return err
	}
	p.z = v
	p.dimZ = true
	p.invalidate()
	return nil
}

// SetM replaces the m coordinate, declaring the M dimension if missing, and
// drops cached source bytes.
func (p *Point) SetM(v float64) error {
	if err := p.materialize(); err != nil {
		return err
	}
	p.m = v
	p.dimM = true
	p.invalidate()
	return nil
}

// SetDimZ adds the Z dimension; removing a declared dimension fails.
func (p *Point) SetDimZ(v bool) error { return applyDim(p, true, v) }

// SetDimM adds the M dimension; removing a declared dimension fails.
func (p *Point) SetDimM(v bool) error { return applyDim(p, false, v) }

// Bounds returns the X / Y envelope.
func (p *Point) Bounds() (Bounds, error) { return boundsOf(p) }

// Clone returns a deep copy.
func (p *Point) Clone() Geometry { return p.clone() }

func (p *Point) clone() *Point {
	q := *p
	q.header = p.cloneHeader()
	return &q
}

// GeoInterface returns the GeoJSON shaped map of the point.
func (p *Point) GeoInterface() map[string]any { return geoInterface(p) }

// MarshalJSON encodes the point as a GeoJSON object.
func (p *Point) MarshalJSON() ([]byte, error) { return marshalGeoJSON(p) }

// UnmarshalJSON decodes a GeoJSON object into the point.
func (p *Point) UnmarshalJSON(b []byte) error {
	g, err := unmarshalGeoJSON(b)
	if err != nil {
		return err
	}
	q, ok := g.(*Point)
	if !ok {
		return &GeoJSONError{Reason: fmt.Sprintf("got %s, want Point", g.Type())}
	}
	*p = *q
	return nil
}

func (p *Point) String() string { return geomString(p) }

func (p *Point) materialize() error {
	if p.pending == nil {
		return nil
	}
	g, err := decodeFull(p.pending)
	if err != nil {
		return err
	}
	q := g.(*Point)
	p.x, p.y, p.z, p.m = q.x, q.y, q.z, q.m
	p.pending, p.cached = nil, nil
	return nil
}

func (p *Point) lift(z, m bool) { p.dimZ, p.dimM = z, m }

func (p *Point) encodeBody(e *encoding.Encoder) {
	e.Float64(p.x)
	e.Float64(p.y)
	if p.dimZ {
		e.Float64(p.z)
	}
	if p.dimM {
		e.Float64(p.m)
	}
}

func (p *Point) writeWKTBody(w *strings.Builder, prec int) error {
	w.WriteByte('(')
	if err := writeWKTCoord(w, p, prec); err != nil {
		return err
	}
	w.WriteByte(')')
	return nil
}

func (p *Point) jsonCoordinates() any { return p.position() }

func (p *Point) position() []any {
	if p.dimZ {
		return []any{p.x, p.y, p.z}
	}
	return []any{p.x, p.y}
}

func (p *Point) extend(b *Bounds) { b.extend(p.x, p.y) }

func (p *Point) equalGeom(o Geometry) bool {
	q := o.(*Point)
	if p.x != q.x || p.y != q.y {
		return false
	}
	if p.dimZ && p.z != q.z {
		return false
	}
	if p.dimM && p.m != q.m {
		return false
	}
	return true
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
