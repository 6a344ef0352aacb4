// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// Polygon represents an ordered sequence of linear rings. The first ring is
// the exterior ring by convention; ring closure is not enforced.
type Polygon struct {
	header
	rings []*LineString
}

// NewPolygon creates a polygon from a list of rings, each a list of
// coordinates.
func NewPolygon(rings [][][]float64, opts ...Option) (*Polygon, error) {
	o := applyOptions(opts)
	p := &Polygon{header: header{srid: o.srid, hasSRID: o.hasSRID, dimZ: o.dimZ, dimM: o.dimM}}
	p.rings = make([]*LineString, len(rings))
	for i, ring := range rings {
		l, err := NewLineString(ring, opts...)
		if err != nil {
			return nil, err
		}
		l.ClearSRID()
		if i == 0 && !o.dimsSet {
			p.dimZ, p.dimM = l.dimZ, l.dimM
		} else if l.dimZ != p.dimZ || l.dimM != p.dimM {
			return nil, &DimensionalityError{Reason: "mismatched dimensions across polygon rings"}
		}
		p.rings[i] = l
	}
	return p, nil
}

// Type returns TypePolygon.
func (p *Polygon) Type() GeometryType { return TypePolygon }

// Rings returns the linear rings of the polygon.
func (p *Polygon) Rings() ([]*LineString, error) {
	if err := p.materialize(); err != nil {
		return nil, err
	}
	return p.rings, nil
}

// NumRings returns the number of rings (0 if the polygon cannot be
// materialized).
func (p *Polygon) NumRings() int {
	if err := p.materialize(); err != nil {
		return 0
	}
	return len(p.rings)
}

// SetDimZ adds the Z dimension to the polygon and all rings; removing a
// declared dimension fails.
func (p *Polygon) SetDimZ(v bool) error { return applyDim(p, true, v) }

// SetDimM adds the M dimension to the polygon and all rings; removing a
// declared dimension fails.
func (p *Polygon) SetDimM(v bool) error { return applyDim(p, false, v) }

// Bounds returns the X / Y envelope.
func (p *Polygon) Bounds() (Bounds, error) { return boundsOf(p) }

// Clone returns a deep copy.
func (p *Polygon) Clone() Geometry { return p.clone() }

func (p *Polygon) clone() *Polygon {
	c := &Polygon{header: p.cloneHeader()}
	c.rings = make([]*LineString, len(p.rings))
	for i, ring := range p.rings {
		c.rings[i] = ring.clone()
	}
	return c
}

// GeoInterface returns the GeoJSON shaped map of the polygon.
func (p *Polygon) GeoInterface() map[string]any { return geoInterface(p) }

// MarshalJSON encodes the polygon as a GeoJSON object.
func (p *Polygon) MarshalJSON() ([]byte, error) { return marshalGeoJSON(p) }

// UnmarshalJSON decodes a GeoJSON object into the polygon.
func (p *Polygon) UnmarshalJSON(b []byte) error {
	g, err := unmarshalGeoJSON(b)
	if err != nil {
		return err
	}
	q, ok := g.(*Polygon)
	if !ok {
		return &GeoJSONError{Reason: fmt.Sprintf("got %s, want Polygon", g.Type())}
	}
	*p = *q
	return nil
}

func (p *Polygon) String() string { return geomString(p) }

func (p *Polygon) materialize() error {
	if p.pending == nil {
		return nil
	}
	g, err := decodeFull(p.pending)
	if err != nil {
		return err
	}
	p.rings = g.(*Polygon).rings
	p.pending, p.cached = nil, nil
	return nil
}

func (p *Polygon) lift(z, m bool) {
	p.dimZ, p.dimM = z, m
	for _, ring := range p.rings {
		ring.lift(z, m)
	}
}

func (p *Polygon) encodeBody(e *encoding.Encoder) {
	e.Uint32(uint32(len(p.rings)))
	for _, ring := range p.rings {
		ring.encodeBody(e)
	}
}

func (p *Polygon) writeWKTBody(w *strings.Builder, prec int) error {
	if len(p.rings) == 0 {
		w.WriteString("EMPTY")
		return nil
	}
	w.WriteByte('(')
	for i, ring := range p.rings {
		if i > 0 {
			w.WriteString(", ")
		}
		if err := ring.writeWKTBody(w, prec); err != nil {
			return err
		}
	}
	w.WriteByte(')')
	return nil
}

func (p *Polygon) jsonCoordinates() any {
	rings := make([]any, len(p.rings))
	for i, ring := range p.rings {
		rings[i] = ring.jsonCoordinates()
	}
	return rings
}

func (p *Polygon) extend(b *Bounds) {
	for _, ring := range p.rings {
		ring.extend(b)
	}
}

func (p *Polygon) equalGeom(o Geometry) bool {
	q := o.(*Polygon)
	if len(p.rings) != len(q.rings) {
		return false
	}
	for i, ring := range p.rings {
		if !ring.equalGeom(q.rings[i]) {
			return false
		}
	}
	return true
}
