// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// GeometryType is the base geometry class of the 32 bit WKB type word.
type GeometryType uint32

// Geometry type constants.
const (
	TypePoint GeometryType = iota + 1
	TypeLineString
	TypePolygon
	TypeMultiPoint
	TypeMultiLineString
	TypeMultiPolygon
	TypeGeometryCollection
)

var typeNames = map[GeometryType]string{
	TypePoint:              "Point",
	TypeLineString:         "LineString",
	TypePolygon:            "Polygon",
	TypeMultiPoint:         "MultiPoint",
	TypeMultiLineString:    "MultiLineString",
	TypeMultiPolygon:       "MultiPolygon",
	TypeGeometryCollection: "GeometryCollection",
}

func (t GeometryType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("GeometryType(%d)", uint32(t))
}

func (t GeometryType) wktName() string { return strings.ToUpper(t.String()) }

// Geometry is the interface implemented by the seven geometry variants.
type Geometry interface {
	// Type returns the base geometry class.
	Type() GeometryType
	// SRID returns the spatial reference identifier and whether one is set.
	SRID() (int32, bool)
	// SetSRID sets the spatial reference identifier and drops cached source bytes.
	SetSRID(srid int32)
	// ClearSRID removes the spatial reference identifier and drops cached source bytes.
	ClearSRID()
	// DimZ reports whether the geometry carries a Z dimension.
	DimZ() bool
	// DimM reports whether the geometry carries an M dimension.
	DimM() bool
	// SetDimZ adds the Z dimension to the geometry and all reachable points.
	// Removing a declared dimension is not possible.
	SetDimZ(v bool) error
	// SetDimM adds the M dimension to the geometry and all reachable points.
	// Removing a declared dimension is not possible.
	SetDimM(v bool) error
	// Bounds returns the X / Y envelope of the geometry.
	Bounds() (Bounds, error)
	// Clone returns a deep copy.
	Clone() Geometry
	// GeoInterface returns the GeoJSON shaped map of the geometry (nil if the
	// geometry cannot be materialized).
	GeoInterface() map[string]any
	fmt.Stringer
	json.Marshaler

	hdr() *header
	materialize() error
	lift(z, m bool)
	encodeBody(e *encoding.Encoder)
	writeWKTBody(w *strings.Builder, prec int) error
	jsonCoordinates() any
	extend(b *Bounds)
	equalGeom(o Geometry) bool
}

// GeoInterfacer is the contract of foreign shape objects: any value exposing a
// GeoJSON shaped map with a type and coordinates (or geometries) member can be
// consumed by New.
type GeoInterfacer interface {
	GeoInterface() map[string]any
}

/*
header carries the attributes shared by all geometry variants: the optional
SRID, the dimension flags and the retained source bytes.

cached holds the bytes the geometry was constructed from as long as no
mutation has occurred; pending holds the not yet decoded source bytes of a
lazily constructed geometry. Materialization decodes pending and drops both.
*/
type header struct {
	srid    int32
	hasSRID bool
	dimZ    bool
	dimM    bool
	cached  []byte
	pending []byte
}

func (h *header) hdr() *header { return h }

// SRID returns the spatial reference identifier and whether one is set.
func (h *header) SRID() (int32, bool) { return h.srid, h.hasSRID }

// SetSRID sets the spatial reference identifier and drops cached source bytes.
func (h *header) SetSRID(srid int32) {
	h.srid, h.hasSRID = srid, true
	h.cached = nil
}

// ClearSRID removes the spatial reference identifier and drops cached source bytes.
func (h *header) ClearSRID() {
	h.srid, h.hasSRID = 0, false
	h.cached = nil
}

// DimZ reports whether the geometry carries a Z dimension.
func (h *header) DimZ() bool { return h.dimZ }

// DimM reports whether the geometry carries an M dimension.
func (h *header) DimM() bool { return h.dimM }

func (h *header) invalidate() { h.cached = nil }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

func (h *header) cloneHeader() header {
	c := *h
	c.cached = cloneBytes(h.cached)
	c.pending = cloneBytes(h.pending)
	return c
}

// applyDim implements SetDimZ / SetDimM for all variants. Adding a dimension
// materializes the geometry and recursively initializes the missing coordinate
// with 0; removing a declared dimension fails.
func applyDim(g Geometry, z bool, v bool) error {
	h := g.hdr()
	cur, name := h.dimM, "m"
	if z {
		cur, name = h.dimZ, "z"
	}
	if v == cur {
		return nil
	}
	if !v {
		return &DimensionalityError{Reason: "cannot remove the " + name + " dimension"}
	}
	if err := g.materialize(); err != nil {
		return err
	}
	if z {
		g.lift(true, h.dimM)
	} else {
		g.lift(h.dimZ, true)
	}
	h.invalidate()
	return nil
}

// Option configures a geometry constructor.
type Option func(*geoOptions)

type geoOptions struct {
	srid    int32
	hasSRID bool
	dimZ    bool
	dimM    bool
	dimsSet bool
}

// WithSRID sets the spatial reference identifier of the constructed geometry.
func WithSRID(srid int32) Option {
	return func(o *geoOptions) { o.srid, o.hasSRID = srid, true }
}

// WithDims declares the dimensions of the constructed geometry explicitly.
// The coordinate arity has to match the declaration.
func WithDims(z, m bool) Option {
	return func(o *geoOptions) { o.dimZ, o.dimM, o.dimsSet = z, m, true }
}

func applyOptions(opts []Option) geoOptions {
	var o geoOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

/*
resolveComposite derives the header of a composite from its direct children.

Dimensions: all children have to agree; the composite adopts them. SRID: every
child either has no SRID or the same SRID as the composite. The check is
shallow: grandchildren are not re-validated.
*/
func resolveComposite(children []Geometry, o geoOptions) (header, error) {
	h := header{srid: o.srid, hasSRID: o.hasSRID}
	if len(children) == 0 {
		h.dimZ, h.dimM = o.dimZ, o.dimM
		return h, nil
	}
	h.dimZ, h.dimM = children[0].DimZ(), children[0].DimM()
	for _, c := range children[1:] {
		if c.DimZ() != h.dimZ || c.DimM() != h.dimM {
			return header{}, &DimensionalityError{Reason: "mismatched dimensions across composite members"}
		}
	}
	if o.dimsSet && (o.dimZ != h.dimZ || o.dimM != h.dimM) {
		return header{}, &DimensionalityError{Reason: "declared dimensions do not match member dimensions"}
	}
	for _, c := range children {
		if srid, ok := c.SRID(); ok {
			if h.hasSRID && srid != h.srid {
				return header{}, &SRIDError{Reason: fmt.Sprintf("member srid %d does not match composite srid %d", srid, h.srid)}
			}
			h.srid, h.hasSRID = srid, true
		}
	}
	return h, nil
}

// checkChild validates a child inserted into an existing composite.
func checkChild(h *header, c Geometry) error {
	if c.DimZ() != h.dimZ || c.DimM() != h.dimM {
		return &DimensionalityError{Reason: "member dimensions do not match composite dimensions"}
	}
	if srid, ok := c.SRID(); ok {
		if h.hasSRID && srid != h.srid {
			return &SRIDError{Reason: fmt.Sprintf("member srid %d does not match composite srid %d", srid, h.srid)}
		}
		if !h.hasSRID {
			h.srid, h.hasSRID = srid, true
		}
	}
	return nil
}

// Equal reports structural equality of two geometries including their
// dimensionality and SRID. Comparing materializes both geometries.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	asrid, aok := a.SRID()
	bsrid, bok := b.SRID()
	if aok != bok || (aok && asrid != bsrid) {
		return false
	}
	if a.DimZ() != b.DimZ() || a.DimM() != b.DimM() {
		return false
	}
	if a.materialize() != nil || b.materialize() != nil {
		return false
	}
	return a.equalGeom(b)
}

func isHexString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

/*
New constructs a geometry from any supported input representation:

  - a string of hex digits: hex encoded WKB / EWKB (odd length fails with a
    WKBError)
  - a byte slice: raw WKB / EWKB
  - any other string: WKT / EWKT
  - a map with a "type" member: GeoJSON object tree
  - a value implementing GeoInterfacer: foreign shape
  - a Geometry: returned unchanged

Construction from bytes decodes the type word, SRID and dimension flags only
and retains the source bytes.
*/
func New(v any) (Geometry, error) {
	switch v := v.(type) {
	case Geometry:
		return v, nil
	case []byte:
		return DecodeWKB(v)
	case string:
		if isHexString(v) {
			return DecodeHex(v)
		}
		return DecodeWKT(v)
	case map[string]any:
		if _, ok := v["type"]; ok {
			return DecodeGeoJSON(v)
		}
		return nil, &WKBError{Offset: -1, Reason: "map input without type member"}
	case GeoInterfacer:
		return DecodeGeoJSON(v.GeoInterface())
	default:
		return nil, &WKBError{Offset: -1, Reason: fmt.Sprintf("unsupported input type %T", v)}
	}
}

// NewSRID constructs a geometry like New and sets the given SRID. An explicit
// SRID wins over the SRID implied by the input representation without error.
func NewSRID(v any, srid int32) (Geometry, error) {
	g, err := New(v)
	if err != nil {
		return nil, err
	}
	if cur, ok := g.SRID(); !ok || cur != srid {
		g.SetSRID(srid)
	}
	return g, nil
}
