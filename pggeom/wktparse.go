// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SAP/go-pggeom/pggeom/internal/scanner"
)

type wktParser struct {
	sc  *scanner.Scanner
	tok rune
	val string
	pos int
}

func (p *wktParser) next() {
	p.tok = p.sc.Next()
	p.val = p.sc.Value()
	p.pos = p.sc.Pos()
}

func (p *wktParser) errorf(format string, args ...any) *WKTError {
	return &WKTError{Pos: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *wktParser) expectDelimiter(ch byte) error {
	if p.tok != scanner.Delimiter || p.val != string(ch) {
		return p.errorf("%q expected, got %s %q", string(ch), scanner.TokenString(p.tok), p.val)
	}
	p.next()
	return nil
}

// DecodeWKT constructs a geometry from WKT / EWKT. Geometry keywords and
// dimension modifiers are case insensitive; an optional SRID=n; prefix sets
// the SRID.
func DecodeWKT(s string) (Geometry, error) {
	sc := scanner.NewScanner(s)
	defer sc.FreeScanner()
	p := &wktParser{sc: sc}
	p.next()

	var srid int32
	hasSRID := false
	if p.tok == scanner.Identifier && strings.EqualFold(p.val, "SRID") {
		p.next()
		if p.tok != scanner.Operator {
			return nil, p.errorf("\"=\" expected after SRID")
		}
		p.next()
		if p.tok != scanner.Number {
			return nil, p.errorf("srid number expected")
		}
		n, err := strconv.ParseInt(p.val, 10, 32)
		if err != nil {
			return nil, p.errorf("invalid srid %q", p.val)
		}
		srid = int32(n)
		hasSRID = true
		p.next()
		if err := p.expectDelimiter(';'); err != nil {
			return nil, err
		}
	}

	g, err := p.parseGeometry()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected trailing input %q", p.val)
	}
	if hasSRID {
		g.SetSRID(srid)
	}
	return g, nil
}

/*
parseModifier consumes an optional Z, M or ZM dimension modifier. EMPTY is
rejected: empty geometries are not modelled.
*/
func (p *wktParser) parseModifier() (z, m, explicit bool, err error) {
	if p.tok != scanner.Identifier {
		return false, false, false, nil
	}
	switch strings.ToUpper(p.val) {
	case "Z":
		z, explicit = true, true
	case "M":
		m, explicit = true, true
	case "ZM":
		z, m, explicit = true, true, true
	case "EMPTY":
		return false, false, false, p.errorf("empty geometries are not supported")
	default:
		return false, false, false, p.errorf("unexpected identifier %q", p.val)
	}
	p.next()
	if p.tok == scanner.Identifier && strings.EqualFold(p.val, "EMPTY") {
		return false, false, false, p.errorf("empty geometries are not supported")
	}
	return z, m, explicit, nil
}

func (p *wktParser) parseGeometry() (Geometry, error) {
	if p.tok != scanner.Identifier {
		return nil, p.errorf("geometry keyword expected, got %s %q", scanner.TokenString(p.tok), p.val)
	}
	keyword := strings.ToUpper(p.val)
	p.next()
	z, m, explicit, err := p.parseModifier()
	if err != nil {
		return nil, err
	}
	dims := dimSpec{z: z, m: m, explicit: explicit}

	switch keyword {
	case "POINT":
		return p.parsePoint(dims)
	case "LINESTRING":
		return p.parseLineString(dims)
	case "POLYGON":
		return p.parsePolygon(dims)
	case "MULTIPOINT":
		return p.parseMultiPoint(dims)
	case "MULTILINESTRING":
		return p.parseMultiLineString(dims)
	case "MULTIPOLYGON":
		return p.parseMultiPolygon(dims)
	case "GEOMETRYCOLLECTION":
		return p.parseGeometryCollection(dims)
	default:
		return nil, p.errorf("unknown geometry type %q", keyword)
	}
}

type dimSpec struct {
	z, m     bool
	explicit bool
}

/*
resolve validates the arity of parsed coordinates against the dimension
modifier. Without a modifier the arity of the first coordinate decides;
3 components are read as x, y, z, never as x, y, m.
*/
func (s dimSpec) resolve(p *wktParser, coords [][]float64) (z, m bool, err error) {
	z, m = s.z, s.m
	if len(coords) == 0 {
		return z, m, nil
	}
	if !s.explicit {
		switch len(coords[0]) {
		case 2:
		case 3:
			z = true
		case 4:
			z, m = true, true
		default:
			return false, false, p.errorf("coordinate with %d components", len(coords[0]))
		}
	}
	want := 2 + btoi(z) + btoi(m)
	for _, c := range coords {
		if len(c) != want {
			return false, false, p.errorf("coordinate with %d components, dimensionality requires %d", len(c), want)
		}
	}
	return z, m, nil
}

// parseCoord parses 2 to 4 space separated numbers.
func (p *wktParser) parseCoord() ([]float64, error) {
	var coord []float64
	for p.tok == scanner.Number {
		f, err := strconv.ParseFloat(p.val, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", p.val)
		}
		coord = append(coord, f)
		p.next()
	}
	if len(coord) < 2 || len(coord) > 4 {
		return nil, p.errorf("coordinate with %d components, want 2 to 4", len(coord))
	}
	return coord, nil
}

// parseCoordList parses "(" coord ("," coord)* ")".
func (p *wktParser) parseCoordList() ([][]float64, error) {
	if err := p.expectDelimiter('('); err != nil {
		return nil, err
	}
	var coords [][]float64
	for {
		coord, err := p.parseCoord()
		if err != nil {
			return nil, err
		}
		coords = append(coords, coord)
		if p.tok == scanner.Delimiter && p.val == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expectDelimiter(')'); err != nil {
		return nil, err
	}
	return coords, nil
}

func (p *wktParser) parsePoint(dims dimSpec) (*Point, error) {
	if err := p.expectDelimiter('('); err != nil {
		return nil, err
	}
	coord, err := p.parseCoord()
	if err != nil {
		return nil, err
	}
	if err := p.expectDelimiter(')'); err != nil {
		return nil, err
	}
	z, m, err := dims.resolve(p, [][]float64{coord})
	if err != nil {
		return nil, err
	}
	return NewPoint(coord, WithDims(z, m))
}

func (p *wktParser) parseLineString(dims dimSpec) (*LineString, error) {
	coords, err := p.parseCoordList()
	if err != nil {
		return nil, err
	}
	z, m, err := dims.resolve(p, coords)
	if err != nil {
		return nil, err
	}
	return NewLineString(coords, WithDims(z, m))
}

// parsePolygonBody parses "(" ring ("," ring)* ")".
func (p *wktParser) parsePolygonBody() ([][][]float64, error) {
	if err := p.expectDelimiter('('); err != nil {
		return nil, err
	}
	var rings [][][]float64
	for {
		ring, err := p.parseCoordList()
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
		if p.tok == scanner.Delimiter && p.val == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expectDelimiter(')'); err != nil {
		return nil, err
	}
	return rings, nil
}

func (p *wktParser) parsePolygon(dims dimSpec) (*Polygon, error) {
	rings, err := p.parsePolygonBody()
	if err != nil {
		return nil, err
	}
	var flat [][]float64
	for _, ring := range rings {
		flat = append(flat, ring...)
	}
	z, m, err := dims.resolve(p, flat)
	if err != nil {
		return nil, err
	}
	return NewPolygon(rings, WithDims(z, m))
}

func (p *wktParser) parseMultiPoint(dims dimSpec) (*MultiPoint, error) {
	if err := p.expectDelimiter('('); err != nil {
		return nil, err
	}
	var coords [][]float64
	for {
		// members are either bare coordinates or parenthesized
		var coord []float64
		var err error
		if p.tok == scanner.Delimiter && p.val == "(" {
			p.next()
			coord, err = p.parseCoord()
			if err != nil {
				return nil, err
			}
			if err = p.expectDelimiter(')'); err != nil {
				return nil, err
			}
		} else {
			coord, err = p.parseCoord()
			if err != nil {
				return nil, err
			}
		}
		coords = append(coords, coord)
		if p.tok == scanner.Delimiter && p.val == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expectDelimiter(')'); err != nil {
		return nil, err
	}
	z, m, err := dims.resolve(p, coords)
	if err != nil {
		return nil, err
	}
	points := make([]*Point, len(coords))
	for i, c := range coords {
		points[i] = newPointDims(c, z, m)
	}
	return NewMultiPoint(points, WithDims(z, m))
}

func (p *wktParser) parseMultiLineString(dims dimSpec) (*MultiLineString, error) {
	if err := p.expectDelimiter('('); err != nil {
		return nil, err
	}
	var members [][][]float64
	for {
		coords, err := p.parseCoordList()
		if err != nil {
			return nil, err
		}
		members = append(members, coords)
		if p.tok == scanner.Delimiter && p.val == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expectDelimiter(')'); err != nil {
		return nil, err
	}
	var flat [][]float64
	for _, coords := range members {
		flat = append(flat, coords...)
	}
	z, m, err := dims.resolve(p, flat)
	if err != nil {
		return nil, err
	}
	lineStrings := make([]*LineString, len(members))
	for i, coords := range members {
		l, err := NewLineString(coords, WithDims(z, m))
		if err != nil {
			return nil, err
		}
		lineStrings[i] = l
	}
	return NewMultiLineString(lineStrings, WithDims(z, m))
}

func (p *wktParser) parseMultiPolygon(dims dimSpec) (*MultiPolygon, error) {
	if err := p.expectDelimiter('('); err != nil {
		return nil, err
	}
	var members [][][][]float64
	for {
		rings, err := p.parsePolygonBody()
		if err != nil {
			return nil, err
		}
		members = append(members, rings)
		if p.tok == scanner.Delimiter && p.val == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expectDelimiter(')'); err != nil {
		return nil, err
	}
	var flat [][]float64
	for _, rings := range members {
		for _, ring := range rings {
			flat = append(flat, ring...)
		}
	}
	z, m, err := dims.resolve(p, flat)
	if err != nil {
		return nil, err
	}
	polygons := make([]*Polygon, len(members))
	for i, rings := range members {
		pg, err := NewPolygon(rings, WithDims(z, m))
		if err != nil {
			return nil, err
		}
		polygons[i] = pg
	}
	return NewMultiPolygon(polygons, WithDims(z, m))
}

func (p *wktParser) parseGeometryCollection(dims dimSpec) (*GeometryCollection, error) {
	if err := p.expectDelimiter('('); err != nil {
		return nil, err
	}
	var members []Geometry
	for {
		g, err := p.parseGeometry()
		if err != nil {
			return nil, err
		}
		members = append(members, g)
		if p.tok == scanner.Delimiter && p.val == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expectDelimiter(')'); err != nil {
		return nil, err
	}
	if dims.explicit {
		for _, g := range members {
			if g.DimZ() != dims.z || g.DimM() != dims.m {
				return nil, p.errorf("member dimensions do not match collection modifier")
			}
		}
		return NewGeometryCollection(members, WithDims(dims.z, dims.m))
	}
	return NewGeometryCollection(members)
}
