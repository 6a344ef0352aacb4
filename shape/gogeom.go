// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package shape

import (
	"github.com/twpayne/go-geom"

	"github.com/SAP/go-pggeom/pggeom"
)

func layoutDims(l geom.Layout) (z, m bool) {
	switch l {
	case geom.XYZ:
		return true, false
	case geom.XYM:
		return false, true
	case geom.XYZM:
		return true, true
	default:
		return false, false
	}
}

func dimsLayout(z, m bool) geom.Layout {
	switch {
	case z && m:
		return geom.XYZM
	case z:
		return geom.XYZ
	case m:
		return geom.XYM
	default:
		return geom.XY
	}
}

func coordSlices(coords []geom.Coord) [][]float64 {
	s := make([][]float64, len(coords))
	for i, c := range coords {
		s[i] = []float64(c)
	}
	return s
}

func ringSlices(rings [][]geom.Coord) [][][]float64 {
	s := make([][][]float64, len(rings))
	for i, ring := range rings {
		s[i] = coordSlices(ring)
	}
	return s
}

// FromGoGeom converts a go-geom geometry. A go-geom SRID of 0 maps to an
// absent SRID.
func FromGoGeom(t geom.T) (pggeom.Geometry, error) {
	z, m := layoutDims(t.Layout())
	var opts []pggeom.Option
	opts = append(opts, pggeom.WithDims(z, m))
	if srid := t.SRID(); srid != 0 {
		opts = append(opts, pggeom.WithSRID(int32(srid)))
	}

	switch t := t.(type) {
	case *geom.Point:
		return pggeom.NewPoint([]float64(t.Coords()), opts...)
	case *geom.LineString:
		return pggeom.NewLineString(coordSlices(t.Coords()), opts...)
	case *geom.Polygon:
		return pggeom.NewPolygon(ringSlices(t.Coords()), opts...)
	case *geom.MultiPoint:
		coords := t.Coords()
		points := make([]*pggeom.Point, len(coords))
		for i, c := range coords {
			p, err := pggeom.NewPoint([]float64(c), pggeom.WithDims(z, m))
			if err != nil {
				return nil, err
			}
			points[i] = p
		}
		return pggeom.NewMultiPoint(points, opts...)
	case *geom.MultiLineString:
		members := t.Coords()
		lineStrings := make([]*pggeom.LineString, len(members))
		for i, coords := range members {
			l, err := pggeom.NewLineString(coordSlices(coords), pggeom.WithDims(z, m))
			if err != nil {
				return nil, err
			}
			lineStrings[i] = l
		}
		return pggeom.NewMultiLineString(lineStrings, opts...)
	case *geom.MultiPolygon:
		members := t.Coords()
		polygons := make([]*pggeom.Polygon, len(members))
		for i, rings := range members {
			p, err := pggeom.NewPolygon(ringSlices(rings), pggeom.WithDims(z, m))
			if err != nil {
				return nil, err
			}
			polygons[i] = p
		}
		return pggeom.NewMultiPolygon(polygons, opts...)
	case *geom.GeometryCollection:
		geoms := t.Geoms()
		members := make([]pggeom.Geometry, len(geoms))
		for i, member := range geoms {
			g, err := FromGoGeom(member)
			if err != nil {
				return nil, err
			}
			members[i] = g
		}
		collOpts := []pggeom.Option{}
		if srid := t.SRID(); srid != 0 {
			collOpts = append(collOpts, pggeom.WithSRID(int32(srid)))
		}
		return pggeom.NewGeometryCollection(members, collOpts...)
	default:
		return nil, unsupported(t)
	}
}

func pointCoord(p *pggeom.Point) (geom.Coord, error) {
	x, err := p.X()
	if err != nil {
		return nil, err
	}
	y, err := p.Y()
	if err != nil {
		return nil, err
	}
	c := geom.Coord{x, y}
	if p.DimZ() {
		z, err := p.Z()
		if err != nil {
			return nil, err
		}
		c = append(c, z)
	}
	if p.DimM() {
		m, err := p.M()
		if err != nil {
			return nil, err
		}
		c = append(c, m)
	}
	return c, nil
}

func pointCoords(points []*pggeom.Point) ([]geom.Coord, error) {
	coords := make([]geom.Coord, len(points))
	for i, p := range points {
		c, err := pointCoord(p)
		if err != nil {
			return nil, err
		}
		coords[i] = c
	}
	return coords, nil
}

func ringCoords(rings []*pggeom.LineString) ([][]geom.Coord, error) {
	coords := make([][]geom.Coord, len(rings))
	for i, ring := range rings {
		points, err := ring.Points()
		if err != nil {
			return nil, err
		}
		c, err := pointCoords(points)
		if err != nil {
			return nil, err
		}
		coords[i] = c
	}
	return coords, nil
}

func geomSRID(g pggeom.Geometry) int {
	if srid, ok := g.SRID(); ok {
		return int(srid)
	}
	return 0
}

// ToGoGeom converts to a go-geom geometry. An absent SRID maps to the
// go-geom SRID 0.
func ToGoGeom(g pggeom.Geometry) (geom.T, error) {
	layout := dimsLayout(g.DimZ(), g.DimM())
	srid := geomSRID(g)

	switch g := g.(type) {
	case *pggeom.Point:
		c, err := pointCoord(g)
		if err != nil {
			return nil, err
		}
		p, err := geom.NewPoint(layout).SetCoords(c)
		if err != nil {
			return nil, err
		}
		return p.SetSRID(srid), nil
	case *pggeom.LineString:
		points, err := g.Points()
		if err != nil {
			return nil, err
		}
		coords, err := pointCoords(points)
		if err != nil {
			return nil, err
		}
		l, err := geom.NewLineString(layout).SetCoords(coords)
		if err != nil {
			return nil, err
		}
		return l.SetSRID(srid), nil
	case *pggeom.Polygon:
		rings, err := g.Rings()
		if err != nil {
			return nil, err
		}
		coords, err := ringCoords(rings)
		if err != nil {
			return nil, err
		}
		p, err := geom.NewPolygon(layout).SetCoords(coords)
		if err != nil {
			return nil, err
		}
		return p.SetSRID(srid), nil
	case *pggeom.MultiPoint:
		points, err := g.Points()
		if err != nil {
			return nil, err
		}
		coords, err := pointCoords(points)
		if err != nil {
			return nil, err
		}
		m, err := geom.NewMultiPoint(layout).SetCoords(coords)
		if err != nil {
			return nil, err
		}
		return m.SetSRID(srid), nil
	case *pggeom.MultiLineString:
		lineStrings, err := g.LineStrings()
		if err != nil {
			return nil, err
		}
		coords, err := ringCoords(lineStrings)
		if err != nil {
			return nil, err
		}
		m, err := geom.NewMultiLineString(layout).SetCoords(coords)
		if err != nil {
			return nil, err
		}
		return m.SetSRID(srid), nil
	case *pggeom.MultiPolygon:
		polygons, err := g.Polygons()
		if err != nil {
			return nil, err
		}
		coords := make([][][]geom.Coord, len(polygons))
		for i, p := range polygons {
			rings, err := p.Rings()
			if err != nil {
				return nil, err
			}
			c, err := ringCoords(rings)
			if err != nil {
				return nil, err
			}
			coords[i] = c
		}
		m, err := geom.NewMultiPolygon(layout).SetCoords(coords)
		if err != nil {
			return nil, err
		}
		return m.SetSRID(srid), nil
	case *pggeom.GeometryCollection:
		members, err := g.Geometries()
		if err != nil {
			return nil, err
		}
		gc := geom.NewGeometryCollection()
		for _, member := range members {
			t, err := ToGoGeom(member)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(t); err != nil {
				return nil, err
			}
		}
		return gc.SetSRID(srid), nil
	default:
		return nil, unsupported(g)
	}
}
