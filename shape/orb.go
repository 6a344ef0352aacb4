// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package shape

import (
	"github.com/paulmach/orb"

	"github.com/SAP/go-pggeom/pggeom"
)

// FromOrb converts an orb geometry. orb geometries are two dimensional and
// carry no SRID; pass WithSRID to set one.
func FromOrb(o orb.Geometry, opts ...pggeom.Option) (pggeom.Geometry, error) {
	switch o := o.(type) {
	case orb.Point:
		return pggeom.NewPoint([]float64{o[0], o[1]}, opts...)
	case orb.LineString:
		return pggeom.NewLineString(orbPositions([]orb.Point(o)), opts...)
	case orb.Ring:
		return pggeom.NewLineString(orbPositions([]orb.Point(o)), opts...)
	case orb.Polygon:
		return pggeom.NewPolygon(orbRings(o), opts...)
	case orb.MultiPoint:
		points := make([]*pggeom.Point, len(o))
		for i, pt := range o {
			p, err := pggeom.NewPoint([]float64{pt[0], pt[1]})
			if err != nil {
				return nil, err
			}
			points[i] = p
		}
		return pggeom.NewMultiPoint(points, opts...)
	case orb.MultiLineString:
		lineStrings := make([]*pggeom.LineString, len(o))
		for i, ls := range o {
			l, err := pggeom.NewLineString(orbPositions([]orb.Point(ls)))
			if err != nil {
				return nil, err
			}
			lineStrings[i] = l
		}
		return pggeom.NewMultiLineString(lineStrings, opts...)
	case orb.MultiPolygon:
		polygons := make([]*pggeom.Polygon, len(o))
		for i, poly := range o {
			p, err := pggeom.NewPolygon(orbRings(poly))
			if err != nil {
				return nil, err
			}
			polygons[i] = p
		}
		return pggeom.NewMultiPolygon(polygons, opts...)
	case orb.Collection:
		members := make([]pggeom.Geometry, len(o))
		for i, member := range o {
			g, err := FromOrb(member)
			if err != nil {
				return nil, err
			}
			members[i] = g
		}
		return pggeom.NewGeometryCollection(members, opts...)
	default:
		return nil, unsupported(o)
	}
}

func orbPositions(points []orb.Point) [][]float64 {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p[0], p[1]}
	}
	return coords
}

func orbRings(poly orb.Polygon) [][][]float64 {
	rings := make([][][]float64, len(poly))
	for i, ring := range poly {
		rings[i] = orbPositions([]orb.Point(ring))
	}
	return rings
}

// ToOrb converts to an orb geometry, dropping the Z and M dimensions and the
// SRID.
func ToOrb(g pggeom.Geometry) (orb.Geometry, error) {
	switch g := g.(type) {
	case *pggeom.Point:
		return orbPoint(g)
	case *pggeom.LineString:
		points, err := g.Points()
		if err != nil {
			return nil, err
		}
		return orb.LineString(orbPointList(points)), nil
	case *pggeom.Polygon:
		rings, err := g.Rings()
		if err != nil {
			return nil, err
		}
		return orbPolygon(rings)
	case *pggeom.MultiPoint:
		points, err := g.Points()
		if err != nil {
			return nil, err
		}
		return orb.MultiPoint(orbPointSlice(points)), nil
	case *pggeom.MultiLineString:
		lineStrings, err := g.LineStrings()
		if err != nil {
			return nil, err
		}
		m := make(orb.MultiLineString, len(lineStrings))
		for i, l := range lineStrings {
			points, err := l.Points()
			if err != nil {
				return nil, err
			}
			m[i] = orb.LineString(orbPointList(points))
		}
		return m, nil
	case *pggeom.MultiPolygon:
		polygons, err := g.Polygons()
		if err != nil {
			return nil, err
		}
		m := make(orb.MultiPolygon, len(polygons))
		for i, p := range polygons {
			rings, err := p.Rings()
			if err != nil {
				return nil, err
			}
			poly, err := orbPolygon(rings)
			if err != nil {
				return nil, err
			}
			m[i] = poly
		}
		return m, nil
	case *pggeom.GeometryCollection:
		members, err := g.Geometries()
		if err != nil {
			return nil, err
		}
		coll := make(orb.Collection, len(members))
		for i, member := range members {
			o, err := ToOrb(member)
			if err != nil {
				return nil, err
			}
			coll[i] = o
		}
		return coll, nil
	default:
		return nil, unsupported(g)
	}
}

func orbPoint(p *pggeom.Point) (orb.Point, error) {
	x, err := p.X()
	if err != nil {
		return orb.Point{}, err
	}
	y, err := p.Y()
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{x, y}, nil
}

func orbPointSlice(points []*pggeom.Point) []orb.Point {
	s := make([]orb.Point, len(points))
	for i, p := range points {
		x, _ := p.X()
		y, _ := p.Y()
		s[i] = orb.Point{x, y}
	}
	return s
}

func orbPointList(points []*pggeom.Point) []orb.Point { return orbPointSlice(points) }

func orbPolygon(rings []*pggeom.LineString) (orb.Polygon, error) {
	poly := make(orb.Polygon, len(rings))
	for i, ring := range rings {
		points, err := ring.Points()
		if err != nil {
			return nil, err
		}
		poly[i] = orb.Ring(orbPointSlice(points))
	}
	return poly, nil
}
