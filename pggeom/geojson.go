// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"encoding/json"
	"fmt"
)

/*
EncodeGeoJSON converts a geometry to a GeoJSON shaped map. The M dimension is
dropped, Z is kept as 3 element positions. A GeometryCollection encodes its
members under "geometries", all other classes encode "coordinates". No crs
member is emitted.
*/
func EncodeGeoJSON(g Geometry) (map[string]any, error) {
	if err := g.materialize(); err != nil {
		return nil, err
	}
	if c, ok := g.(*GeometryCollection); ok {
		members := make([]any, len(c.geometries))
		for i, member := range c.geometries {
			m, err := EncodeGeoJSON(member)
			if err != nil {
				return nil, err
			}
			members[i] = m
		}
		return map[string]any{"type": c.Type().String(), "geometries": members}, nil
	}
	return map[string]any{"type": g.Type().String(), "coordinates": g.jsonCoordinates()}, nil
}

// Coordinates returns the nested coordinate tree backing the GeoJSON
// representation of a geometry. Geometry collections have no coordinate tree.
func Coordinates(g Geometry) (any, error) {
	if g.Type() == TypeGeometryCollection {
		return nil, &GeoJSONError{Reason: "a geometry collection has no coordinates"}
	}
	if err := g.materialize(); err != nil {
		return nil, err
	}
	return g.jsonCoordinates(), nil
}

func geoInterface(g Geometry) map[string]any {
	m, err := EncodeGeoJSON(g)
	if err != nil {
		return nil
	}
	return m
}

func marshalGeoJSON(g Geometry) ([]byte, error) {
	m, err := EncodeGeoJSON(g)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// unmarshalGeoJSON implements UnmarshalJSON for all variants.
func unmarshalGeoJSON(b []byte) (Geometry, error) {
	var tree map[string]any
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, &GeoJSONError{Reason: err.Error()}
	}
	return DecodeGeoJSON(tree)
}

func jsonNumber(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// jsonPosition decodes one coordinate of arity 2 or 3.
func jsonPosition(v any) ([]float64, error) {
	s, ok := v.([]any)
	if !ok {
		if fs, ok := v.([]float64); ok {
			s = make([]any, len(fs))
			for i, f := range fs {
				s[i] = f
			}
		} else {
			return nil, &GeoJSONError{Reason: fmt.Sprintf("invalid position %v", v)}
		}
	}
	if len(s) < 2 || len(s) > 3 {
		return nil, &GeoJSONError{Reason: fmt.Sprintf("position with %d components, want 2 or 3", len(s))}
	}
	pos := make([]float64, len(s))
	for i, c := range s {
		f, ok := jsonNumber(c)
		if !ok {
			return nil, &GeoJSONError{Reason: fmt.Sprintf("invalid coordinate %v", c)}
		}
		pos[i] = f
	}
	return pos, nil
}

func jsonPositions(v any) ([][]float64, error) {
	s, ok := v.([]any)
	if !ok {
		return nil, &GeoJSONError{Reason: fmt.Sprintf("invalid position list %v", v)}
	}
	positions := make([][]float64, len(s))
	for i, p := range s {
		pos, err := jsonPosition(p)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}
	return positions, nil
}

func jsonRings(v any) ([][][]float64, error) {
	s, ok := v.([]any)
	if !ok {
		return nil, &GeoJSONError{Reason: fmt.Sprintf("invalid ring list %v", v)}
	}
	rings := make([][][]float64, len(s))
	for i, r := range s {
		positions, err := jsonPositions(r)
		if err != nil {
			return nil, err
		}
		rings[i] = positions
	}
	return rings, nil
}

// uniformArity rejects mixed coordinate arities within one geometry.
func uniformArity(positions [][]float64) (z bool, err error) {
	if len(positions) == 0 {
		return false, nil
	}
	arity := len(positions[0])
	for _, p := range positions {
		if len(p) != arity {
			return false, &GeoJSONError{Reason: "mixed coordinate arities"}
		}
	}
	return arity == 3, nil
}

/*
DecodeGeoJSON constructs a geometry from a GeoJSON shaped map. The M
dimension does not exist in GeoJSON; 3 element positions are read as x, y, z.
Any crs member is ignored: the geometry has no SRID unless one is set
explicitly.
*/
func DecodeGeoJSON(m map[string]any) (Geometry, error) {
	typeName, ok := m["type"].(string)
	if !ok {
		return nil, &GeoJSONError{Reason: "missing type member"}
	}
	if typeName == "GeometryCollection" {
		members, ok := m["geometries"].([]any)
		if !ok {
			return nil, &GeoJSONError{Reason: "missing geometries member"}
		}
		geometries := make([]Geometry, len(members))
		for i, member := range members {
			mm, ok := member.(map[string]any)
			if !ok {
				return nil, &GeoJSONError{Reason: fmt.Sprintf("invalid member geometry %v", member)}
			}
			g, err := DecodeGeoJSON(mm)
			if err != nil {
				return nil, err
			}
			geometries[i] = g
		}
		return NewGeometryCollection(geometries)
	}

	coords, ok := m["coordinates"]
	if !ok {
		return nil, &GeoJSONError{Reason: "missing coordinates member"}
	}

	switch typeName {
	case "Point":
		pos, err := jsonPosition(coords)
		if err != nil {
			return nil, err
		}
		return NewPoint(pos)

	case "LineString", "MultiPoint":
		positions, err := jsonPositions(coords)
		if err != nil {
			return nil, err
		}
		z, err := uniformArity(positions)
		if err != nil {
			return nil, err
		}
		if typeName == "LineString" {
			return NewLineString(positions, WithDims(z, false))
		}
		points := make([]*Point, len(positions))
		for i, pos := range positions {
			points[i] = newPointDims(pos, z, false)
		}
		return NewMultiPoint(points, WithDims(z, false))

	case "Polygon", "MultiLineString":
		rings, err := jsonRings(coords)
		if err != nil {
			return nil, err
		}
		var flat [][]float64
		for _, ring := range rings {
			flat = append(flat, ring...)
		}
		z, err := uniformArity(flat)
		if err != nil {
			return nil, err
		}
		if typeName == "Polygon" {
			return NewPolygon(rings, WithDims(z, false))
		}
		lineStrings := make([]*LineString, len(rings))
		for i, coords := range rings {
			l, err := NewLineString(coords, WithDims(z, false))
			if err != nil {
				return nil, err
			}
			lineStrings[i] = l
		}
		return NewMultiLineString(lineStrings, WithDims(z, false))

	case "MultiPolygon":
		s, ok := coords.([]any)
		if !ok {
			return nil, &GeoJSONError{Reason: fmt.Sprintf("invalid polygon list %v", coords)}
		}
		members := make([][][][]float64, len(s))
		var flat [][]float64
		for i, member := range s {
			rings, err := jsonRings(member)
			if err != nil {
				return nil, err
			}
			members[i] = rings
			for _, ring := range rings {
				flat = append(flat, ring...)
			}
		}
		z, err := uniformArity(flat)
		if err != nil {
			return nil, err
		}
		polygons := make([]*Polygon, len(members))
		for i, rings := range members {
			pg, err := NewPolygon(rings, WithDims(z, false))
			if err != nil {
				return nil, err
			}
			polygons[i] = pg
		}
		return NewMultiPolygon(polygons, WithDims(z, false))

	default:
		return nil, &GeoJSONError{Reason: fmt.Sprintf("unsupported geometry type %q", typeName)}
	}
}
