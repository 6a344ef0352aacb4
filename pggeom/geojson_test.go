// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"encoding/json"
	"errors"
	"testing"
)

func testGeoJSONPolygon(t *testing.T) {
	g, err := DecodeWKT("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (4 4, 6 4, 6 6, 4 6, 4 4))")
	if err != nil {
		t.Fatal(err)
	}
	m, err := EncodeGeoJSON(g)
	if err != nil {
		t.Fatal(err)
	}
	if m["type"] != "Polygon" {
		t.Fatalf("got type %v", m["type"])
	}
	coords, err := json.Marshal(m["coordinates"])
	if err != nil {
		t.Fatal(err)
	}
	const want = "[[[0,0],[10,0],[10,10],[0,10],[0,0]],[[4,4],[6,4],[6,6],[4,6],[4,4]]]"
	if string(coords) != want {
		t.Fatalf("got coordinates %s expected %s", coords, want)
	}
}

func testGeoJSONRoundTrip(t *testing.T) {
	wkts := []string{
		"POINT (1 2)",
		"POINT Z (1 2 3)",
		"LINESTRING (0 0, 1 1, 2 0)",
		"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))",
		"MULTIPOINT (0 0, 1 1)",
		"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))",
		"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)))",
		"GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 1 1))",
	}
	for _, wkt := range wkts {
		g, err := DecodeWKT(wkt)
		if err != nil {
			t.Fatalf("%s: %s", wkt, err)
		}
		m, err := EncodeGeoJSON(g)
		if err != nil {
			t.Fatalf("%s: %s", wkt, err)
		}
		d, err := DecodeGeoJSON(m)
		if err != nil {
			t.Fatalf("%s: %s", wkt, err)
		}
		if !Equal(g, d) {
			t.Fatalf("%s: round trip mismatch: %s", wkt, d)
		}
	}
}

func testGeoJSONDropsM(t *testing.T) {
	g, err := DecodeWKT("POINT ZM (1 2 3 4)")
	if err != nil {
		t.Fatal(err)
	}
	m, err := EncodeGeoJSON(g)
	if err != nil {
		t.Fatal(err)
	}
	coords := m["coordinates"].([]any)
	if len(coords) != 3 {
		t.Fatalf("got %d coordinates expected 3 (m dropped)", len(coords))
	}

	g, err = DecodeWKT("POINT M (1 2 3)")
	if err != nil {
		t.Fatal(err)
	}
	m, err = EncodeGeoJSON(g)
	if err != nil {
		t.Fatal(err)
	}
	coords = m["coordinates"].([]any)
	if len(coords) != 2 {
		t.Fatalf("got %d coordinates expected 2 (m dropped)", len(coords))
	}
}

func testGeoJSONNoSRID(t *testing.T) {
	// a document without crs is read as "no srid"; an explicit override wins
	doc := map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}}
	g, err := DecodeGeoJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.SRID(); ok {
		t.Fatal("got srid, expected none")
	}

	g, err = NewSRID(doc, 4326)
	if err != nil {
		t.Fatal(err)
	}
	if srid, ok := g.SRID(); !ok || srid != 4326 {
		t.Fatalf("got srid %d %t expected 4326", srid, ok)
	}
}

func testGeoJSONViaJSON(t *testing.T) {
	p, err := NewPoint([]float64{1.5, 2.5, 3.5})
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"coordinates":[1.5,2.5,3.5],"type":"Point"}`
	if string(b) != want {
		t.Fatalf("got %s expected %s", b, want)
	}

	var q Point
	if err := json.Unmarshal(b, &q); err != nil {
		t.Fatal(err)
	}
	if !Equal(p, &q) {
		t.Fatalf("got %s expected %s", &q, p)
	}

	// unmarshaling a different class fails
	var l LineString
	if err := json.Unmarshal(b, &l); err == nil {
		t.Fatal("got nil error unmarshaling a point into a line string")
	}

	var tree map[string]any
	if err := json.Unmarshal(b, &tree); err != nil {
		t.Fatal(err)
	}
	g, err := DecodeGeoJSON(tree)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(p, g) {
		t.Fatalf("got %s expected %s", g, p)
	}
}

func testGeoJSONErrors(t *testing.T) {
	docs := []struct {
		name string
		doc  map[string]any
	}{
		{"missing type", map[string]any{"coordinates": []any{1.0, 2.0}}},
		{"missing coordinates", map[string]any{"type": "Point"}},
		{"unsupported type", map[string]any{"type": "Feature", "coordinates": []any{1.0, 2.0}}},
		{"arity too low", map[string]any{"type": "Point", "coordinates": []any{1.0}}},
		{"arity too high", map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0, 3.0, 4.0}}},
		{"mixed arities", map[string]any{"type": "LineString", "coordinates": []any{
			[]any{0.0, 0.0}, []any{1.0, 1.0, 1.0},
		}}},
		{"missing geometries", map[string]any{"type": "GeometryCollection"}},
		{"non numeric coordinate", map[string]any{"type": "Point", "coordinates": []any{"a", "b"}}},
	}
	for _, v := range docs {
		if _, err := DecodeGeoJSON(v.doc); err == nil {
			t.Fatalf("%s: got nil error", v.name)
		} else {
			var jsonErr *GeoJSONError
			if !errors.As(err, &jsonErr) {
				t.Fatalf("%s: got %T %s expected GeoJSONError", v.name, err, err)
			}
		}
	}
}

func TestGeoJSON(t *testing.T) {
	tests := []struct {
		name string
		fct  func(t *testing.T)
	}{
		{"polygon", testGeoJSONPolygon},
		{"roundTrip", testGeoJSONRoundTrip},
		{"dropsM", testGeoJSONDropsM},
		{"noSRID", testGeoJSONNoSRID},
		{"viaJSON", testGeoJSONViaJSON},
		{"errors", testGeoJSONErrors},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.fct(t)
		})
	}
}
