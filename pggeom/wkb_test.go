// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"errors"
	"strings"
	"testing"
)

func testDecodeHexPoint(t *testing.T) {
	const input = "01010000000000000000004ac00000000000000000"

	g, err := DecodeHex(input)
	if err != nil {
		t.Fatal(err)
	}
	if g.Type() != TypePoint {
		t.Fatalf("got type %s expected %s", g.Type(), TypePoint)
	}
	if _, ok := g.SRID(); ok {
		t.Fatal("got srid, expected none")
	}
	if g.DimZ() || g.DimM() {
		t.Fatal("got dimensions, expected 2d")
	}

	p := g.(*Point)
	x, err := p.X()
	if err != nil {
		t.Fatal(err)
	}
	if x != -52.0 {
		t.Fatalf("got x %f expected -52", x)
	}
	y, err := p.Y()
	if err != nil {
		t.Fatal(err)
	}
	if y != 0.0 {
		t.Fatalf("got y %f expected 0", y)
	}

	wkt, err := EncodeWKT(g)
	if err != nil {
		t.Fatal(err)
	}
	if wkt != "POINT (-52 0)" {
		t.Fatalf("got wkt %q", wkt)
	}
}

func testEncodePointZ(t *testing.T) {
	p, err := NewPoint([]float64{-124.005, 49.005, 1}, WithSRID(4326))
	if err != nil {
		t.Fatal(err)
	}
	if !p.DimZ() || p.DimM() {
		t.Fatal("expected z dimension only")
	}

	hexStr, err := EncodeHex(p)
	if err != nil {
		t.Fatal(err)
	}
	const ewkb = "01010000a0e6100000b81e85eb51005fc0713d0ad7a3804840000000000000f03f"
	if hexStr != ewkb {
		t.Fatalf("got ewkb %s expected %s", hexStr, ewkb)
	}

	wkt, err := EncodeWKT(p)
	if err != nil {
		t.Fatal(err)
	}
	if wkt != "POINT Z (-124.005 49.005 1)" {
		t.Fatalf("got wkt %q", wkt)
	}
	ewkt, err := EncodeEWKT(p)
	if err != nil {
		t.Fatal(err)
	}
	if ewkt != "SRID=4326;POINT Z (-124.005 49.005 1)" {
		t.Fatalf("got ewkt %q", ewkt)
	}
}

func testHexFidelity(t *testing.T) {
	// well formed inputs round trip byte for byte as long as no structural
	// read or mutation occurs
	inputs := []string{
		"01010000000000000000004ac00000000000000000",
		"01010000a0e6100000b81e85eb51005fc0713d0ad7a3804840000000000000f03f",
		"0101000080000000000000f03f00000000000000400000000000000840",
	}
	for _, input := range inputs {
		g, err := DecodeHex(input)
		if err != nil {
			t.Fatal(err)
		}
		out, err := EncodeHex(g)
		if err != nil {
			t.Fatal(err)
		}
		if out != strings.ToLower(input) {
			t.Fatalf("got %s expected %s", out, input)
		}
	}

	// upper case input is accepted, output is lower case
	g, err := DecodeHex(strings.ToUpper(inputs[0]))
	if err != nil {
		t.Fatal(err)
	}
	out, err := EncodeHex(g)
	if err != nil {
		t.Fatal(err)
	}
	if out != inputs[0] {
		t.Fatalf("got %s expected %s", out, inputs[0])
	}
}

func testCacheCoherence(t *testing.T) {
	// big endian input: the retained bytes are only returned as long as no
	// coordinate was read; afterwards output is re-encoded little endian
	const bigEndian = "0000000001" + "c04a000000000000" + "0000000000000000"
	const littleEndian = "01010000000000000000004ac00000000000000000"

	g, err := DecodeHex(bigEndian)
	if err != nil {
		t.Fatal(err)
	}

	// header reads do not drop the retained bytes
	g.Type()
	g.SRID()
	g.DimZ()
	g.DimM()
	out, err := EncodeHex(g)
	if err != nil {
		t.Fatal(err)
	}
	if out != bigEndian {
		t.Fatalf("got %s expected retained %s", out, bigEndian)
	}

	// a coordinate read materializes and drops the retained bytes
	if _, err := g.(*Point).X(); err != nil {
		t.Fatal(err)
	}
	out, err = EncodeHex(g)
	if err != nil {
		t.Fatal(err)
	}
	if out != littleEndian {
		t.Fatalf("got %s expected re-encoded %s", out, littleEndian)
	}
}

func testSRIDMutationDropsCache(t *testing.T) {
	const input = "01010000000000000000004ac00000000000000000"
	g, err := DecodeHex(input)
	if err != nil {
		t.Fatal(err)
	}
	g.SetSRID(4326)
	out, err := EncodeHex(g)
	if err != nil {
		t.Fatal(err)
	}
	const ewkb = "0101000020e61000000000000000004ac00000000000000000"
	if out != ewkb {
		t.Fatalf("got %s expected %s", out, ewkb)
	}
}

func testSRIDOverride(t *testing.T) {
	const ewkb = "01010000a0e6100000b81e85eb51005fc0713d0ad7a3804840000000000000f03f"

	// equal override keeps the retained bytes
	g, err := NewSRID(ewkb, 4326)
	if err != nil {
		t.Fatal(err)
	}
	out, err := EncodeHex(g)
	if err != nil {
		t.Fatal(err)
	}
	if out != ewkb {
		t.Fatalf("got %s expected retained %s", out, ewkb)
	}

	// a differing override wins without error
	g, err = NewSRID(ewkb, 3857)
	if err != nil {
		t.Fatal(err)
	}
	srid, ok := g.SRID()
	if !ok || srid != 3857 {
		t.Fatalf("got srid %d %t expected 3857", srid, ok)
	}
}

func testPlainWKBOmitsSRID(t *testing.T) {
	p, err := NewPoint([]float64{1, 2}, WithSRID(4326))
	if err != nil {
		t.Fatal(err)
	}
	wkb, err := EncodeWKB(p)
	if err != nil {
		t.Fatal(err)
	}
	g, err := DecodeWKB(wkb)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.SRID(); ok {
		t.Fatal("plain wkb must not carry an srid")
	}
}

func testWKBRoundTrip(t *testing.T) {
	wkts := []string{
		"POINT (1 2)",
		"POINT ZM (1 2 3 4)",
		"LINESTRING (0 0, 1 1, 2 0)",
		"LINESTRING M (0 0 1, 1 1 2)",
		"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (4 4, 6 4, 6 6, 4 6, 4 4))",
		"MULTIPOINT Z (0 0 0, 1 1 0)",
		"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))",
		"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((2 2, 3 2, 3 3, 2 2)))",
		"GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 1 1))",
	}
	for _, wkt := range wkts {
		g, err := DecodeWKT(wkt)
		if err != nil {
			t.Fatalf("%s: %s", wkt, err)
		}
		g.SetSRID(4326)
		ewkb, err := EncodeEWKB(g)
		if err != nil {
			t.Fatalf("%s: %s", wkt, err)
		}
		d, err := DecodeWKB(ewkb)
		if err != nil {
			t.Fatalf("%s: %s", wkt, err)
		}
		if !Equal(g, d) {
			t.Fatalf("%s: round trip mismatch: %s", wkt, d)
		}
	}
}

func testGeometryCollectionEWKB(t *testing.T) {
	g, err := NewSRID("GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 1 1))", 4326)
	if err != nil {
		t.Fatal(err)
	}
	ewkt, err := EncodeEWKT(g)
	if err != nil {
		t.Fatal(err)
	}
	if ewkt != "SRID=4326;GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 1 1))" {
		t.Fatalf("got ewkt %q", ewkt)
	}
	ewkb, err := EncodeEWKB(g)
	if err != nil {
		t.Fatal(err)
	}
	d, err := DecodeWKB(ewkb)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(g, d) {
		t.Fatalf("round trip mismatch: %s", d)
	}
}

func testWKBErrors(t *testing.T) {
	lazyErrors := []struct {
		name string
		hex  string
	}{
		{"odd length hex", "010100000000"[:11]},
		{"non hex input", "zz010000000000000000004ac00000000000000000"},
		{"invalid endian byte", "02010000000000000000004ac00000000000000000"},
		{"unsupported type", "01080000000000000000004ac00000000000000000"},
		{"stray flag bits", "01010100000000000000004ac00000000000000000"},
		{"truncated header", "0101"},
	}
	for _, v := range lazyErrors {
		if _, err := DecodeHex(v.hex); err == nil {
			t.Fatalf("%s: got nil error", v.name)
		} else {
			var wkbErr *WKBError
			if !errors.As(err, &wkbErr) {
				t.Fatalf("%s: got %T expected WKBError", v.name, err)
			}
		}
	}

	structuralErrors := []struct {
		name string
		hex  string
	}{
		{"truncated payload", "01010000000000000000004ac000000000"},
		// multi point whose member bears the srid flag
		{"srid flag on nested child", "0104000020e610000001000000" + "0101000020e6100000" + "0000000000000000" + "0000000000000000"},
		// multi point z with a 2d member
		{"dimension mismatch", "010400008001000000" + "0101000000" + "0000000000000000" + "0000000000000000"},
	}
	for _, v := range structuralErrors {
		g, err := DecodeHex(v.hex)
		if err != nil {
			t.Fatalf("%s: header decode failed: %s", v.name, err)
		}
		if _, err := g.Bounds(); err == nil {
			t.Fatalf("%s: got nil error", v.name)
		} else {
			var wkbErr *WKBError
			if !errors.As(err, &wkbErr) {
				t.Fatalf("%s: got %T expected WKBError", v.name, err)
			}
		}
	}
}

func testLazyHeader(t *testing.T) {
	// a valid header over a corrupt payload decodes fine; the first
	// structural read reports the error
	const input = "01020000000a000000"
	g, err := DecodeHex(input)
	if err != nil {
		t.Fatal(err)
	}
	if g.Type() != TypeLineString {
		t.Fatalf("got type %s", g.Type())
	}
	if _, err := g.(*LineString).Points(); err == nil {
		t.Fatal("got nil error reading a corrupt payload")
	}
}

func TestWKB(t *testing.T) {
	tests := []struct {
		name string
		fct  func(t *testing.T)
	}{
		{"decodeHexPoint", testDecodeHexPoint},
		{"encodePointZ", testEncodePointZ},
		{"hexFidelity", testHexFidelity},
		{"cacheCoherence", testCacheCoherence},
		{"sridMutationDropsCache", testSRIDMutationDropsCache},
		{"sridOverride", testSRIDOverride},
		{"plainWKBOmitsSRID", testPlainWKBOmitsSRID},
		{"roundTrip", testWKBRoundTrip},
		{"geometryCollectionEWKB", testGeometryCollectionEWKB},
		{"errors", testWKBErrors},
		{"lazyHeader", testLazyHeader},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.fct(t)
		})
	}
}
