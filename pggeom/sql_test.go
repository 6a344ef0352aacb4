// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import "testing"

func TestColumn(t *testing.T) {
	const hexEWKB = "01010000a0e6100000b81e85eb51005fc0713d0ad7a3804840000000000000f03f"

	var c Column
	if err := c.Scan(hexEWKB); err != nil {
		t.Fatal(err)
	}
	if c.Geometry == nil || c.Geometry.Type() != TypePoint {
		t.Fatalf("got %v", c.Geometry)
	}
	srid, ok := c.Geometry.SRID()
	if !ok || srid != 4326 {
		t.Fatalf("got srid %d %t expected 4326", srid, ok)
	}

	v, err := c.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != hexEWKB {
		t.Fatalf("got %v expected %s", v, hexEWKB)
	}

	// drivers commonly hand over hex as a byte slice
	if err := c.Scan([]byte(hexEWKB)); err != nil {
		t.Fatal(err)
	}
	if c.Geometry == nil || c.Geometry.Type() != TypePoint {
		t.Fatalf("got %v", c.Geometry)
	}

	if err := c.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if c.Geometry != nil {
		t.Fatal("got geometry, expected none")
	}
	v, err = c.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("got %v expected nil", v)
	}

	if err := c.Scan(42); err == nil {
		t.Fatal("got nil error scanning an int")
	}
}
