//go:build !unit

// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP/go-pggeom/pggeom"
	"github.com/SAP/go-pggeom/pggeom/drivertest"
)

/*
TestPostGIS round trips geometries through a real PostGIS instance: the hex
EWKB this package emits has to be accepted verbatim by PostGIS, and the hex
PostGIS emits has to decode into an equal geometry.

Set PGGEOM_TEST_DSN to use an existing database; otherwise a disposable
container is started (requires a container runtime).
*/
func TestPostGIS(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv, err := drivertest.Start(ctx, logger)
	if err != nil {
		t.Skipf("no PostGIS available: %s", err)
	}
	t.Cleanup(func() {
		if err := srv.Close(ctx); err != nil {
			t.Log(err)
		}
	})

	conn, err := srv.Connect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := conn.Close(ctx); err != nil {
			t.Log(err)
		}
	})

	ewkts := []string{
		"SRID=4326;POINT Z (-124.005 49.005 1)",
		"SRID=4326;POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (4 4, 6 4, 6 6, 4 6, 4 4))",
		"SRID=4326;MULTIPOINT Z (0 0 0, 1 1 0)",
		"SRID=4326;GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 1 1))",
		"POINT M (1 2 3)",
		"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)))",
	}

	for _, ewkt := range ewkts {
		g, err := pggeom.DecodeWKT(ewkt)
		if err != nil {
			t.Fatalf("%s: %s", ewkt, err)
		}
		hexEWKB, err := pggeom.EncodeHex(g)
		if err != nil {
			t.Fatalf("%s: %s", ewkt, err)
		}

		// PostGIS has to accept our hex and emit an identical geometry
		var dbHex string
		if err := conn.QueryRow(ctx, "select $1::geometry::text", hexEWKB).Scan(&dbHex); err != nil {
			t.Fatalf("%s: %s", ewkt, err)
		}
		d, err := pggeom.DecodeHex(dbHex)
		if err != nil {
			t.Fatalf("%s: %s", ewkt, err)
		}
		if !pggeom.Equal(g, d) {
			t.Fatalf("%s: got %s from database", ewkt, d)
		}

		// and the EWKT rendering has to agree as well
		var dbEWKT string
		if err := conn.QueryRow(ctx, "select st_asewkt($1::geometry)", hexEWKB).Scan(&dbEWKT); err != nil {
			t.Fatalf("%s: %s", ewkt, err)
		}
		if _, err := pggeom.DecodeWKT(dbEWKT); err != nil {
			t.Fatalf("%s: cannot parse %q: %s", ewkt, dbEWKT, err)
		}
	}
}
