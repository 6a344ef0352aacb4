// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

/*
Package pggeom implements the OGC Simple Features geometry model as extended by
PostGIS and converts geometries between hex encoded extended well known binary
(EWKB), raw well known binary (WKB), well known text (WKT / EWKT) and the
GeoJSON object model.

Geometries constructed from WKB keep the source bytes and decode the type word,
SRID and dimension flags only. Child structure is materialized on the first
structural read; any mutation drops the retained source bytes, so the next
WKB or EWKB request re-encodes from the model.
*/
package pggeom
