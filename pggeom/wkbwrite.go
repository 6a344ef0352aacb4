// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// cachedTypeWord returns the type word of retained source bytes.
func cachedTypeWord(b []byte) (encoding.TypeWord, bool) {
	if len(b) < 5 {
		return 0, false
	}
	switch b[0] {
	case encoding.XDR:
		return encoding.TypeWord(binary.BigEndian.Uint32(b[1:5])), true
	case encoding.NDR:
		return encoding.TypeWord(binary.LittleEndian.Uint32(b[1:5])), true
	default:
		return 0, false
	}
}

// writeWKBRecord emits a member record: endian byte, type word without SRID
// flag and the payload.
func writeWKBRecord(e *encoding.Encoder, g Geometry) {
	e.Byte(encoding.NDR)
	e.Uint32(uint32(encoding.NewTypeWord(uint32(g.Type()), g.DimZ(), g.DimM(), false)))
	g.encodeBody(e)
}

/*
EncodeWKB encodes a geometry to plain little endian WKB. The SRID flag is
omitted even if the geometry has an SRID. If the geometry still holds the
bytes it was constructed from and those carry no SRID, they are returned
unchanged.
*/
func EncodeWKB(g Geometry) ([]byte, error) {
	h := g.hdr()
	if h.cached != nil {
		if w, ok := cachedTypeWord(h.cached); ok && !w.HasSRID() {
			return cloneBytes(h.cached), nil
		}
	}
	if err := g.materialize(); err != nil {
		return nil, err
	}
	e := encoding.NewEncoder()
	writeWKBRecord(e, g)
	return e.Bytes(), nil
}

/*
EncodeEWKB encodes a geometry to little endian EWKB: only the outermost type
word carries the SRID flag, children never do. If the geometry still holds
the bytes it was constructed from, they are returned unchanged.
*/
func EncodeEWKB(g Geometry) ([]byte, error) {
	h := g.hdr()
	if h.cached != nil {
		return cloneBytes(h.cached), nil
	}
	if err := g.materialize(); err != nil {
		return nil, err
	}
	e := encoding.NewEncoder()
	e.Byte(encoding.NDR)
	srid, hasSRID := g.SRID()
	e.Uint32(uint32(encoding.NewTypeWord(uint32(g.Type()), g.DimZ(), g.DimM(), hasSRID)))
	if hasSRID {
		e.Int32(srid)
	}
	g.encodeBody(e)
	return e.Bytes(), nil
}

// EncodeHex encodes a geometry to lowercase hex EWKB, the exchange format of
// PostGIS.
func EncodeHex(g Geometry) (string, error) {
	b, err := EncodeEWKB(g)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
