// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/SAP/go-pggeom/pggeom/internal/encoding"
)

// DecodeHex constructs a geometry from hex encoded WKB / EWKB. Upper and
// lower case digits are accepted.
func DecodeHex(s string) (Geometry, error) {
	if len(s)%2 != 0 {
		return nil, &WKBError{Offset: -1, Reason: "odd length hex input"}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &WKBError{Offset: -1, Reason: "invalid hex input: " + err.Error()}
	}
	return DecodeWKB(b)
}

/*
DecodeWKB constructs a geometry from WKB / EWKB bytes. Only the endian byte,
the type word and an optional SRID are decoded; the input is retained and the
child structure is materialized on the first structural read.
*/
func DecodeWKB(b []byte) (Geometry, error) {
	d := encoding.NewDecoder(b)
	t, word, srid, hasSRID, err := readRecordHeader(d, true)
	if err != nil {
		return nil, err
	}
	src := cloneBytes(b)
	h := header{srid: srid, hasSRID: hasSRID, dimZ: word.HasZ(), dimM: word.HasM(), cached: src, pending: src}
	switch t {
	case TypePoint:
		return &Point{header: h}, nil
	case TypeLineString:
		return &LineString{header: h}, nil
	case TypePolygon:
		return &Polygon{header: h}, nil
	case TypeMultiPoint:
		return &MultiPoint{header: h}, nil
	case TypeMultiLineString:
		return &MultiLineString{header: h}, nil
	case TypeMultiPolygon:
		return &MultiPolygon{header: h}, nil
	default:
		return &GeometryCollection{header: h}, nil
	}
}

func shortBufferError(d *encoding.Decoder) *WKBError {
	return &WKBError{Offset: d.Pos(), Reason: "unexpected end of data"}
}

/*
readRecordHeader decodes the leading endian byte, the type word and, on top
level records bearing the SRID flag, the SRID. Nested records must not bear
the SRID flag.
*/
func readRecordHeader(d *encoding.Decoder, top bool) (GeometryType, encoding.TypeWord, int32, bool, error) {
	pos := d.Pos()
	endian := d.Byte()
	if d.Error() != nil {
		return 0, 0, 0, false, shortBufferError(d)
	}
	switch endian {
	case encoding.XDR:
		d.SetByteOrder(binary.BigEndian)
	case encoding.NDR:
		d.SetByteOrder(binary.LittleEndian)
	default:
		return 0, 0, 0, false, &WKBError{Offset: pos, Reason: fmt.Sprintf("invalid endian byte 0x%02x", endian)}
	}
	pos = d.Pos()
	word := encoding.TypeWord(d.Uint32())
	if d.Error() != nil {
		return 0, 0, 0, false, shortBufferError(d)
	}
	base := word.Base()
	if base < 1 || base > 7 {
		return 0, 0, 0, false, &WKBError{Offset: pos, Reason: fmt.Sprintf("unsupported geometry type %d", base)}
	}
	if stray := uint32(word) &^ (0xff | encoding.ZFlag | encoding.MFlag | encoding.SRIDFlag); stray != 0 {
		return 0, 0, 0, false, &WKBError{Offset: pos, Reason: fmt.Sprintf("stray flag bits 0x%08x in type word", stray)}
	}
	var srid int32
	hasSRID := word.HasSRID()
	if hasSRID {
		if !top {
			return 0, 0, 0, false, &WKBError{Offset: pos, Reason: "srid flag on nested geometry"}
		}
		srid = d.Int32()
		if d.Error() != nil {
			return 0, 0, 0, false, shortBufferError(d)
		}
	}
	return GeometryType(base), word, srid, hasSRID, nil
}

// decodeFull decodes a complete WKB / EWKB record including all children.
func decodeFull(b []byte) (Geometry, error) {
	return decodeRecord(encoding.NewDecoder(b), true, nil)
}

type childDims struct{ z, m bool }

func decodeCount(d *encoding.Decoder) (int, error) {
	pos := d.Pos()
	n := d.Uint32()
	if d.Error() != nil {
		return 0, shortBufferError(d)
	}
	if int64(n) > int64(d.Remaining()) {
		return 0, &WKBError{Offset: pos, Reason: fmt.Sprintf("member count %d exceeds buffer size", n)}
	}
	return int(n), nil
}

func decodePoints(d *encoding.Decoder, z, m bool) ([]*Point, error) {
	n, err := decodeCount(d)
	if err != nil {
		return nil, err
	}
	points := make([]*Point, n)
	for i := 0; i < n; i++ {
		p := &Point{header: header{dimZ: z, dimM: m}}
		p.x, p.y = d.Float64(), d.Float64()
		if z {
			p.z = d.Float64()
		}
		if m {
			p.m = d.Float64()
		}
		if d.Error() != nil {
			return nil, shortBufferError(d)
		}
		points[i] = p
	}
	return points, nil
}

/*
decodeRecord decodes one geometry record. Every record selects its own byte
order; nested records must not bear the SRID flag and their dimension flags
have to equal the container's.
*/
func decodeRecord(d *encoding.Decoder, top bool, container *childDims) (Geometry, error) {
	pos := d.Pos()
	t, word, srid, hasSRID, err := readRecordHeader(d, top)
	if err != nil {
		return nil, err
	}
	z, m := word.HasZ(), word.HasM()
	if container != nil && (z != container.z || m != container.m) {
		return nil, &WKBError{Offset: pos, Reason: "dimension flags of child do not match container"}
	}
	h := header{srid: srid, hasSRID: hasSRID, dimZ: z, dimM: m}

	switch t {
	case TypePoint:
		p := &Point{header: h}
		p.x, p.y = d.Float64(), d.Float64()
		if z {
			p.z = d.Float64()
		}
		if m {
			p.m = d.Float64()
		}
		if d.Error() != nil {
			return nil, shortBufferError(d)
		}
		return p, nil

	case TypeLineString:
		points, err := decodePoints(d, z, m)
		if err != nil {
			return nil, err
		}
		return &LineString{header: h, points: points}, nil

	case TypePolygon:
		n, err := decodeCount(d)
		if err != nil {
			return nil, err
		}
		rings := make([]*LineString, n)
		for i := 0; i < n; i++ {
			points, err := decodePoints(d, z, m)
			if err != nil {
				return nil, err
			}
			rings[i] = &LineString{header: header{dimZ: z, dimM: m}, points: points}
		}
		return &Polygon{header: h, rings: rings}, nil

	case TypeMultiPoint:
		children, err := decodeChildren(d, z, m)
		if err != nil {
			return nil, err
		}
		points := make([]*Point, len(children))
		for i, c := range children {
			p, ok := c.(*Point)
			if !ok {
				return nil, &WKBError{Offset: pos, Reason: fmt.Sprintf("unexpected %s member in multi point", c.Type())}
			}
			points[i] = p
		}
		return &MultiPoint{header: h, points: points}, nil

	case TypeMultiLineString:
		children, err := decodeChildren(d, z, m)
		if err != nil {
			return nil, err
		}
		lineStrings := make([]*LineString, len(children))
		for i, c := range children {
			l, ok := c.(*LineString)
			if !ok {
				return nil, &WKBError{Offset: pos, Reason: fmt.Sprintf("unexpected %s member in multi line string", c.Type())}
			}
			lineStrings[i] = l
		}
		return &MultiLineString{header: h, lineStrings: lineStrings}, nil

	case TypeMultiPolygon:
		children, err := decodeChildren(d, z, m)
		if err != nil {
			return nil, err
		}
		polygons := make([]*Polygon, len(children))
		for i, c := range children {
			p, ok := c.(*Polygon)
			if !ok {
				return nil, &WKBError{Offset: pos, Reason: fmt.Sprintf("unexpected %s member in multi polygon", c.Type())}
			}
			polygons[i] = p
		}
		return &MultiPolygon{header: h, polygons: polygons}, nil

	default: // TypeGeometryCollection
		children, err := decodeChildren(d, z, m)
		if err != nil {
			return nil, err
		}
		return &GeometryCollection{header: h, geometries: children}, nil
	}
}

// decodeChildren decodes the member records of a multi geometry, restoring
// the container's byte order after every member.
func decodeChildren(d *encoding.Decoder, z, m bool) ([]Geometry, error) {
	n, err := decodeCount(d)
	if err != nil {
		return nil, err
	}
	order := d.ByteOrder()
	children := make([]Geometry, n)
	for i := 0; i < n; i++ {
		c, err := decodeRecord(d, false, &childDims{z: z, m: m})
		if err != nil {
			return nil, err
		}
		d.SetByteOrder(order)
		children[i] = c
	}
	return children, nil
}
