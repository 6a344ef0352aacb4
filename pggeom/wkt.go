// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// DefaultWKTPrecision is the initial maximum number of fractional digits of
// WKT output.
const DefaultWKTPrecision = 6

var wktPrecision atomic.Int32

func init() { wktPrecision.Store(DefaultWKTPrecision) }

// WKTPrecision returns the process wide maximum number of fractional digits
// of WKT output.
func WKTPrecision() int { return int(wktPrecision.Load()) }

// SetWKTPrecision sets the process wide maximum number of fractional digits
// of WKT output. It affects WKT / EWKT emission only, neither WKB nor
// GeoJSON.
func SetWKTPrecision(prec int) {
	if prec < 0 {
		prec = 0
	}
	wktPrecision.Store(int32(prec))
}

/*
formatFloat renders a float64 as the shortest decimal string that parses back
to the same value, capped at prec fractional digits. Exponent notation is
never used, integer values carry no decimal point and negative zero
normalizes to "0". Trimming of trailing zeros stops at the decimal point, so
values like 120 and 10 keep all their digits.
*/
func formatFloat(f float64, prec int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &WKTError{Pos: -1, Reason: "cannot emit non finite number"}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if point := strings.IndexByte(s, '.'); point >= 0 && len(s)-point-1 > prec {
		s = strconv.FormatFloat(f, 'f', prec, 64)
		if strings.IndexByte(s, '.') >= 0 {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
	}
	if s == "-0" {
		s = "0"
	}
	return s, nil
}

// writeWKTCoord writes the space separated coordinates of a point.
func writeWKTCoord(w *strings.Builder, p *Point, prec int) error {
	coords := []float64{p.x, p.y}
	if p.dimZ {
		coords = append(coords, p.z)
	}
	if p.dimM {
		coords = append(coords, p.m)
	}
	for i, f := range coords {
		if i > 0 {
			w.WriteByte(' ')
		}
		s, err := formatFloat(f, prec)
		if err != nil {
			return err
		}
		w.WriteString(s)
	}
	return nil
}

// writeWKTCoordList writes a parenthesized, comma separated coordinate list.
func writeWKTCoordList(w *strings.Builder, points []*Point, prec int) error {
	if len(points) == 0 {
		w.WriteString("EMPTY")
		return nil
	}
	w.WriteByte('(')
	for i, p := range points {
		if i > 0 {
			w.WriteString(", ")
		}
		if err := writeWKTCoord(w, p, prec); err != nil {
			return err
		}
	}
	w.WriteByte(')')
	return nil
}

// writeWKTGeometry writes the uppercase geometry keyword, the dimension
// modifier if any and the body.
func writeWKTGeometry(w *strings.Builder, g Geometry, prec int) error {
	w.WriteString(g.Type().wktName())
	switch {
	case g.DimZ() && g.DimM():
		w.WriteString(" ZM")
	case g.DimZ():
		w.WriteString(" Z")
	case g.DimM():
		w.WriteString(" M")
	}
	w.WriteByte(' ')
	return g.writeWKTBody(w, prec)
}

// EncodeWKT encodes a geometry to the well known text format.
func EncodeWKT(g Geometry) (string, error) {
	if err := g.materialize(); err != nil {
		return "", err
	}
	w := new(strings.Builder)
	if err := writeWKTGeometry(w, g, WKTPrecision()); err != nil {
		return "", err
	}
	return w.String(), nil
}

// EncodeEWKT encodes a geometry to the extended well known text format: WKT
// with an SRID=n; prefix if the geometry has an SRID.
func EncodeEWKT(g Geometry) (string, error) {
	if err := g.materialize(); err != nil {
		return "", err
	}
	w := new(strings.Builder)
	if srid, ok := g.SRID(); ok {
		w.WriteString("SRID=")
		w.WriteString(strconv.Itoa(int(srid)))
		w.WriteByte(';')
	}
	if err := writeWKTGeometry(w, g, WKTPrecision()); err != nil {
		return "", err
	}
	return w.String(), nil
}

// geomString implements Stringer for all variants.
func geomString(g Geometry) string {
	s, err := EncodeEWKT(g)
	if err != nil {
		return "<invalid geometry: " + err.Error() + ">"
	}
	return s
}
