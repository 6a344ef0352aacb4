// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import "math"

// Bounds is the X / Y envelope of a geometry.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b *Bounds) extend(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

// boundsOf materializes a geometry and computes its envelope.
func boundsOf(g Geometry) (Bounds, error) {
	if err := g.materialize(); err != nil {
		return Bounds{}, err
	}
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	g.extend(&b)
	if b.MinX > b.MaxX {
		return Bounds{}, &CoordinateError{Reason: "empty geometry has no bounds"}
	}
	return b, nil
}
