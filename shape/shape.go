// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

/*
Package shape converts pggeom geometries to and from the geometry types of
github.com/twpayne/go-geom and github.com/paulmach/orb.

go-geom covers all four dimensionalities; orb is strictly two dimensional, so
converting to orb drops Z and M.
*/
package shape

import "fmt"

func unsupported(v any) error {
	return fmt.Errorf("shape: unsupported geometry type %T", v)
}
