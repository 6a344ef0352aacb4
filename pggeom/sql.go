// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package pggeom

import (
	"database/sql/driver"
	"fmt"
)

/*
Column wraps a geometry for database/sql round trips. Scanning accepts the
hex EWKB exchanged by PostGIS as well as raw WKB and WKT; Value emits hex
EWKB.

	var c pggeom.Column
	if err := db.QueryRow("select geom from places where id = $1", id).Scan(&c); err != nil {
		...
	}
	g := c.Geometry
*/
type Column struct {
	Geometry Geometry
}

// Scan implements the sql.Scanner interface.
func (c *Column) Scan(val any) error {
	if val == nil {
		c.Geometry = nil
		return nil
	}
	switch v := val.(type) {
	case []byte:
		if isHexString(string(v)) {
			g, err := DecodeHex(string(v))
			if err != nil {
				return err
			}
			c.Geometry = g
			return nil
		}
		g, err := DecodeWKB(v)
		if err != nil {
			return err
		}
		c.Geometry = g
		return nil
	case string:
		g, err := New(v)
		if err != nil {
			return err
		}
		c.Geometry = g
		return nil
	default:
		return fmt.Errorf("pggeom: cannot scan %T into Column", val)
	}
}

// Value implements the driver.Valuer interface.
func (c Column) Value() (driver.Value, error) {
	if c.Geometry == nil {
		return nil, nil
	}
	return EncodeHex(c.Geometry)
}
