// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package encoding

import (
	"encoding/binary"
	"math"
)

// Encoder encodes WKB primitive datatypes into a growing byte buffer.
// Emission is little endian exclusively.
type Encoder struct {
	b []byte
}

// NewEncoder creates a new Encoder instance.
func NewEncoder() *Encoder {
	return &Encoder{b: make([]byte, 0, 64)}
}

// Byte writes a byte.
func (e *Encoder) Byte(v byte) { e.b = append(e.b, v) }

// Uint32 writes an uint32.
func (e *Encoder) Uint32(v uint32) { e.b = binary.LittleEndian.AppendUint32(e.b, v) }

// Int32 writes an int32.
func (e *Encoder) Int32(v int32) { e.Uint32(uint32(v)) }

// Float64 writes a float64.
func (e *Encoder) Float64(v float64) {
	e.b = binary.LittleEndian.AppendUint64(e.b, math.Float64bits(v))
}

// Bytes returns the encoded buffer.
func (e *Encoder) Bytes() []byte { return e.b }
