// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

// Package encoding implements byte level decoding and encoding of WKB records.
package encoding

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortBuffer is returned by the decoder if fewer bytes remain than a read requests.
var ErrShortBuffer = errors.New("unexpected end of data")

// Decoder decodes WKB primitive datatypes on basis of a byte slice.
// The byte order is selected per nested geometry record via SetByteOrder.
type Decoder struct {
	b   []byte
	pos int
	/* err: fatal read error
	- set on the first short read
	- subsequent reads are ignored (sticky error)
	*/
	err   error
	order binary.ByteOrder
}

// NewDecoder creates a new Decoder instance based on a byte slice.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{b: b, order: binary.LittleEndian}
}

// SetByteOrder sets the byte order used by subsequent multi byte reads.
func (d *Decoder) SetByteOrder(order binary.ByteOrder) { d.order = order }

// ByteOrder returns the byte order used by multi byte reads.
func (d *Decoder) ByteOrder() binary.ByteOrder { return d.order }

// Pos returns the current read position.
func (d *Decoder) Pos() int { return d.pos }

// Remaining returns the number of bytes not yet read.
func (d *Decoder) Remaining() int { return len(d.b) - d.pos }

// Error returns the decoder error.
func (d *Decoder) Error() error { return d.err }

// take returns the next n bytes and advances the position.
func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.b)-d.pos < n {
		d.err = ErrShortBuffer
		d.pos = len(d.b)
		return nil
	}
	p := d.b[d.pos : d.pos+n]
	d.pos += n
	return p
}

// Byte reads and returns a byte.
func (d *Decoder) Byte() byte {
	p := d.take(1)
	if p == nil {
		return 0
	}
	return p[0]
}

// Uint32 reads and returns an uint32.
func (d *Decoder) Uint32() uint32 {
	p := d.take(4)
	if p == nil {
		return 0
	}
	return d.order.Uint32(p)
}

// Int32 reads and returns an int32.
func (d *Decoder) Int32() int32 { return int32(d.Uint32()) }

// Float64 reads and returns a float64.
func (d *Decoder) Float64() float64 {
	p := d.take(8)
	if p == nil {
		return 0
	}
	return math.Float64frombits(d.order.Uint64(p))
}
