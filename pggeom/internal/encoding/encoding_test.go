// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package encoding

import (
	"encoding/binary"
	"testing"
)

func TestDecoder(t *testing.T) {
	b := []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4a, 0xc0}

	d := NewDecoder(b)
	if v := d.Byte(); v != 0x01 {
		t.Fatalf("got %x expected 01", v)
	}
	if v := d.Uint32(); v != 1 {
		t.Fatalf("got %d expected 1", v)
	}
	if v := d.Float64(); v != -52.0 {
		t.Fatalf("got %f expected -52", v)
	}
	if d.Error() != nil {
		t.Fatal(d.Error())
	}
	if d.Remaining() != 0 {
		t.Fatalf("got %d remaining bytes", d.Remaining())
	}

	// reads beyond the buffer set a sticky error
	if v := d.Uint32(); v != 0 {
		t.Fatalf("got %d expected 0", v)
	}
	if d.Error() != ErrShortBuffer {
		t.Fatalf("got %v expected ErrShortBuffer", d.Error())
	}
	if v := d.Byte(); v != 0 {
		t.Fatalf("got %x expected 0", v)
	}
}

func TestDecoderByteOrder(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x01}
	d := NewDecoder(b)
	d.SetByteOrder(binary.BigEndian)
	if v := d.Uint32(); v != 1 {
		t.Fatalf("got %d expected 1", v)
	}
}

func TestEncoder(t *testing.T) {
	e := NewEncoder()
	e.Byte(NDR)
	e.Uint32(1)
	e.Float64(-52.0)

	d := NewDecoder(e.Bytes())
	if v := d.Byte(); v != NDR {
		t.Fatalf("got %x expected %x", v, NDR)
	}
	if v := d.Uint32(); v != 1 {
		t.Fatalf("got %d expected 1", v)
	}
	if v := d.Float64(); v != -52.0 {
		t.Fatalf("got %f expected -52", v)
	}
}

func TestTypeWord(t *testing.T) {
	testData := []struct {
		base          uint32
		z, m, srid    bool
		word          uint32
	}{
		{1, false, false, false, 0x00000001},
		{1, true, false, true, 0xa0000001},
		{4, true, true, false, 0xc0000004},
		{7, false, false, true, 0x20000007},
	}
	for i, v := range testData {
		w := NewTypeWord(v.base, v.z, v.m, v.srid)
		if uint32(w) != v.word {
			t.Fatalf("test %d got %08x expected %08x", i, uint32(w), v.word)
		}
		if w.Base() != v.base || w.HasZ() != v.z || w.HasM() != v.m || w.HasSRID() != v.srid {
			t.Fatalf("test %d flag extraction mismatch for %08x", i, uint32(w))
		}
	}
}
