// SPDX-FileCopyrightText: 2014-2022 SAP SE
//
// SPDX-License-Identifier: Apache-2.0

package scanner

import "testing"

func TestScanner(t *testing.T) {
	testData := []struct {
		s      string
		tokens []rune
		values []string
	}{
		{
			"SRID=4326;POINT Z (1 -2.5 3e2)",
			[]rune{Identifier, Operator, Number, Delimiter, Identifier, Identifier, Delimiter, Number, Number, Number, Delimiter, EOF},
			[]string{"SRID", "=", "4326", ";", "POINT", "Z", "(", "1", "-2.5", "3e2", ")", ""},
		},
		{
			"multipoint((0 0),(1 1))",
			[]rune{Identifier, Delimiter, Delimiter, Number, Number, Delimiter, Delimiter, Delimiter, Number, Number, Delimiter, Delimiter, EOF},
			[]string{"multipoint", "(", "(", "0", "0", ")", ",", "(", "1", "1", ")", ")", ""},
		},
		{
			" \t POINT\n(1.25e-3 2) ",
			[]rune{Identifier, Delimiter, Number, Number, Delimiter, EOF},
			[]string{"POINT", "(", "1.25e-3", "2", ")", ""},
		},
		{
			"POINT @",
			[]rune{Identifier, Undefined, EOF},
			[]string{"POINT", "@", ""},
		},
	}

	for i, v := range testData {
		sc := NewScanner(v.s)
		for j, want := range v.tokens {
			tok := sc.Next()
			if tok != want {
				t.Fatalf("test %d token %d: got %s expected %s", i, j, TokenString(tok), TokenString(want))
			}
			if tok != EOF && sc.Value() != v.values[j] {
				t.Fatalf("test %d token %d: got value %q expected %q", i, j, sc.Value(), v.values[j])
			}
		}
		sc.FreeScanner()
	}
}

func TestScannerPos(t *testing.T) {
	sc := NewScanner("POINT (1 2)")
	defer sc.FreeScanner()

	sc.Next() // POINT
	if pos := sc.Pos(); pos != 0 {
		t.Fatalf("got pos %d expected 0", pos)
	}
	sc.Next() // (
	sc.Next() // 1
	if pos := sc.Pos(); pos != 7 {
		t.Fatalf("got pos %d expected 7", pos)
	}
}
