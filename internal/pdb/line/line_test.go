package line

import (
	"errors"
	"testing"
)

var compnd = Layout{Tag: "COMPND", Continuation: Field{Start: 8, End: 10}, PayloadStart: 11}

var revdat = Layout{
	Tag:          "REVDAT",
	EntryKey:     Field{Start: 8, End: 10},
	Continuation: Field{Start: 11, End: 12},
	PayloadStart: 13,
}

func TestClassifyFirstLineHasZeroContinuation(t *testing.T) {
	in := []byte("COMPND    MOL_ID:  1;\nCOMPND   2 MOLECULE:  X;\n")
	l, n, err := Classify(in, compnd)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if n != len("COMPND    MOL_ID:  1;\n") {
		t.Fatalf("unexpected consumed length: %d", n)
	}
	if l.Continuation != 0 || string(l.Payload) != "MOL_ID:  1;" {
		t.Fatalf("unexpected line: cont=%d payload=%q", l.Continuation, l.Payload)
	}
}

func TestClassifyContinuationLineKeepsLeadingBlank(t *testing.T) {
	l, _, err := Classify([]byte("COMPND   2 MOLECULE:  HEMOGLOBIN ALPHA CHAIN;   \r\n"), compnd)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if l.Continuation != 2 {
		t.Fatalf("expected continuation 2, got %d", l.Continuation)
	}
	if string(l.Payload) != " MOLECULE:  HEMOGLOBIN ALPHA CHAIN;   " {
		t.Fatalf("unexpected payload: %q", l.Payload)
	}
}

func TestClassifyGroupedLine(t *testing.T) {
	l, _, err := Classify([]byte("REVDAT   2 1 15-JAN-03 1ABC    1       COMPND\n"), revdat)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if l.EntryKey != 2 || l.Continuation != 1 {
		t.Fatalf("unexpected counters: key=%d cont=%d", l.EntryKey, l.Continuation)
	}
	if string(l.Payload) != " 15-JAN-03 1ABC    1       COMPND" {
		t.Fatalf("unexpected payload: %q", l.Payload)
	}
}

func TestClassifyShortLineHasEmptyPayload(t *testing.T) {
	l, n, err := Classify([]byte("COMPND\n"), compnd)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if n != 7 || len(l.Payload) != 0 {
		t.Fatalf("unexpected result: n=%d payload=%q", n, l.Payload)
	}
}

func TestClassifyMalformedLines(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		layout Layout
		column int
	}{
		{"tag mismatch", "SOURCE    MOL_ID: 1;\n", compnd, 1},
		{"lowercase tag", "compnd    MOL_ID: 1;\n", compnd, 1},
		{"non blank gap", "COMPNDX   MOL_ID: 1;\n", compnd, 1},
		{"bad continuation", "COMPND  1A MOLECULE: X;\n", compnd, 10},
		{"bad entry key", "REVDAT  X  05-MAR-99 1ABC    0\n", revdat, 9},
		{"missing terminator", "COMPND    MOL_ID: 1;", compnd, 0},
	}
	for _, tc := range cases {
		_, _, err := Classify([]byte(tc.in), tc.layout)
		if !errors.Is(err, ErrMalformedLine) {
			t.Fatalf("%s: expected ErrMalformedLine, got %v", tc.name, err)
		}
		var me MalformedLineError
		if !errors.As(err, &me) {
			t.Fatalf("%s: expected MalformedLineError, got %T", tc.name, err)
		}
		if me.Column != tc.column {
			t.Fatalf("%s: expected column %d, got %d (%v)", tc.name, tc.column, me.Column, err)
		}
	}
}

func TestMatches(t *testing.T) {
	if !Matches([]byte("COMPND   2 X\n"), compnd) {
		t.Fatalf("expected match")
	}
	if Matches([]byte("COMPNDX\n"), compnd) {
		t.Fatalf("expected longer tag to not match")
	}
	if Matches([]byte("SOURCE    MOL_ID: 1;\n"), compnd) {
		t.Fatalf("expected different tag to not match")
	}
	if !Matches([]byte("COMPND"), compnd) {
		t.Fatalf("expected bare tag at end of input to match")
	}
}
