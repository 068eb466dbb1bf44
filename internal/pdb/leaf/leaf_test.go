package leaf

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIntegerAcceptsPaddedDigits(t *testing.T) {
	n, err := Integer("  12 ")
	if err != nil {
		t.Fatalf("integer: %v", err)
	}
	if n != 12 {
		t.Fatalf("expected 12, got %d", n)
	}
}

func TestIntegerRejectsNonDigits(t *testing.T) {
	for _, in := range []string{"", "   ", "1A", "-3", "1 2"} {
		_, err := Integer(in)
		if !errors.Is(err, ErrFieldFormat) {
			t.Fatalf("Integer(%q): expected ErrFieldFormat, got %v", in, err)
		}
	}
	_, err := Integer("42X7")
	var le Error
	if !errors.As(err, &le) {
		t.Fatalf("expected leaf.Error, got %T", err)
	}
	if le.Remainder != "X7" || le.Grammar != GrammarInteger {
		t.Fatalf("unexpected error detail: %+v", le)
	}
}

func TestIntegerWithSpaces(t *testing.T) {
	n, err := IntegerWithSpaces(" 12 345 ")
	if err != nil {
		t.Fatalf("integer with spaces: %v", err)
	}
	if n != 12345 {
		t.Fatalf("expected 12345, got %d", n)
	}
	if _, err := IntegerWithSpaces("CRL 1573"); !errors.Is(err, ErrFieldFormat) {
		t.Fatalf("expected ErrFieldFormat, got %v", err)
	}
}

func TestIntegerList(t *testing.T) {
	got, err := IntegerList("9606, 10090")
	if err != nil {
		t.Fatalf("integer list: %v", err)
	}
	if diff := cmp.Diff([]uint{9606, 10090}, got); diff != "" {
		t.Fatalf("integer list mismatch (-want +got):\n%s", diff)
	}
	if _, err := IntegerList("9606,,1"); !errors.Is(err, ErrFieldFormat) {
		t.Fatalf("expected ErrFieldFormat for empty element, got %v", err)
	}
}

func TestWordsCharacterClass(t *testing.T) {
	got, err := Words("  HEMOGLOBIN ALPHA CHAIN ")
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if got != "HEMOGLOBIN ALPHA CHAIN" {
		t.Fatalf("unexpected words: %q", got)
	}

	_, err = Words("SCHMIDT-RUPPIN B")
	var le Error
	if !errors.As(err, &le) {
		t.Fatalf("expected leaf.Error, got %v", err)
	}
	if le.Remainder != "-RUPPIN B" {
		t.Fatalf("unexpected remainder: %q", le.Remainder)
	}
}

func TestWordListTrimsEachElement(t *testing.T) {
	got, err := WordList("A,  C")
	if err != nil {
		t.Fatalf("word list: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "C"}, got); diff != "" {
		t.Fatalf("word list mismatch (-want +got):\n%s", diff)
	}
}

func TestWordSequence(t *testing.T) {
	got, err := WordSequence("  JRNL   VERSN ")
	if err != nil {
		t.Fatalf("word sequence: %v", err)
	}
	if diff := cmp.Diff([]string{"JRNL", "VERSN"}, got); diff != "" {
		t.Fatalf("word sequence mismatch (-want +got):\n%s", diff)
	}

	empty, err := WordSequence("   ")
	if err != nil {
		t.Fatalf("empty word sequence: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestECList(t *testing.T) {
	got, err := ECList("  3.2.1.14, 3.2.1.17")
	if err != nil {
		t.Fatalf("ec list: %v", err)
	}
	if diff := cmp.Diff([]string{"3.2.1.14", "3.2.1.17"}, got); diff != "" {
		t.Fatalf("ec list mismatch (-want +got):\n%s", diff)
	}
	partial, err := ECList("3.4.-.-")
	if err != nil {
		t.Fatalf("partial ec: %v", err)
	}
	if diff := cmp.Diff([]string{"3.4.-.-"}, partial); diff != "" {
		t.Fatalf("partial ec mismatch (-want +got):\n%s", diff)
	}
	for _, in := range []string{"3..1", "3.2.1.", "3.2.A.1", "-.1", ""} {
		if _, err := ECList(in); !errors.Is(err, ErrFieldFormat) {
			t.Fatalf("ECList(%q): expected ErrFieldFormat, got %v", in, err)
		}
	}
}

func TestYesNoIsCaseSensitive(t *testing.T) {
	yes, err := YesNo(" YES")
	if err != nil || !yes {
		t.Fatalf("expected YES=true, got %v %v", yes, err)
	}
	no, err := YesNo("NO ")
	if err != nil || no {
		t.Fatalf("expected NO=false, got %v %v", no, err)
	}
	for _, in := range []string{"Yes", "yes", "1", "Y", "TRUE", ""} {
		if _, err := YesNo(in); !errors.Is(err, ErrFieldFormat) {
			t.Fatalf("YesNo(%q): expected ErrFieldFormat, got %v", in, err)
		}
	}
}

func TestDate(t *testing.T) {
	got, err := Date("12-SEP-09")
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	want := time.Date(2009, time.September, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	old, err := Date("05-MAR-99")
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if old.Year() != 1999 {
		t.Fatalf("expected 1999, got %d", old.Year())
	}

	for _, in := range []string{"5-MAR-99", "05-XYZ-99", "05/03/99", "2009-09-12"} {
		if _, err := Date(in); !errors.Is(err, ErrFieldFormat) {
			t.Fatalf("Date(%q): expected ErrFieldFormat, got %v", in, err)
		}
	}
}

func TestWord(t *testing.T) {
	if w, err := Word(" 1ABC "); err != nil || w != "1ABC" {
		t.Fatalf("expected 1ABC, got %q %v", w, err)
	}
	if _, err := Word(""); !errors.Is(err, ErrFieldFormat) {
		t.Fatalf("expected ErrFieldFormat, got %v", err)
	}
}
