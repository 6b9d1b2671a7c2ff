package diag_test

import (
	"testing"

	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagCap(t *testing.T) {
	bag := diag.NewBag(2)
	if !bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "a")) {
		t.Error("first add rejected")
	}
	if !bag.Add(diag.NewError(diag.SynUnexpectedToken, span(1, 2), "b")) {
		t.Error("second add rejected")
	}
	if bag.Add(diag.NewError(diag.SynUnexpectedToken, span(2, 3), "c")) {
		t.Error("add beyond cap accepted")
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.New(diag.SevWarning, diag.SynInfo, span(0, 1), "warn"))
	if bag.HasErrors() {
		t.Error("HasErrors = true with only a warning")
	}
	if !bag.HasWarnings() {
		t.Error("HasWarnings = false")
	}
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "err"))
	if !bag.HasErrors() {
		t.Error("HasErrors = false after adding an error")
	}
}

func TestBagSort(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynExpectValue, span(9, 10), "late"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, span(2, 3), "early"))
	bag.Add(diag.New(diag.SevWarning, diag.SynInfo, span(2, 3), "same place, lower severity"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "early" {
		t.Errorf("first = %q, want the earliest error", items[0].Message)
	}
	if items[1].Severity != diag.SevWarning {
		t.Errorf("second = %+v, want the co-located warning after the error", items[1])
	}
	if items[2].Message != "late" {
		t.Errorf("third = %q, want the latest", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(8)
	d := diag.NewError(diag.SynUnclosedLiteral, span(4, 8), "literal is not terminated")
	bag.Add(d)
	bag.Add(d)
	bag.Add(diag.NewError(diag.SynUnclosedLiteral, span(10, 12), "another"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("len = %d after dedup, want 2", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.NewError(diag.SynUnexpectedToken, span(0, 1), "a"))
	b := diag.NewBag(1)
	b.Add(diag.NewError(diag.SynExpectValue, span(1, 2), "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("len = %d after merge, want 2", a.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code diag.Code
		want string
	}{
		{diag.LexInvalidToken, "LEX1001"},
		{diag.SynUnexpectedToken, "SYN2001"},
		{diag.SemaDuplicatedProperty, "SEM3001"},
		{diag.GenUnknownComponent, "GEN4001"},
		{diag.UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("ID(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := diag.NewError(diag.SemaDuplicatedProperty, span(0, 1), "dup")
	first := base.WithNote(span(1, 2), "first")
	second := first.WithNote(span(2, 3), "second")
	if len(first.Notes) != 1 {
		t.Errorf("first has %d notes, want 1", len(first.Notes))
	}
	if len(second.Notes) != 2 {
		t.Errorf("second has %d notes, want 2", len(second.Notes))
	}
}
