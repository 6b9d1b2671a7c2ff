package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rchuk/markerml/internal/source"
)

func TestResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mml", []byte("abc\ndef\n\nghi"))

	cases := []struct {
		off  uint32
		want source.LineCol
	}{
		{0, source.LineCol{Line: 1, Col: 1}},
		{2, source.LineCol{Line: 1, Col: 3}},
		{3, source.LineCol{Line: 1, Col: 4}}, // the newline ends line 1
		{4, source.LineCol{Line: 2, Col: 1}},
		{8, source.LineCol{Line: 3, Col: 1}}, // empty line
		{9, source.LineCol{Line: 4, Col: 1}},
		{11, source.LineCol{Line: 4, Col: 3}},
	}
	for _, tc := range cases {
		got, _ := fs.Resolve(source.Span{File: id, Start: tc.off, End: tc.off})
		if got != tc.want {
			t.Errorf("offset %d: got %d:%d, want %d:%d",
				tc.off, got.Line, got.Col, tc.want.Line, tc.want.Col)
		}
	}
}

func TestResolveSingleLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mml", []byte("box(hi)"))
	start, end := fs.Resolve(source.Span{File: id, Start: 4, End: 6})
	if start.Line != 1 || start.Col != 5 || end.Line != 1 || end.Col != 7 {
		t.Errorf("got %v-%v, want 1:5-1:7", start, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.mml", []byte("abc\ndef\n\nghi")))

	cases := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "abc"},
		{2, "def"},
		{3, ""},
		{4, "ghi"},
		{5, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("line %d: got %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.mml")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("box {\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "box {\n}\n" {
		t.Errorf("content = %q, want normalized", f.Content)
	}
	if f.Flags&source.FileHadBOM == 0 {
		t.Error("FileHadBOM not set")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Error("FileNormalizedCRLF not set")
	}
	if f.Flags&source.FileVirtual != 0 {
		t.Error("FileVirtual set for a disk file")
	}
}

func TestGetLatest(t *testing.T) {
	fs := source.NewFileSet()
	first := fs.AddVirtual("a.mml", []byte("box"))
	second := fs.AddVirtual("a.mml", []byte("box(hi)"))
	if first == second {
		t.Fatal("re-adding a path must mint a fresh ID")
	}
	id, ok := fs.GetLatest("a.mml")
	if !ok || id != second {
		t.Errorf("GetLatest = %d, %v; want %d, true", id, ok, second)
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 0, Start: 4, End: 8}
	b := source.Span{File: 0, Start: 6, End: 12}
	got := a.Cover(b)
	if got.Start != 4 || got.End != 12 {
		t.Errorf("cover = %v, want 4-12", got)
	}
	other := source.Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file cover = %v, want %v", got, a)
	}
}
