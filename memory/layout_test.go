package memory

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLayout_Defaults(t *testing.T) {
	l, err := ParseLayout([]byte(""))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if l != DefaultLayout() {
		t.Errorf("layout = %+v, want %+v", l, DefaultLayout())
	}
}

func TestParseLayout_Overrides(t *testing.T) {
	doc := `
[layout]
pointer-size = 4
byte-order = "big"

[layout.string]
encoding = "utf-8"
length-offset = 4
data-offset = 8
`
	l, err := ParseLayout([]byte(doc))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if l.PointerSize != 4 {
		t.Errorf("PointerSize = %d, want 4", l.PointerSize)
	}
	if l.Order() != binary.BigEndian {
		t.Errorf("Order = %v, want big endian", l.Order())
	}
	if l.String.Encoding != EncodingUTF8 || l.String.LengthOffset != 4 || l.String.DataOffset != 8 {
		t.Errorf("String = %+v", l.String)
	}
	if l.String.MaxLength != DefaultMaxStringLength {
		t.Errorf("MaxLength = %d, want default %d", l.String.MaxLength, DefaultMaxStringLength)
	}
}

func TestParseLayout_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"pointer size", "[layout]\npointer-size = 2\n"},
		{"byte order", "[layout]\nbyte-order = \"middle\"\n"},
		{"encoding", "[layout.string]\nencoding = \"ebcdic\"\n"},
		{"max length", "[layout.string]\nmax-length = 0\n"},
		{"syntax", "[layout\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLayout([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("[layout]\npointer-size = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	if l.PointerSize != 4 {
		t.Errorf("PointerSize = %d, want 4", l.PointerSize)
	}

	if _, err := LoadLayout(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
