package memory

import (
	"bytes"
	goerrors "errors"
	"path/filepath"
	"testing"
)

func TestImage_ReadAt(t *testing.T) {
	img := NewImage()
	if err := img.Map(0x1000, []byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatalf("Map: %v", err)
	}
	if err := img.Map(0x3000, []byte{9, 10}); err != nil {
		t.Fatalf("Map: %v", err)
	}

	tests := []struct {
		want    []byte
		name    string
		addr    uint64
		n       int
		wantErr bool
	}{
		{[]byte{1, 2}, "segment start", 0x1000, 2, false},
		{[]byte{7, 8}, "segment end", 0x1006, 2, false},
		{[]byte{9, 10}, "second segment", 0x3000, 2, false},
		{[]byte{}, "empty read", 0x1004, 0, false},
		{nil, "before first segment", 0x0fff, 1, true},
		{nil, "crosses segment end", 0x1007, 2, true},
		{nil, "gap", 0x2000, 1, true},
		{nil, "null", 0, 8, true},
		{nil, "negative", 0x1000, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := img.ReadAt(tt.addr, tt.n)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ReadAt(%#x, %d) = %v, want error", tt.addr, tt.n, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAt(%#x, %d): %v", tt.addr, tt.n, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ReadAt(%#x, %d) = %v, want %v", tt.addr, tt.n, got, tt.want)
			}
		})
	}
}

func TestImage_UnmappedSentinel(t *testing.T) {
	img := NewImage()
	_, err := img.ReadAt(0x10, 1)
	if !goerrors.Is(err, ErrAddressNotMapped) {
		t.Errorf("err = %v, want ErrAddressNotMapped", err)
	}
}

func TestImage_MapOverlap(t *testing.T) {
	img := NewImage()
	if err := img.Map(0x1000, make([]byte, 0x100)); err != nil {
		t.Fatalf("Map: %v", err)
	}

	tests := []struct {
		name    string
		base    uint64
		size    int
		wantErr bool
	}{
		{"overlaps tail", 0x10f0, 0x20, true},
		{"overlaps head", 0x0ff0, 0x20, true},
		{"contained", 0x1010, 0x10, true},
		{"adjacent after", 0x1100, 0x10, false},
		{"adjacent before", 0x0f00, 0x100, false},
		{"empty ignored", 0x1050, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := img.Map(tt.base, make([]byte, tt.size))
			if (err != nil) != tt.wantErr {
				t.Errorf("Map(%#x, %d) error = %v, wantErr %v", tt.base, tt.size, err, tt.wantErr)
			}
		})
	}

	segs := img.Segments()
	for i := 1; i < len(segs); i++ {
		if segs[i-1].Base >= segs[i].Base {
			t.Errorf("segments not ordered: %#x before %#x", segs[i-1].Base, segs[i].Base)
		}
	}
}

func TestImage_SaveLoad(t *testing.T) {
	img := NewImage()
	if err := img.Map(0x2000, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := img.Map(0x1000, []byte{0xde, 0xad}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "heap.cbor")
	if err := img.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadImageFile(path)
	if err != nil {
		t.Fatalf("LoadImageFile: %v", err)
	}

	got, err := loaded.ReadAt(0x2000, 5)
	if err != nil || string(got) != "hello" {
		t.Errorf("ReadAt after load = %q, %v; want hello", got, err)
	}
	got, err = loaded.ReadAt(0x1000, 2)
	if err != nil || !bytes.Equal(got, []byte{0xde, 0xad}) {
		t.Errorf("ReadAt after load = %x, %v; want dead", got, err)
	}
}

func TestImage_SaveIsDeterministic(t *testing.T) {
	build := func() []byte {
		img := NewImage()
		_ = img.Map(0x10, []byte{1})
		_ = img.Map(0x20, []byte{2})
		var buf bytes.Buffer
		if err := img.Save(&buf); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	if !bytes.Equal(build(), build()) {
		t.Error("canonical encoding should be byte-identical across runs")
	}
}

func TestLoadImage_Invalid(t *testing.T) {
	if _, err := LoadImage(bytes.NewReader([]byte{0xff, 0x00})); err == nil {
		t.Error("expected error for garbage input")
	}

	data, err := cborEncMode.Marshal(imageFile{Version: 99})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(bytes.NewReader(data)); err == nil {
		t.Error("expected error for unsupported version")
	}
}
