package memory

import (
	"context"
	"encoding/binary"
	goerrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/heapinspect"
)

// memoryModule is a minimal core module exporting one page of memory as "memory".
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic, version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 memory, min 1 page
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, // export "memory"
}

func TestLinear_Reader(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	mem := mod.Memory()
	if mem == nil {
		t.Fatal("module has no memory")
	}

	// Object at linear offset 0x100 whose field at +8 points to a string at 0x200.
	const base = 0x10000
	ptr := make([]byte, 8)
	binary.LittleEndian.PutUint64(ptr, base+0x200)
	if !mem.Write(0x108, ptr) {
		t.Fatal("write pointer")
	}
	if !mem.Write(0x200, utf16String("Alice")) {
		t.Fatal("write string")
	}

	src := WrapLinear(mem, base)
	r := NewReader(src, DefaultLayout())

	strAddr, err := r.ReadPointer(base + 0x108)
	if err != nil {
		t.Fatalf("ReadPointer: %v", err)
	}
	if strAddr != base+0x200 {
		t.Fatalf("ReadPointer = %#x, want %#x", strAddr, base+0x200)
	}
	s, err := r.ReadString(strAddr)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "Alice" {
		t.Errorf("ReadString = %q, want Alice", s)
	}

	v, err := r.DecodeValue(heapinspect.Address(base+0x208), heapinspect.KindInt32)
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if v != int32(5) {
		t.Errorf("DecodeValue = %v, want 5", v)
	}
}

func TestLinear_OutOfRange(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	src := WrapLinear(mod.Memory(), 0x10000)

	tests := []struct {
		name string
		addr uint64
		n    int
	}{
		{"below base", 0x0fff0, 4},
		{"past end", 0x10000 + 65536 - 2, 4},
		{"far past end", 0x10000 + 1<<33, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := src.ReadAt(tt.addr, tt.n); !goerrors.Is(err, ErrAddressNotMapped) {
				t.Errorf("ReadAt(%#x) err = %v, want ErrAddressNotMapped", tt.addr, err)
			}
		})
	}
}

func TestWrapLinear_Nil(t *testing.T) {
	if WrapLinear(nil, 0) != nil {
		t.Error("WrapLinear(nil) should return nil")
	}
}
