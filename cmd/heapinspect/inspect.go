package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/catalog"
	"github.com/wippyai/heapinspect/memory"
	"github.com/wippyai/heapinspect/object"
)

// openSession loads the layout and catalog from configPath and the snapshot
// from imagePath.
func openSession(configPath, imagePath string) (*object.Heap, error) {
	layout, err := memory.LoadLayout(configPath)
	if err != nil {
		return nil, err
	}
	img, err := memory.LoadImageFile(imagePath)
	if err != nil {
		return nil, err
	}
	reader := memory.NewReader(img, layout)
	cat, err := catalog.LoadFile(configPath, reader)
	if err != nil {
		return nil, err
	}
	memory.Logger().Info("session opened",
		zap.String("config", configPath),
		zap.String("image", imagePath),
		zap.Int("segments", len(img.Segments())),
		zap.Int("types", len(cat.Types())))
	return object.NewHeap(cat, reader), nil
}

func parseAddress(s string) (heapinspect.Address, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return heapinspect.Address(v), nil
}

// resolvePath follows every segment but the last as an object field and
// reads the last one by its declared kind. An empty path yields h itself.
func resolvePath(h object.Handle, path string) (any, error) {
	if path == "" {
		return h, nil
	}
	parts := strings.Split(path, ".")
	for i, name := range parts[:len(parts)-1] {
		next, err := h.GetObjectField(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(parts[:i+1], "."), err)
		}
		h = next
	}
	v, err := h.Value(parts[len(parts)-1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case object.Handle:
		if x.IsNull() {
			return "null"
		}
		return x.String()
	case string:
		return strconv.Quote(x)
	case heapinspect.Address:
		return fmt.Sprintf("0x%x", uint64(x))
	case float32, float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// fieldRow is one line of an object description.
type fieldRow struct {
	err    error
	value  any
	name   string
	kind   heapinspect.ElementKind
	offset uint64
}

// describe reads every field of h. Only catalog types can list their fields;
// other descriptors produce no rows.
func describe(h object.Handle) []fieldRow {
	t, ok := h.Type().(*catalog.Type)
	if !ok {
		return nil
	}
	var rows []fieldRow
	for _, f := range t.Fields() {
		v, err := h.Value(f.Name())
		rows = append(rows, fieldRow{
			name:   f.Name(),
			kind:   f.Kind(),
			offset: f.Offset(),
			value:  v,
			err:    err,
		})
	}
	return rows
}

func writeHeader(w io.Writer, h object.Handle) {
	fmt.Fprintf(w, "%s  size=%d", h, h.Size())
	if h.IsBoxed() {
		fmt.Fprint(w, " boxed")
	}
	if h.IsArray() {
		if n, err := h.Length(); err == nil {
			fmt.Fprintf(w, " length=%d", n)
		} else {
			fmt.Fprintf(w, " length=<%v>", err)
		}
	}
	fmt.Fprintln(w)
}

func run(w io.Writer, heap *object.Heap, addr heapinspect.Address, path string) error {
	h := heap.Object(addr)
	if path != "" {
		v, err := resolvePath(h, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatValue(v))
		return nil
	}

	writeHeader(w, h)
	for _, r := range describe(h) {
		if r.err != nil {
			fmt.Fprintf(w, "  +%-4d %-16s %-8s <%v>\n", r.offset, r.name, r.kind, r.err)
			continue
		}
		fmt.Fprintf(w, "  +%-4d %-16s %-8s %s\n", r.offset, r.name, r.kind, formatValue(r.value))
	}
	return nil
}
