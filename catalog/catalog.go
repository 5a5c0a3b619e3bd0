package catalog

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/errors"
)

// FieldSpec declares one field of a TypeSpec.
type FieldSpec struct {
	Name   string `toml:"name"`
	Kind   string `toml:"kind"`
	Offset uint64 `toml:"offset"`
}

// TypeSpec declares a type to register.
type TypeSpec struct {
	Name        string      `toml:"name"`
	ElementKind string      `toml:"element-kind"`
	Fields      []FieldSpec `toml:"fields"`
	Handle      uint64      `toml:"handle"`
	BaseSize    uint64      `toml:"base-size"`
	ElementSize uint64      `toml:"element-size"`
	ValueType   bool        `toml:"value-type"`
	Array       bool        `toml:"array"`
}

// Catalog maps type handles to registered types.
type Catalog struct {
	reader      heapinspect.MemoryReader
	byHandle    map[uint64]*Type
	byName      map[string]*Type
	pointerSize int
	mu          sync.RWMutex
}

var _ heapinspect.TypeCatalog = (*Catalog)(nil)

// New creates an empty catalog that classifies objects through reader.
func New(reader heapinspect.MemoryReader, pointerSize int) *Catalog {
	return &Catalog{
		reader:      reader,
		pointerSize: pointerSize,
		byHandle:    make(map[uint64]*Type),
		byName:      make(map[string]*Type),
	}
}

// Register validates spec and adds the type.
func (c *Catalog) Register(spec TypeSpec) (*Type, error) {
	if spec.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "type name is required")
	}
	if spec.Handle == 0 {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Type(spec.Name).
			Detail("type handle must be non-zero").
			Build()
	}

	t := &Type{
		cat:       c,
		name:      spec.Name,
		handle:    spec.Handle,
		baseSize:  spec.BaseSize,
		valueType: spec.ValueType,
		array:     spec.Array,
		elemSize:  spec.ElementSize,
		byName:    make(map[string]*Field, len(spec.Fields)),
	}

	if spec.Array {
		kind, ok := heapinspect.ParseKind(spec.ElementKind)
		if !ok {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Type(spec.Name).
				Detail("array element-kind %q is not a known kind", spec.ElementKind).
				Build()
		}
		t.elemKind = kind
		if t.elemSize == 0 {
			t.elemSize = uint64(kind.Size(c.pointerSize))
		}
	}

	for _, fs := range spec.Fields {
		kind, ok := heapinspect.ParseKind(fs.Kind)
		if !ok {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Type(spec.Name).
				Field(fs.Name).
				Detail("unknown field kind %q", fs.Kind).
				Build()
		}
		if _, dup := t.byName[fs.Name]; dup || fs.Name == "" {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Type(spec.Name).
				Field(fs.Name).
				Detail("field name must be unique and non-empty").
				Build()
		}
		f := &Field{name: fs.Name, kind: kind, offset: fs.Offset}
		t.fields = append(t.fields, f)
		t.byName[f.name] = f
	}
	sortFields(t.fields)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.byHandle[spec.Handle]; ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Type(spec.Name).
			Detail("handle 0x%x already registered to %s", spec.Handle, prev.name).
			Build()
	}
	if _, ok := c.byName[spec.Name]; ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Type(spec.Name).
			Detail("type already registered").
			Build()
	}
	c.byHandle[t.handle] = t
	c.byName[t.name] = t
	return t, nil
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byName[name]
	return t, ok
}

// Types returns all registered types ordered by name.
func (c *Catalog) Types() []*Type {
	c.mu.RLock()
	out := make([]*Type, 0, len(c.byName))
	for _, t := range c.byName {
		out = append(out, t)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Classify returns the registered type of the object at addr. Address 0,
// unreadable headers and unregistered handles yield heapinspect.UnknownType.
func (c *Catalog) Classify(addr heapinspect.Address) heapinspect.TypeDescriptor {
	if addr == 0 {
		return heapinspect.UnknownType
	}
	h, err := c.reader.ReadPointer(addr)
	if err != nil {
		Logger().Debug("cannot read type handle",
			zap.Uint64("addr", uint64(addr)),
			zap.Error(err))
		return heapinspect.UnknownType
	}

	c.mu.RLock()
	t, ok := c.byHandle[uint64(h)]
	c.mu.RUnlock()
	if !ok {
		Logger().Debug("unregistered type handle",
			zap.Uint64("addr", uint64(addr)),
			zap.Uint64("handle", uint64(h)))
		return heapinspect.UnknownType
	}
	return t
}
