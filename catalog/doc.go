// Package catalog implements a table-driven heapinspect.TypeCatalog.
//
// Types are registered with the type-handle value the target runtime stores
// in the first pointer-sized word of every object. Classification reads that
// word through a MemoryReader and looks the handle up:
//
//	cat := catalog.New(reader, 8)
//	cat.Register(catalog.TypeSpec{
//		Name:     "Person",
//		Handle:   0x5000,
//		BaseSize: 24,
//		Fields: []catalog.FieldSpec{
//			{Name: "Name", Kind: "string", Offset: 8},
//			{Name: "Age", Kind: "int32", Offset: 16},
//		},
//	})
//	t := cat.Classify(0x1000) // *catalog.Type for Person, or heapinspect.UnknownType
//
// Arrays store an int32 element count in the word after the type handle.
// Catalogs can also be loaded from the [[type]] tables of a TOML file.
package catalog
