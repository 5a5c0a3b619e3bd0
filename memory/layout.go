package memory

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/heapinspect/errors"
)

// Encoding is the character encoding of string objects in the target.
type Encoding string

const (
	EncodingUTF16 Encoding = "utf-16"
	EncodingUTF8  Encoding = "utf-8"
)

// DefaultMaxStringLength caps the number of characters ReadString accepts.
const DefaultMaxStringLength = 1 << 20

// StringLayout describes a runtime string object: an int32 character count
// followed by inline character data, both relative to the object address.
type StringLayout struct {
	Encoding     Encoding `toml:"encoding"`
	LengthOffset uint64   `toml:"length-offset"`
	DataOffset   uint64   `toml:"data-offset"`
	MaxLength    int32    `toml:"max-length"`
}

// Layout describes the target runtime's memory conventions.
type Layout struct {
	ByteOrder   string       `toml:"byte-order"`
	String      StringLayout `toml:"string"`
	PointerSize int          `toml:"pointer-size"`
}

// DefaultLayout returns a 64-bit little-endian layout with strings stored as
// [header][int32 length][UTF-16 chars].
func DefaultLayout() Layout {
	return Layout{
		PointerSize: 8,
		ByteOrder:   "little",
		String: StringLayout{
			Encoding:     EncodingUTF16,
			LengthOffset: 8,
			DataOffset:   12,
			MaxLength:    DefaultMaxStringLength,
		},
	}
}

// Order returns the binary byte order of the layout.
func (l Layout) Order() binary.ByteOrder {
	if l.ByteOrder == "big" {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Validate reports layout values the reader cannot honor.
func (l Layout) Validate() error {
	if l.PointerSize != 4 && l.PointerSize != 8 {
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("pointer-size must be 4 or 8, got %d", l.PointerSize))
	}
	if l.ByteOrder != "little" && l.ByteOrder != "big" {
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("byte-order must be little or big, got %q", l.ByteOrder))
	}
	switch l.String.Encoding {
	case EncodingUTF16, EncodingUTF8:
	default:
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("unsupported string encoding %q", l.String.Encoding))
	}
	if l.String.MaxLength <= 0 {
		return errors.InvalidInput(errors.PhaseLoad, "string max-length must be positive")
	}
	return nil
}

type layoutDocument struct {
	Layout Layout `toml:"layout"`
}

// ParseLayout reads the [layout] table of a TOML document. Missing keys take
// their DefaultLayout values.
func ParseLayout(data []byte) (Layout, error) {
	doc := layoutDocument{Layout: DefaultLayout()}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Layout{}, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "parse layout")
	}
	if err := doc.Layout.Validate(); err != nil {
		return Layout{}, err
	}
	return doc.Layout, nil
}

// LoadLayout reads the [layout] table from the TOML file at path.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return l, nil
}
