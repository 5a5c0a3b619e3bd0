package memory

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	"github.com/wippyai/heapinspect/errors"
)

// imageVersion is bumped whenever the on-disk image shape changes.
const imageVersion = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("memory: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Segment is one contiguous mapped range of a snapshot.
type Segment struct {
	Data []byte `cbor:"data"`
	Base uint64 `cbor:"base"`
}

// End returns the first address past the segment.
func (s Segment) End() uint64 {
	return s.Base + uint64(len(s.Data))
}

type imageFile struct {
	Segments []Segment `cbor:"segments"`
	Version  int       `cbor:"version"`
}

// Image is a captured memory snapshot made of non-overlapping segments.
// It is safe for concurrent reads; Map may be called concurrently with reads.
type Image struct {
	segments []Segment
	mu       sync.RWMutex
}

var _ Source = (*Image)(nil)

// NewImage creates an empty image.
func NewImage() *Image {
	return &Image{}
}

// Map adds a segment at base. The image keeps a reference to data.
// Fails if the segment overlaps an existing one or wraps the address space.
func (img *Image) Map(base uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	seg := Segment{Base: base, Data: data}
	if seg.End() < base {
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("segment at 0x%x wraps the address space", base))
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	i := sort.Search(len(img.segments), func(i int) bool {
		return img.segments[i].Base >= base
	})
	if i > 0 && img.segments[i-1].End() > base {
		return errors.InvalidInput(errors.PhaseLoad,
			fmt.Sprintf("segment at 0x%x overlaps segment at 0x%x", base, img.segments[i-1].Base))
	}
	if i < len(img.segments) && img.segments[i].Base < seg.End() {
		return errors.InvalidInput(errors.PhaseLoad,
			fmt.Sprintf("segment at 0x%x overlaps segment at 0x%x", base, img.segments[i].Base))
	}

	img.segments = append(img.segments, Segment{})
	copy(img.segments[i+1:], img.segments[i:])
	img.segments[i] = seg
	return nil
}

// Segments returns the mapped segments ordered by base address.
func (img *Image) Segments() []Segment {
	img.mu.RLock()
	defer img.mu.RUnlock()
	out := make([]Segment, len(img.segments))
	copy(out, img.segments)
	return out
}

// ReadAt returns n bytes at addr. The returned slice aliases image memory
// and must not be modified.
func (img *Image) ReadAt(addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read size %d", n)
	}

	img.mu.RLock()
	defer img.mu.RUnlock()

	// Last segment with Base <= addr.
	i := sort.Search(len(img.segments), func(i int) bool {
		return img.segments[i].Base > addr
	}) - 1
	if i < 0 {
		return nil, ErrAddressNotMapped
	}
	seg := img.segments[i]
	off := addr - seg.Base
	if off+uint64(n) > uint64(len(seg.Data)) || off+uint64(n) < off {
		return nil, ErrAddressNotMapped
	}
	return seg.Data[off : off+uint64(n) : off+uint64(n)], nil
}

// Save writes the image to w in canonical CBOR.
func (img *Image) Save(w io.Writer) error {
	data, err := cborEncMode.Marshal(imageFile{
		Version:  imageVersion,
		Segments: img.Segments(),
	})
	if err != nil {
		return fmt.Errorf("memory: marshal image: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFile saves the image to path.
func (img *Image) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := img.Save(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadImage reads a CBOR image written by Save.
func LoadImage(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f imageFile
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "unmarshal image")
	}
	if f.Version != imageVersion {
		return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("unsupported image version %d", f.Version))
	}

	img := NewImage()
	for _, seg := range f.Segments {
		if err := img.Map(seg.Base, seg.Data); err != nil {
			return nil, err
		}
	}
	Logger().Debug("loaded memory image", zap.Int("segments", len(f.Segments)))
	return img, nil
}

// LoadImageFile reads a CBOR image from path.
func LoadImageFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()
	img, err := LoadImage(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}
