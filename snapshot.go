package tableau

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tableau/blobstore"
	"github.com/hupe1980/tableau/codec"
)

const (
	// snapshotMagic identifies tableau snapshot blobs (ASCII "TAB1").
	snapshotMagic   = 0x54414231
	snapshotVersion = 1

	// Blob suffixes of a tableau snapshot. Meta is written last so a
	// snapshot is only discoverable once both axis sections exist.
	blobMeta = "/meta"
	blobRows = "/rows"
	blobCols = "/cols"
)

// vectorState is the codec-encoded form of a Vector.
type vectorState[T Number] struct {
	Element string  `json:"element"`
	Kind    Kind    `json:"kind"`
	Indices []int   `json:"indices,omitempty"`
	Values  []T     `json:"values"`
	Epsilon float64 `json:"epsilon,omitempty"`
}

// tableauMeta is the codec-encoded form of a Tableau's shape.
type tableauMeta struct {
	Element string  `json:"element"`
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	Format  Format  `json:"format"`
	Epsilon float64 `json:"epsilon,omitempty"`
}

func typeNameOf[T Number]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// encodeEnvelope wraps a codec-encoded payload in the self-describing
// snapshot envelope:
//
//	magic uint32 | version uint32 | codec name (uint16 len + bytes) |
//	compression uint8 | uncompressed size uint32 | crc32 uint32 | payload
//
// The checksum covers the payload as stored (after compression).
func encodeEnvelope(codecName string, comp codec.Compression, payload []byte) ([]byte, error) {
	stored, actual, err := codec.Compress(payload, comp)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 19+len(codecName)+len(stored))
	buf = binary.LittleEndian.AppendUint32(buf, snapshotMagic)
	buf = binary.LittleEndian.AppendUint32(buf, snapshotVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(codecName)))
	buf = append(buf, codecName...)
	buf = append(buf, byte(actual))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
	buf = binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(stored))
	buf = append(buf, stored...)
	return buf, nil
}

// decodeEnvelope validates the envelope and returns the codec recorded at
// save time together with the decompressed payload.
func decodeEnvelope(data []byte) (codec.Codec, []byte, error) {
	if len(data) < 10 {
		return nil, nil, fmt.Errorf("%w: truncated envelope", ErrSnapshotCorrupt)
	}
	if binary.LittleEndian.Uint32(data) != snapshotMagic {
		return nil, nil, fmt.Errorf("%w: bad magic", ErrSnapshotCorrupt)
	}
	if v := binary.LittleEndian.Uint32(data[4:]); v != snapshotVersion {
		return nil, nil, &ErrVersionMismatch{Got: v, Want: snapshotVersion}
	}
	nameLen := int(binary.LittleEndian.Uint16(data[8:]))
	if len(data) < 19+nameLen {
		return nil, nil, fmt.Errorf("%w: truncated envelope", ErrSnapshotCorrupt)
	}
	codecName := string(data[10 : 10+nameLen])
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}
	rest := data[10+nameLen:]
	comp := codec.Compression(rest[0])
	uncompressedSize := binary.LittleEndian.Uint32(rest[1:])
	sum := binary.LittleEndian.Uint32(rest[5:])
	stored := rest[9:]
	if crc32.ChecksumIEEE(stored) != sum {
		return nil, nil, ErrChecksumMismatch
	}
	payload, err := codec.Decompress(stored, comp, int(uncompressedSize))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	return c, payload, nil
}

func marshalBlob(c codec.Codec, comp codec.Compression, v any) ([]byte, error) {
	payload, err := c.Marshal(v)
	if err != nil {
		return nil, err
	}
	return encodeEnvelope(c.Name(), comp, payload)
}

func unmarshalBlob(data []byte, v any) error {
	c, payload, err := decodeEnvelope(data)
	if err != nil {
		return err
	}
	return c.Unmarshal(payload, v)
}

// SaveVector persists v under name in the given store.
func SaveVector[T Number](ctx context.Context, store blobstore.Store, name string, v *Vector[T], opts ...Option) error {
	o := applyOptions(opts)
	state := vectorState[T]{
		Element: typeNameOf[T](),
		Kind:    v.kind,
		Indices: v.idx,
		Values:  v.val,
		Epsilon: v.eps,
	}
	blob, err := marshalBlob(o.codec, o.compression, state)
	if err != nil {
		o.logger.LogSnapshotSave(ctx, name, 0, err)
		return err
	}
	err = store.Put(ctx, name, blob)
	o.logger.LogSnapshotSave(ctx, name, len(blob), err)
	return err
}

// LoadVector restores a vector previously written by SaveVector. The type
// parameter must match the element type recorded at save time.
func LoadVector[T Number](ctx context.Context, store blobstore.Store, name string, opts ...Option) (*Vector[T], error) {
	o := applyOptions(opts)
	data, err := store.Get(ctx, name)
	if err != nil {
		o.logger.LogSnapshotLoad(ctx, name, err)
		return nil, err
	}
	var state vectorState[T]
	if err := unmarshalBlob(data, &state); err != nil {
		o.logger.LogSnapshotLoad(ctx, name, err)
		return nil, err
	}
	if want := typeNameOf[T](); state.Element != want {
		err := &ErrKindMismatch{Stored: state.Element, Loaded: want}
		o.logger.LogSnapshotLoad(ctx, name, err)
		return nil, err
	}
	v := &Vector[T]{kind: state.Kind, idx: state.Indices, val: state.Values, eps: state.Epsilon}
	if state.Kind == KindSparse && v.val == nil {
		v.val = []T{}
	}
	o.logger.LogSnapshotLoad(ctx, name, nil)
	return v, nil
}

// SaveTableau persists t as up to three blobs under the name prefix: the
// shape metadata plus one section per materialized axis. The sections are
// uploaded concurrently; the metadata is written only after both succeed.
func SaveTableau[T Number](ctx context.Context, store blobstore.Store, name string, t *Tableau[T], opts ...Option) error {
	o := applyOptions(opts)

	g, gctx := errgroup.WithContext(ctx)
	if t.format.hasRows() {
		g.Go(func() error {
			return saveAxis(gctx, store, name+blobRows, t.rowHeads, o)
		})
	}
	if t.format.hasCols() {
		g.Go(func() error {
			return saveAxis(gctx, store, name+blobCols, t.colHeads, o)
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.LogSnapshotSave(ctx, name, 0, err)
		return err
	}

	meta := tableauMeta{
		Element: typeNameOf[T](),
		Rows:    t.rows,
		Cols:    t.cols,
		Format:  t.format,
		Epsilon: t.eps,
	}
	blob, err := marshalBlob(o.codec, o.compression, meta)
	if err == nil {
		err = store.Put(ctx, name+blobMeta, blob)
	}
	o.logger.WithShape(t.rows, t.cols).LogSnapshotSave(ctx, name, len(blob), err)
	return err
}

func saveAxis[T Number](ctx context.Context, store blobstore.Store, name string, heads []*Vector[T], o options) error {
	states := make([]vectorState[T], len(heads))
	for i, v := range heads {
		states[i] = vectorState[T]{
			Kind:    v.kind,
			Indices: v.idx,
			Values:  v.val,
			Epsilon: v.eps,
		}
	}
	blob, err := marshalBlob(o.codec, o.compression, states)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, blob)
}

// LoadTableau restores a tableau previously written by SaveTableau. The type
// parameter must match the element type recorded at save time. Axis sections
// are fetched and decoded concurrently.
func LoadTableau[T Number](ctx context.Context, store blobstore.Store, name string, opts ...Option) (*Tableau[T], error) {
	o := applyOptions(opts)

	data, err := store.Get(ctx, name+blobMeta)
	if err != nil {
		o.logger.LogSnapshotLoad(ctx, name, err)
		return nil, err
	}
	var meta tableauMeta
	if err := unmarshalBlob(data, &meta); err != nil {
		o.logger.LogSnapshotLoad(ctx, name, err)
		return nil, err
	}
	if want := typeNameOf[T](); meta.Element != want {
		err := &ErrKindMismatch{Stored: meta.Element, Loaded: want}
		o.logger.LogSnapshotLoad(ctx, name, err)
		return nil, err
	}

	t := &Tableau[T]{rows: meta.Rows, cols: meta.Cols, format: meta.Format, eps: meta.Epsilon}
	g, gctx := errgroup.WithContext(ctx)
	if meta.Format.hasRows() {
		g.Go(func() error {
			heads, err := loadAxis[T](gctx, store, name+blobRows, meta.Rows)
			t.rowHeads = heads
			return err
		})
	}
	if meta.Format.hasCols() {
		g.Go(func() error {
			heads, err := loadAxis[T](gctx, store, name+blobCols, meta.Cols)
			t.colHeads = heads
			return err
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.LogSnapshotLoad(ctx, name, err)
		return nil, err
	}
	o.logger.LogSnapshotLoad(ctx, name, nil)
	return t, nil
}

func loadAxis[T Number](ctx context.Context, store blobstore.Store, name string, want int) ([]*Vector[T], error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	var states []vectorState[T]
	if err := unmarshalBlob(data, &states); err != nil {
		return nil, err
	}
	if len(states) != want {
		return nil, fmt.Errorf("%w: axis has %d vectors, shape says %d", ErrSnapshotCorrupt, len(states), want)
	}
	heads := make([]*Vector[T], len(states))
	for i, s := range states {
		heads[i] = &Vector[T]{kind: s.Kind, idx: s.Indices, val: s.Values, eps: s.Epsilon}
		if s.Kind == KindSparse && heads[i].val == nil {
			heads[i].val = []T{}
		}
	}
	return heads, nil
}
