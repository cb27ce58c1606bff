package manifest

import (
	"bytes"
	"context"

	"github.com/hupe1980/crcgo/blobstore"
)

// DefaultName is the blob name used when a manifest is saved next to the
// data it describes.
const DefaultName = "CRC32SUMS"

// Store persists a manifest as a blob.
type Store struct {
	store  blobstore.BlobStore
	name   string
	format Format
}

// NewStore creates a manifest store writing name in format f.
// An empty name selects DefaultName.
func NewStore(store blobstore.BlobStore, name string, f Format) *Store {
	if name == "" {
		name = DefaultName
	}
	return &Store{store: store, name: name, format: f}
}

// Name returns the manifest blob name.
func (s *Store) Name() string { return s.name }

// Load reads the manifest blob. The format is detected from its content.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	blob, err := s.store.Open(ctx, s.name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Read(rc)
}

// Save encodes m and writes it with a single Put, so readers never observe
// a partial manifest on stores with atomic puts.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	var buf bytes.Buffer
	if err := Write(&buf, m, s.format); err != nil {
		return err
	}
	return s.store.Put(ctx, s.name, buf.Bytes())
}

