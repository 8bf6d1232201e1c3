package byteparse

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedFile exposes a memory-mapped file as a parse buffer. The mapping
// is shared: writes made through a typed array view returned by Array are
// visible to other readers of the file once synced. Files that cannot be
// opened for writing are mapped read-only.
type MappedFile struct {
	f *os.File
	m mmap.MMap
}

// MapFile maps the file at path.
func MapFile(path string) (*MappedFile, error) {
	prot := mmap.RDWR
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", path, err)
		}
		prot = mmap.RDONLY
	}
	m, err := mmap.Map(f, prot, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	return &MappedFile{f: f, m: m}, nil
}

// Bytes returns the mapped region. The slice is only valid until Close.
func (mf *MappedFile) Bytes() []byte { return []byte(mf.m) }

// Sync flushes mapped writes back to the file.
func (mf *MappedFile) Sync() error { return mf.m.Flush() }

// Close unmaps the region and closes the file. Typed array views obtained
// from the mapping must not be used afterwards.
func (mf *MappedFile) Close() error {
	if err := mf.m.Unmap(); err != nil {
		mf.f.Close()
		return err
	}
	return mf.f.Close()
}

// ParseFile maps the file at path and runs p over its contents. The
// mapping is closed before returning, so p must produce a value that does
// not reference the buffer; use MapFile directly to keep array views
// alive.
func ParseFile(p Parser, path string) (any, error) {
	mf, err := MapFile(path)
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	return ParseBytes(p, mf.Bytes())
}
