package fs

import (
	"io"

	"github.com/infinivision/tagfs/flash"
	"github.com/infinivision/tagfs/store"
	"github.com/nnsgmsone/damrey/logger"
)

/*
FS is the handle callers hold on an open store. Only one handle may own a
flash image at a time; the medium has no locking primitive, so exclusivity
is by convention. Fixed-width accessors use byte offsets and little-endian
encoding.
*/
type FS interface {
	Close() error

	Has(tag []byte) bool
	Len(tag []byte) (int, error)
	Get(tag []byte) ([]byte, error)
	Set(tag, val []byte) error
	Del(tag []byte) error
	WriteAt(tag []byte, off int, p []byte) error

	ReadUint8At(tag []byte, off int) (uint8, error)
	ReadUint16At(tag []byte, off int) (uint16, error)
	ReadUint32At(tag []byte, off int) (uint32, error)
	WriteUint8At(tag []byte, off int, v uint8) error
	WriteUint16At(tag []byte, off int, v uint16) error
	WriteUint32At(tag []byte, off int, v uint32) error

	Wipe() error
}

type Config struct {
	Path        string    `yaml:"path"`
	SectorSize  int       `yaml:"sector_size"`
	SectorCount int       `yaml:"sector_count"`
	LogWriter   io.Writer `yaml:"-"`
}

type fs struct {
	f   flash.Flash
	s   store.Store
	log logger.Log
}
