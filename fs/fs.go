package fs

import (
	"encoding/binary"
	"os"

	"github.com/infinivision/tagfs/constant"
	"github.com/infinivision/tagfs/errmsg"
	"github.com/infinivision/tagfs/flash"
	"github.com/infinivision/tagfs/store"
	"github.com/nnsgmsone/damrey/logger"
)

func DefaultConfig() Config {
	return Config{
		Path:        "tag.fs",
		SectorSize:  constant.DefaultSectorSize,
		SectorCount: constant.DefaultSectorCount,
		LogWriter:   os.Stderr,
	}
}

// Open maps the flash image and rebuilds the store index from it. Failures
// surface as errors rather than a usable-looking handle; errmsg.Corrupted
// means recovery could not settle an active sector and the image needs a
// full erase before it can be opened again.
func Open(cfg Config) (*fs, error) {
	if cfg.LogWriter == nil {
		cfg.LogWriter = os.Stderr
	}
	log := logger.New(cfg.LogWriter, "tagfs")
	f, err := flash.New(cfg.Path, cfg.SectorSize, cfg.SectorCount)
	if err != nil {
		return nil, err
	}
	s, err := store.New(f, log)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fs{f: f, s: s, log: log}, nil
}

// Close releases the index and unmaps the image. Every operation already
// committed to the medium, so there is nothing left to flush.
func (fs *fs) Close() error {
	fs.s.Close()
	return fs.f.Close()
}

func (fs *fs) Has(tag []byte) bool {
	return fs.s.Has(tag)
}

func (fs *fs) Len(tag []byte) (int, error) {
	return fs.s.Len(tag)
}

func (fs *fs) Get(tag []byte) ([]byte, error) {
	return fs.s.Get(tag)
}

func (fs *fs) Set(tag, val []byte) error {
	return fs.s.Set(tag, val)
}

func (fs *fs) Del(tag []byte) error {
	return fs.s.Del(tag)
}

func (fs *fs) WriteAt(tag []byte, off int, p []byte) error {
	return fs.s.WriteAt(tag, off, p)
}

func (fs *fs) ReadUint8At(tag []byte, off int) (uint8, error) {
	b, err := fs.readAt(tag, off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (fs *fs) ReadUint16At(tag []byte, off int) (uint16, error) {
	b, err := fs.readAt(tag, off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (fs *fs) ReadUint32At(tag []byte, off int) (uint32, error) {
	b, err := fs.readAt(tag, off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (fs *fs) WriteUint8At(tag []byte, off int, v uint8) error {
	return fs.s.WriteAt(tag, off, []byte{v})
}

func (fs *fs) WriteUint16At(tag []byte, off int, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return fs.s.WriteAt(tag, off, b[:])
}

func (fs *fs) WriteUint32At(tag []byte, off int, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return fs.s.WriteAt(tag, off, b[:])
}

func (fs *fs) Wipe() error {
	return fs.s.Wipe()
}

func (fs *fs) readAt(tag []byte, off, n int) ([]byte, error) {
	ln, err := fs.s.Len(tag)
	if err != nil {
		return nil, err
	}
	if off < 0 || off+n > ln {
		return nil, errmsg.OutOfBounds
	}
	v, err := fs.s.Get(tag)
	if err != nil {
		return nil, err
	}
	return v[off : off+n], nil
}
