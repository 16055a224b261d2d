package flash

import (
	"github.com/infinivision/tagfs/constant"
	"github.com/infinivision/tagfs/errmsg"
	"golang.org/x/sys/unix"
)

// New opens the flash image at path, creating and erasing it first if it
// does not exist yet. An existing image must match the requested geometry.
func New(path string, ssize, scnt int) (*flash, error) {
	if ssize < constant.MinSectorSize || scnt < 2 {
		return nil, errmsg.OpenFailed
	}
	size := ssize * scnt
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR, 0664)
	if err != nil {
		return nil, err
	}
	defer unix.Close(fd)
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, err
	}
	fresh := st.Size == 0
	switch {
	case fresh:
		if err := unix.Ftruncate(fd, int64(size)); err != nil {
			return nil, err
		}
	case st.Size != int64(size):
		return nil, errmsg.OpenFailed
	}
	buf, err := unix.Mmap(fd, 0, size, unix.PROT_WRITE|unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	f := &flash{ssize: ssize, scnt: scnt, buf: buf}
	if fresh {
		for i := range buf {
			buf[i] = constant.ErasedByte
		}
		if err := f.Flush(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (f *flash) Close() error {
	return unix.Munmap(f.buf)
}

func (f *flash) Flush() error {
	return unix.Msync(f.buf, unix.MS_SYNC)
}

func (f *flash) Sectors() int {
	return f.scnt
}

func (f *flash) SectorSize() int {
	return f.ssize
}

// View returns a read-only window onto the medium. The slice aliases the
// mapping and stays valid only while no erase rewrites the sector.
func (f *flash) View(sector, off, n int) ([]byte, error) {
	if err := f.check(sector, off, n); err != nil {
		return nil, err
	}
	p := sector*f.ssize + off
	return f.buf[p : p+n : p+n], nil
}

// Program writes data at off, clearing bits only. A byte that would need a
// 0 -> 1 transition fails the whole call before any mutation.
func (f *flash) Program(sector, off int, data []byte) error {
	if err := f.check(sector, off, len(data)); err != nil {
		return err
	}
	b := f.buf[sector*f.ssize+off:]
	for i, v := range data {
		if v&^b[i] != 0 {
			return errmsg.WriteFailed
		}
	}
	copy(b, data)
	return f.Flush()
}

func (f *flash) Erase(sector int) error {
	return f.fill(sector, constant.ErasedByte)
}

func (f *flash) EraseToZero(sector int) error {
	return f.fill(sector, constant.ZeroByte)
}

func (f *flash) fill(sector int, v byte) error {
	if err := f.check(sector, 0, f.ssize); err != nil {
		return err
	}
	b := f.buf[sector*f.ssize : (sector+1)*f.ssize]
	for i := range b {
		b[i] = v
	}
	return f.Flush()
}

func (f *flash) check(sector, off, n int) error {
	if sector < 0 || sector >= f.scnt || off < 0 || n < 0 || off+n > f.ssize {
		return errmsg.OutOfBounds
	}
	return nil
}
