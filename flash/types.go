package flash

// Flash is a byte-programmable medium cut into independently erasable
// sectors. Programming can only clear bits (1 -> 0); setting a bit back
// requires erasing the whole sector.
type Flash interface {
	Close() error
	Flush() error

	Sectors() int
	SectorSize() int

	View(sector, off, n int) ([]byte, error)
	Program(sector, off int, data []byte) error

	Erase(sector int) error       // sector to all-1s, ready for reuse
	EraseToZero(sector int) error // secure wipe, sector to all-0s
}

type flash struct {
	ssize int // sector size
	scnt  int // sector count
	buf   []byte
}
