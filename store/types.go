package store

import (
	"github.com/infinivision/tagfs/flash"
	"github.com/nnsgmsone/damrey/logger"
)

// Store is the log-structured engine over a flash medium. It assumes
// exclusive ownership of the medium for its lifetime and serializes nothing
// itself: callers are single-threaded by contract. Every successful
// mutation is durable on the medium before the call returns.
type Store interface {
	Close() error

	Has([]byte) bool
	Len([]byte) (int, error)
	Get([]byte) ([]byte, error)
	Set([]byte, []byte) error
	Del([]byte) error
	WriteAt([]byte, int, []byte) error

	Wipe() error
}

// location addresses the current record of a tag on the medium.
type location struct {
	sector int
	off    int // frame start within the sector
	size   int // total frame footprint
	vlen   int // value length
}

type store struct {
	act  int   // active sector, new records append here
	next []int // first erased byte per sector
	live []int // live frame bytes per sector
	cnt  []int // live record count per sector
	mp   map[string]location
	f    flash.Flash
	log  logger.Log
}
