package store

import (
	"github.com/infinivision/tagfs/constant"
	"github.com/infinivision/tagfs/errmsg"
	"github.com/infinivision/tagfs/flash"
	"github.com/infinivision/tagfs/record"
	"github.com/nnsgmsone/damrey/logger"
)

// New rebuilds the in-memory index by scanning every sector of the medium.
// The index is derived state and is never persisted.
func New(f flash.Flash, log logger.Log) (*store, error) {
	s := &store{
		f:    f,
		log:  log,
		mp:   make(map[string]location),
		next: make([]int, f.Sectors()),
		live: make([]int, f.Sectors()),
		cnt:  make([]int, f.Sectors()),
	}
	for sid := 0; sid < f.Sectors(); sid++ {
		if err := s.scan(sid); err != nil {
			return nil, err
		}
	}
	if err := s.pickActive(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *store) scan(sid int) error {
	ssize := s.f.SectorSize()
	buf, err := s.f.View(sid, 0, ssize)
	if err != nil {
		return err
	}
	off := 0
loop:
	for off < ssize {
		e := record.Parse(buf[off:])
		switch e.Kind {
		case record.Free:
			break loop
		case record.Zeroed, record.Dead, record.Partial:
			off += e.Size
		case record.Live:
			// A crash between committing a rewrite and tombstoning its
			// predecessor leaves two live records; the later one wins.
			if old, ok := s.mp[string(e.Tag)]; ok {
				if err := s.tombstone(old); err != nil {
					return err
				}
			}
			s.mp[string(e.Tag)] = location{sector: sid, off: off, size: e.Size, vlen: len(e.Value)}
			s.live[sid] += e.Size
			s.cnt[sid]++
			off += e.Size
		case record.Broken:
			if e.Size > 0 { // torn patch, frame still delimited
				s.log.Errorf("sector %v: torn record at %v, retiring %v bytes\n", sid, off, e.Size)
				if err := s.zero(sid, off, e.Size); err != nil {
					return err
				}
				off += e.Size
				continue
			}
			s.log.Errorf("sector %v: torn tail at %v, retiring\n", sid, off)
			end, err := s.retire(sid, off)
			if err != nil {
				return err
			}
			off = end
		}
	}
	s.next[sid] = off
	return nil
}

// retire zero-fills from off through the last programmed byte of the
// sector, so a half-written frame can never be resurrected by a later
// half-erase. Returns the end of the zeroed run.
func (s *store) retire(sid, off int) (int, error) {
	ssize := s.f.SectorSize()
	buf, err := s.f.View(sid, 0, ssize)
	if err != nil {
		return 0, err
	}
	end := ssize
	for end > off && buf[end-1] == constant.ErasedByte {
		end--
	}
	// A one-byte zero run mid-sector would be read as a record header on
	// the next scan: grow the run into the erased space behind it so it
	// always spans at least two bytes.
	if end-off < 2 && end < ssize {
		end = off + 2
	}
	if err := s.zero(sid, off, end-off); err != nil {
		return 0, err
	}
	return end, nil
}

func (s *store) zero(sid, off, n int) error {
	if n <= 0 {
		return nil
	}
	return s.f.Program(sid, off, make([]byte, n))
}

// pickActive settles which sector receives new records: the lowest
// partially written sector, else the lowest erased one, else a full sector
// holding no live data is erased and promoted. Only when every sector is
// full and pinned by live records is the store unusable.
func (s *store) pickActive() error {
	ssize := s.f.SectorSize()
	for sid := range s.next {
		if s.next[sid] > 0 && s.next[sid] < ssize {
			s.act = sid
			return nil
		}
	}
	for sid := range s.next {
		if s.next[sid] == 0 {
			s.act = sid
			return nil
		}
	}
	for sid := range s.next {
		if s.cnt[sid] == 0 {
			if err := s.reclaim(sid); err != nil {
				return err
			}
			s.act = sid
			return nil
		}
	}
	return errmsg.Corrupted
}

func (s *store) reclaim(sid int) error {
	if err := s.f.Erase(sid); err != nil {
		return err
	}
	s.next[sid] = 0
	s.live[sid] = 0
	return nil
}
