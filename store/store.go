package store

import (
	"github.com/infinivision/tagfs/constant"
	"github.com/infinivision/tagfs/errmsg"
	"github.com/infinivision/tagfs/record"
)

func (s *store) Close() error {
	s.mp = nil
	return nil
}

func (s *store) Has(tag []byte) bool {
	_, ok := s.mp[string(tag)]
	return ok
}

func (s *store) Len(tag []byte) (int, error) {
	l, ok := s.mp[string(tag)]
	if !ok {
		return 0, errmsg.NotExist
	}
	return l.vlen, nil
}

func (s *store) Get(tag []byte) ([]byte, error) {
	l, ok := s.mp[string(tag)]
	if !ok {
		return nil, errmsg.NotExist
	}
	v, err := s.f.View(l.sector, l.off+record.ValueOff(l.vlen), l.vlen)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, v...), nil
}

func (s *store) Set(tag, val []byte) error {
	if err := checkTag(tag); err != nil {
		return err
	}
	if record.Size(len(tag), len(val)) > s.f.SectorSize() {
		return errmsg.ValTooLong
	}
	return s.append(tag, val)
}

func (s *store) Del(tag []byte) error {
	l, ok := s.mp[string(tag)]
	if !ok {
		return errmsg.NotExist
	}
	if err := s.tombstone(l); err != nil {
		return err
	}
	delete(s.mp, string(tag))
	return nil
}

// WriteAt patches a byte range of the stored value without changing its
// length. When every required bit transition on the medium is 1 -> 0 the
// patch lands in place (value bytes, then the recomputed checksum);
// otherwise the record is rewritten in full with the patched value. Either
// way the caller observes the same result.
func (s *store) WriteAt(tag []byte, off int, p []byte) error {
	l, ok := s.mp[string(tag)]
	if !ok {
		return errmsg.NotExist
	}
	if off < 0 || off+len(p) > l.vlen {
		return errmsg.OutOfBounds
	}
	if len(p) == 0 {
		return nil
	}
	frame, err := s.f.View(l.sector, l.off, l.size)
	if err != nil {
		return err
	}
	voff := record.ValueOff(l.vlen)
	patched := append([]byte{}, frame...)
	copy(patched[voff+off:], p)
	patched[l.size-1] = record.Checksum(patched)
	if programmable(frame, patched) {
		if err := s.f.Program(l.sector, l.off+voff+off, patched[voff+off:voff+off+len(p)]); err != nil {
			return err
		}
		return s.f.Program(l.sector, l.off+l.size-1, patched[l.size-1:])
	}
	val := append([]byte{}, patched[voff:voff+l.vlen]...)
	return s.append(tag, val)
}

// Wipe forces every sector to all-0s. The data is gone for good; sectors
// are erased back to a usable state lazily, as rotation reclaims them.
func (s *store) Wipe() error {
	for sid := 0; sid < s.f.Sectors(); sid++ {
		if err := s.f.EraseToZero(sid); err != nil {
			return err
		}
		s.next[sid] = s.f.SectorSize()
		s.live[sid] = 0
		s.cnt[sid] = 0
	}
	s.mp = make(map[string]location)
	return nil
}

// append writes a new record two-phase: the full frame marked in-progress,
// then a single-bit header flip making it visible. Only after that is the
// superseded record, if any, tombstoned.
func (s *store) append(tag, val []byte) error {
	frame := record.Encode(tag, val)
	sid, err := s.room(len(frame))
	if err != nil {
		return err
	}
	off := s.next[sid]
	if err := s.f.Program(sid, off, frame); err != nil {
		return err
	}
	if err := s.f.Program(sid, off, []byte{record.Commit(frame[0])}); err != nil {
		return err
	}
	if old, ok := s.mp[string(tag)]; ok {
		if err := s.tombstone(old); err != nil {
			return err
		}
	}
	s.mp[string(tag)] = location{sector: sid, off: off, size: len(frame), vlen: len(val)}
	s.next[sid] += len(frame)
	s.live[sid] += len(frame)
	s.cnt[sid]++
	return nil
}

// room returns the sector the next frame appends to, rotating the active
// sector when it is out of space. Rotation promotes the lowest-address
// erased sector; failing that it erases the lowest-address sector whose
// records are all dead, the active one included. Live records are never
// relocated.
func (s *store) room(n int) (int, error) {
	if s.next[s.act]+n <= s.f.SectorSize() {
		return s.act, nil
	}
	for sid := 0; sid < s.f.Sectors(); sid++ {
		if sid != s.act && s.next[sid] == 0 {
			s.act = sid
			return sid, nil
		}
	}
	for sid := 0; sid < s.f.Sectors(); sid++ {
		if s.cnt[sid] == 0 && s.next[sid] > 0 {
			if err := s.reclaim(sid); err != nil {
				return -1, err
			}
			s.act = sid
			return sid, nil
		}
	}
	return -1, errmsg.OutOfSpace
}

func (s *store) tombstone(l location) error {
	hdr, err := s.f.View(l.sector, l.off, 1)
	if err != nil {
		return err
	}
	if err := s.f.Program(l.sector, l.off, []byte{record.Tombstone(hdr[0])}); err != nil {
		return err
	}
	s.live[l.sector] -= l.size
	s.cnt[l.sector]--
	return nil
}

func programmable(old, new []byte) bool {
	for i := range new {
		if new[i]&^old[i] != 0 {
			return false
		}
	}
	return true
}

func checkTag(tag []byte) error {
	switch {
	case len(tag) == 0:
		return errmsg.TagIsEmpty
	case len(tag) > constant.MaxTagSize:
		return errmsg.TagTooLong
	}
	return nil
}
