package record

import (
	"encoding/binary"

	"github.com/infinivision/tagfs/constant"
	"github.com/infinivision/tagfs/sum"
)

// On-medium frame:
//
//	hdr(1) taglen(1) vlen(1 or 4, big-endian) tag value crc(1)
//
// hdr bit7 is cleared once the frame is fully written, bit6 is cleared to
// tombstone, bit0 selects the wide value-length field. The CRC covers the
// whole frame with the liveness bits masked out, so both flips leave the
// stored checksum intact. A free cell reads 0xFF, which no header can
// legitimately be; a zero-filled run reads 0x00 at both hdr and taglen,
// which no record can produce since taglen is at least 1.

func lenlen(vlen int) int {
	if vlen > 0xFF {
		return 4
	}
	return 1
}

// Size returns the total frame footprint for a tag/value pair.
func Size(taglen, vlen int) int {
	return 2 + lenlen(vlen) + taglen + vlen + 1
}

// ValueOff returns the offset of the value bytes inside a frame.
func ValueOff(vlen int) int {
	return 2 + lenlen(vlen)
}

// CRCOff returns the offset of the checksum byte inside a frame.
func CRCOff(taglen, vlen int) int {
	return Size(taglen, vlen) - 1
}

// Commit clears the in-progress bit, making the record visible.
func Commit(hdr byte) byte {
	return hdr &^ 0x80
}

// Tombstone clears the live bit.
func Tombstone(hdr byte) byte {
	return hdr &^ 0x40
}

// Checksum recomputes the CRC of a full frame, liveness bits masked.
func Checksum(frame []byte) byte {
	return sum.Sum8(frame[0]&^StateMask, frame[1:len(frame)-1])
}

// Encode frames tag and value into a new record marked as in-progress. The
// caller programs the frame, then commits the header. Tag length must have
// been validated.
func Encode(tag, value []byte) []byte {
	buf := make([]byte, Size(len(tag), len(value)))
	hdr := byte(StateWriting)
	i := 2
	if len(value) > 0xFF {
		hdr |= WideMask
		binary.BigEndian.PutUint32(buf[i:], uint32(len(value)))
		i += 4
	} else {
		buf[i] = byte(len(value))
		i++
	}
	buf[0] = hdr
	buf[1] = byte(len(tag))
	copy(buf[i:], tag)
	i += len(tag)
	copy(buf[i:], value)
	i += len(value)
	buf[i] = sum.Sum8(hdr&^StateMask, buf[1:i])
	return buf
}

// Parse decodes the cell starting at buf[0]. Tag and Value of Live, Dead
// and Partial entries alias buf. A Broken entry keeps its Size when the
// frame structure is still readable and only the checksum failed (a torn
// in-place patch); Size 0 means the framing itself is unusable and the
// caller decides how much of the tail to retire.
func Parse(buf []byte) Entry {
	if len(buf) == 0 || buf[0] == constant.ErasedByte {
		return Entry{Kind: Free}
	}
	if buf[0] == constant.ZeroByte && (len(buf) < 2 || buf[1] == constant.ZeroByte) {
		n := 0
		for n < len(buf) && buf[n] == constant.ZeroByte {
			n++
		}
		return Entry{Kind: Zeroed, Size: n}
	}
	if buf[0]&0x3E != 0 {
		return Entry{Kind: Broken}
	}
	if len(buf) < 2 {
		return Entry{Kind: Broken}
	}
	taglen := int(buf[1])
	if taglen < 1 || taglen > constant.MaxTagSize {
		return Entry{Kind: Broken}
	}
	i := 2
	var vlen int
	if buf[0]&WideMask != 0 {
		if len(buf) < i+4 {
			return Entry{Kind: Broken}
		}
		vlen = int(binary.BigEndian.Uint32(buf[i:]))
		i += 4
	} else {
		if len(buf) < i+1 {
			return Entry{Kind: Broken}
		}
		vlen = int(buf[i])
		i++
	}
	size := i + taglen + vlen + 1
	if vlen < 0 || size > len(buf) {
		return Entry{Kind: Broken}
	}
	if buf[size-1] != Checksum(buf[:size]) {
		return Entry{Kind: Broken, Size: size}
	}
	e := Entry{
		Tag:   buf[i : i+taglen],
		Value: buf[i+taglen : i+taglen+vlen],
		Size:  size,
	}
	switch buf[0] & StateMask {
	case StateLive:
		e.Kind = Live
	case StateWriting:
		e.Kind = Partial
	default:
		e.Kind = Dead
	}
	return e
}
