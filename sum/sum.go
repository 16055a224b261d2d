package sum

// CRC-8 with polynomial 0xD5, MSB first, zero init.
const poly = 0xD5

var table [256]byte

func init() {
	for i := 0; i < 256; i++ {
		crc := byte(i)
		for j := 0; j < 8; j++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
}

// Sum8 computes the CRC-8 of first concatenated with rest. The split exists
// so callers can checksum a header byte with some of its bits masked out
// without copying the remainder.
func Sum8(first byte, rest []byte) byte {
	crc := table[first]
	for _, b := range rest {
		crc = table[crc^b]
	}
	return crc
}
