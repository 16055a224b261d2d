package record

// Cell classification produced by Parse.
const (
	Free    = iota // erased space, nothing written yet
	Zeroed         // space retired by torn-write cleanup
	Live           // current record
	Dead           // tombstoned or superseded record
	Partial        // fully framed but never committed
	Broken         // torn write: bad checksum or truncated frame
)

// Header bit layout. The two liveness bits only ever transition 1 -> 0 over
// a record's life (writing -> live -> dead), which is what raw flash allows
// without an erase.
const (
	StateMask    = 0xC0
	StateWriting = 0xC0
	StateLive    = 0x40
	StateDead    = 0x00
	WideMask     = 0x01
)

// Entry is one decoded cell. Tag and Value alias the parse buffer. Size is
// the cell's total footprint on the medium.
type Entry struct {
	Kind  int
	Tag   []byte
	Value []byte
	Size  int
}
