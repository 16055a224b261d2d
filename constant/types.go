package constant

const (
	ErasedByte = 0xFF
	ZeroByte   = 0x00
)

const (
	MaxTagSize = 32
)

const (
	DefaultSectorSize  = 4096 // 4k
	DefaultSectorCount = 8
	MinSectorSize      = 256 // must hold one record with a maximal tag and a wide length field
)
