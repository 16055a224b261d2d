package errmsg

import "errors"

var (
	NotExist    = errors.New("not exist")
	OpenFailed  = errors.New("open failed")
	ReadFailed  = errors.New("read failed")
	WriteFailed = errors.New("write failed")
	TagIsEmpty  = errors.New("tag is empty")
	TagTooLong  = errors.New("tag too long")
	ValTooLong  = errors.New("value too long")
	OutOfSpace  = errors.New("out of space")
	OutOfBounds = errors.New("out of bounds")
	Corrupted   = errors.New("corrupted store")
)
