package tagname

// Tag classes, encoded in the first tag byte.
const (
	PkgList     = 0x00 // list of installed packages, tag length 1
	Cap         = 0x01 // package binary, tag length 2
	Static      = 0x02 // package static field, tag length 3
	AppletField = 0x03 // per-applet instance field, tag length 5
)

// Installer is the owner id allowed to touch package-level entries.
const Installer = 0x01
