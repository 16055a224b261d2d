// Package tagname derives store tags from structured identifiers. Tags are
// flat byte strings to the store; the hierarchy lives entirely in these
// conventions.
package tagname

// PackageList returns the tag of the installed-package list.
func PackageList() []byte {
	return []byte{PkgList}
}

// CapFile returns the tag of a package's binary.
func CapFile(pkg byte) []byte {
	return []byte{Cap, pkg}
}

// StaticField returns the tag of a package static field.
func StaticField(pkg, field byte) []byte {
	return []byte{Static, pkg, field}
}

// InstanceField returns the tag of an applet instance field.
func InstanceField(applet, pkg, class, field byte) []byte {
	return []byte{AppletField, applet, pkg, class, field}
}

// IsApplet reports whether tag names a package binary.
func IsApplet(tag []byte) bool {
	return len(tag) == 2 && tag[0] == Cap
}

// CanRead reports whether owner may read tag. Package-level entries are
// world-readable; instance fields only by their owning applet.
func CanRead(owner byte, tag []byte) bool {
	if len(tag) == 0 {
		return false
	}
	switch tag[0] {
	case PkgList, Cap, Static:
		return true
	case AppletField:
		return len(tag) >= 2 && tag[1] == owner
	}
	return false
}

// CanWrite reports whether owner may write tag.
func CanWrite(owner byte, tag []byte) bool {
	if len(tag) == 0 {
		return false
	}
	switch tag[0] {
	case PkgList:
		return owner == Installer && len(tag) == 1
	case Cap:
		return owner == Installer && len(tag) == 2
	case Static:
		return len(tag) == 3
	case AppletField:
		return len(tag) == 5 && tag[1] == owner
	}
	return false
}
