package unixconst

import "io/fs"

// FileType is the kind of file encoded in the S_IFMT bits of a mode word.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeRegular
	FileTypeDirectory
	FileTypeSymlink
	FileTypeCharDevice
	FileTypeBlockDevice
	FileTypeFIFO
)

func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "regular"
	case FileTypeDirectory:
		return "directory"
	case FileTypeSymlink:
		return "symlink"
	case FileTypeCharDevice:
		return "char device"
	case FileTypeBlockDevice:
		return "block device"
	case FileTypeFIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// FileType classifies mode by its file type bits.
func (c Constants) FileType(mode int) FileType {
	switch mode & c.S_IFMT {
	case c.S_IFREG:
		return FileTypeRegular
	case c.S_IFDIR:
		return FileTypeDirectory
	case c.S_IFLNK:
		return FileTypeSymlink
	case c.S_IFCHR:
		return FileTypeCharDevice
	case c.S_IFBLK:
		return FileTypeBlockDevice
	case c.S_IFIFO:
		return FileTypeFIFO
	default:
		return FileTypeUnknown
	}
}

// Perm masks mode with S_IAMB.
func (c Constants) Perm(mode int) int {
	return mode & c.S_IAMB
}

type permBit struct {
	host int
	mode fs.FileMode
}

func (c Constants) permBits() [9]permBit {
	return [9]permBit{
		{c.S_IRUSR, 0o400},
		{c.S_IWUSR, 0o200},
		{c.S_IXUSR, 0o100},
		{c.S_IRGRP, 0o040},
		{c.S_IWGRP, 0o020},
		{c.S_IXGRP, 0o010},
		{c.S_IROTH, 0o004},
		{c.S_IWOTH, 0o002},
		{c.S_IXOTH, 0o001},
	}
}

// ToFileMode converts a host mode word into fs.FileMode.
//
// Only file type and permission bits are translated.
// Types without fs.FileMode counterpart, e.g. sockets, are converted to a regular file mode.
func (c Constants) ToFileMode(mode int) fs.FileMode {
	var m fs.FileMode
	for _, b := range c.permBits() {
		if mode&b.host != 0 {
			m |= b.mode
		}
	}
	switch c.FileType(mode) {
	case FileTypeDirectory:
		m |= fs.ModeDir
	case FileTypeSymlink:
		m |= fs.ModeSymlink
	case FileTypeCharDevice:
		m |= fs.ModeDevice | fs.ModeCharDevice
	case FileTypeBlockDevice:
		m |= fs.ModeDevice
	case FileTypeFIFO:
		m |= fs.ModeNamedPipe
	}
	return m
}

// FromFileMode converts m into a host mode word. It is the inverse of [Constants.ToFileMode].
//
// Sockets and irregular files have no file type bits in the result.
func (c Constants) FromFileMode(m fs.FileMode) int {
	var mode int
	for _, b := range c.permBits() {
		if m&b.mode != 0 {
			mode |= b.host
		}
	}
	switch typ := m.Type(); {
	case typ == 0:
		mode |= c.S_IFREG
	case typ&fs.ModeDir != 0:
		mode |= c.S_IFDIR
	case typ&fs.ModeSymlink != 0:
		mode |= c.S_IFLNK
	case typ&fs.ModeNamedPipe != 0:
		mode |= c.S_IFIFO
	case typ&fs.ModeCharDevice != 0:
		mode |= c.S_IFCHR
	case typ&fs.ModeDevice != 0:
		mode |= c.S_IFBLK
	}
	return mode
}
