package unixconst

import (
	"errors"
	"io/fs"
	"syscall"
)

// Errno maps err to one of the errno values held by c.
//
// A [syscall.Errno] found in err's chain is used as is when c knows its value.
// Otherwise err is matched against [fs.ErrNotExist], [fs.ErrExist], [fs.ErrPermission] and [fs.ErrInvalid].
// ok is false if none of them applies.
func (c Constants) Errno(err error) (errno int, ok bool) {
	if err == nil {
		return 0, false
	}

	var sysErrno syscall.Errno
	if errors.As(err, &sysErrno) {
		if _, known := c.ErrnoName(int(sysErrno)); known {
			return int(sysErrno), true
		}
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return c.ENOENT, true
	case errors.Is(err, fs.ErrExist):
		return c.EEXIST, true
	case errors.Is(err, fs.ErrPermission):
		return c.EACCES, true
	case errors.Is(err, fs.ErrInvalid):
		return c.EINVAL, true
	}
	return 0, false
}

// ErrnoName returns the ABI name of errno value v.
func (c Constants) ErrnoName(v int) (string, bool) {
	if v == 0 {
		return "", false
	}
	for _, e := range entries {
		if e.family != FamilyErrno {
			continue
		}
		if n, _ := c.Lookup(e.name); n == v {
			return e.name, true
		}
	}
	return "", false
}
