package unixconst

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrInvalidAccessMode is returned when open flags carry O_WRONLY and O_RDWR at once.
	ErrInvalidAccessMode = errors.New("invalid access mode")
	// ErrUnsupportedFlag is returned when open flags carry bits outside the known open flags.
	ErrUnsupportedFlag = errors.New("unsupported open flag")
)

// AccessMode extracts the access mode bits from oflag.
func (c Constants) AccessMode(oflag int) int {
	return oflag & (c.O_RDONLY | c.O_WRONLY | c.O_RDWR)
}

func (c Constants) ReadOnly(oflag int) bool {
	return c.AccessMode(oflag) == c.O_RDONLY
}

func (c Constants) Readable(oflag int) bool {
	acc := c.AccessMode(oflag)
	return acc == c.O_RDONLY || acc == c.O_RDWR
}

func (c Constants) Writable(oflag int) bool {
	acc := c.AccessMode(oflag)
	return acc == c.O_WRONLY || acc == c.O_RDWR
}

// WriteOp reports whether oflag may modify the file system.
func (c Constants) WriteOp(oflag int) bool {
	return c.Writable(oflag) || oflag&(c.O_APPEND|c.O_CREAT|c.O_TRUNC) != 0
}

// ToOsFlag translates host open flags into flags for [os.OpenFile].
//
// O_DSYNC is translated to [os.O_SYNC], the stronger guarantee.
// O_NOFOLLOW has no os counterpart; it is accepted and dropped, callers must enforce it on their own.
// An invalid access mode wraps [ErrInvalidAccessMode], unknown bits wrap [ErrUnsupportedFlag].
func (c Constants) ToOsFlag(oflag int) (int, error) {
	var flag int
	switch acc := c.AccessMode(oflag); acc {
	case c.O_RDONLY:
		flag = os.O_RDONLY
	case c.O_WRONLY:
		flag = os.O_WRONLY
	case c.O_RDWR:
		flag = os.O_RDWR
	default:
		return 0, fmt.Errorf("%w: %#x", ErrInvalidAccessMode, acc)
	}

	rest := oflag &^ (c.O_WRONLY | c.O_RDWR)
	// O_SYNC may be a superset of O_DSYNC; it must be matched first.
	for _, p := range [...]struct{ host, os int }{
		{c.O_APPEND, os.O_APPEND},
		{c.O_CREAT, os.O_CREATE},
		{c.O_EXCL, os.O_EXCL},
		{c.O_TRUNC, os.O_TRUNC},
		{c.O_SYNC, os.O_SYNC},
		{c.O_DSYNC, os.O_SYNC},
		{c.O_NOFOLLOW, 0},
	} {
		if p.host != 0 && rest&p.host == p.host {
			flag |= p.os
			rest &^= p.host
		}
	}
	if rest != 0 {
		return 0, fmt.Errorf("%w: %#x", ErrUnsupportedFlag, rest)
	}
	return flag, nil
}
