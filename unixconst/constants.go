// Package unixconst exposes host operating system constants used by POSIX style filesystem code.
//
// Values are read from a [Source] once, into an immutable [Constants] record.
// The record is passed by value to whoever needs it; there is no package level mutable state.
package unixconst

//go:generate go run ../cmd/genhostconst -out .

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ngicks/go-common/serr"
)

var (
	// ErrMissingConstant is wrapped by the error [Load] returns for each constant the source lacks.
	ErrMissingConstant = errors.New("constant not defined by host")
)

// Constants is the set of host ABI constants.
//
// Field names are exactly the ABI symbol names.
// All fields but S_IAMB, AT_SYMLINK_NOFOLLOW and AT_REMOVEDIR hold the host value bit-for-bit.
type Constants struct {
	O_RDONLY   int
	O_WRONLY   int
	O_RDWR     int
	O_APPEND   int
	O_CREAT    int
	O_EXCL     int
	O_TRUNC    int
	O_SYNC     int
	O_DSYNC    int
	O_NOFOLLOW int

	// S_IAMB is the access mode bits: OR of all nine permission bits below.
	S_IAMB int

	S_IRUSR int
	S_IWUSR int
	S_IXUSR int
	S_IRGRP int
	S_IWGRP int
	S_IXGRP int
	S_IROTH int
	S_IWOTH int
	S_IXOTH int

	S_IFMT  int
	S_IFREG int
	S_IFDIR int
	S_IFLNK int
	S_IFCHR int
	S_IFBLK int
	S_IFIFO int

	R_OK int
	W_OK int
	X_OK int
	F_OK int

	ENOENT    int
	EACCES    int
	EEXIST    int
	ENOTDIR   int
	EINVAL    int
	EXDEV     int
	EISDIR    int
	ENOTEMPTY int
	ENOSPC    int
	EAGAIN    int
	ENOSYS    int
	ELOOP     int
	EROFS     int
	ENODATA   int
	ERANGE    int
	EMFILE    int

	// Not sourced from the host; fixed values.
	AT_SYMLINK_NOFOLLOW int
	AT_REMOVEDIR        int
}

const (
	atSymlinkNoFollow = 0x100
	atRemoveDir       = 0x200
)

type Family int

const (
	FamilyUnknown Family = iota
	FamilyOpenFlag
	FamilyPermission
	FamilyFileType
	FamilyAccess
	FamilyErrno
)

func (f Family) String() string {
	switch f {
	case FamilyOpenFlag:
		return "open flag"
	case FamilyPermission:
		return "permission bit"
	case FamilyFileType:
		return "file type bit"
	case FamilyAccess:
		return "access flag"
	case FamilyErrno:
		return "errno"
	default:
		return "unknown"
	}
}

type entry struct {
	name   string
	family Family
}

// host sourced constants, in table order.
var entries = []entry{
	{"O_RDONLY", FamilyOpenFlag},
	{"O_WRONLY", FamilyOpenFlag},
	{"O_RDWR", FamilyOpenFlag},
	{"O_APPEND", FamilyOpenFlag},
	{"O_CREAT", FamilyOpenFlag},
	{"O_EXCL", FamilyOpenFlag},
	{"O_TRUNC", FamilyOpenFlag},
	{"O_SYNC", FamilyOpenFlag},
	{"O_DSYNC", FamilyOpenFlag},
	{"O_NOFOLLOW", FamilyOpenFlag},

	{"S_IRUSR", FamilyPermission},
	{"S_IWUSR", FamilyPermission},
	{"S_IXUSR", FamilyPermission},
	{"S_IRGRP", FamilyPermission},
	{"S_IWGRP", FamilyPermission},
	{"S_IXGRP", FamilyPermission},
	{"S_IROTH", FamilyPermission},
	{"S_IWOTH", FamilyPermission},
	{"S_IXOTH", FamilyPermission},

	{"S_IFMT", FamilyFileType},
	{"S_IFREG", FamilyFileType},
	{"S_IFDIR", FamilyFileType},
	{"S_IFLNK", FamilyFileType},
	{"S_IFCHR", FamilyFileType},
	{"S_IFBLK", FamilyFileType},
	{"S_IFIFO", FamilyFileType},

	{"R_OK", FamilyAccess},
	{"W_OK", FamilyAccess},
	{"X_OK", FamilyAccess},
	{"F_OK", FamilyAccess},

	{"ENOENT", FamilyErrno},
	{"EACCES", FamilyErrno},
	{"EEXIST", FamilyErrno},
	{"ENOTDIR", FamilyErrno},
	{"EINVAL", FamilyErrno},
	{"EXDEV", FamilyErrno},
	{"EISDIR", FamilyErrno},
	{"ENOTEMPTY", FamilyErrno},
	{"ENOSPC", FamilyErrno},
	{"EAGAIN", FamilyErrno},
	{"ENOSYS", FamilyErrno},
	{"ELOOP", FamilyErrno},
	{"EROFS", FamilyErrno},
	{"ENODATA", FamilyErrno},
	{"ERANGE", FamilyErrno},
	{"EMFILE", FamilyErrno},
}

// Names returns names of constants a [Source] must define, in table order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// FamilyOf returns the family name belongs to.
// It returns [FamilyUnknown] for S_IAMB, the AT_* flags and any unknown name.
func FamilyOf(name string) Family {
	for _, e := range entries {
		if e.name == name {
			return e.family
		}
	}
	return FamilyUnknown
}

// Source maps ABI constant names to host values.
type Source map[string]int

// Load builds Constants from src.
//
// Every name listed by [Names] must be present in src.
// Load never defaults a missing value to zero: it returns an error naming every missing constant instead.
func Load(src Source) (Constants, error) {
	var (
		c       Constants
		missing []serr.PrefixErr
	)
	rv := reflect.ValueOf(&c).Elem()
	for _, e := range entries {
		v, ok := src[e.name]
		if !ok {
			missing = append(missing, serr.PrefixErr{
				P: e.name + ": ",
				E: ErrMissingConstant,
			})
			continue
		}
		rv.FieldByName(e.name).SetInt(int64(v))
	}
	if len(missing) > 0 {
		return Constants{}, fmt.Errorf("unixconst: %w", serr.GatherPrefixed(missing))
	}

	c.S_IAMB = accessModeBits(c)
	c.AT_SYMLINK_NOFOLLOW = atSymlinkNoFollow
	c.AT_REMOVEDIR = atRemoveDir

	return c, nil
}

func accessModeBits(c Constants) int {
	return c.S_IRUSR | c.S_IWUSR | c.S_IXUSR |
		c.S_IRGRP | c.S_IWGRP | c.S_IXGRP |
		c.S_IROTH | c.S_IWOTH | c.S_IXOTH
}

// Lookup returns the value of the constant named name.
// Derived and fixed constants are included.
func (c Constants) Lookup(name string) (int, bool) {
	f := reflect.ValueOf(c).FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.Int {
		return 0, false
	}
	return int(f.Int()), true
}
