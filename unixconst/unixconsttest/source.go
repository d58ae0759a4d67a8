// Package unixconsttest provides fixed constant sources for tests.
package unixconsttest

import "github.com/ngicks/go-fsys-helper/unixabi/unixconst"

// LinuxAMD64 returns the constant table of linux/amd64.
// Values are written down literally so that tests do not depend on the running host.
func LinuxAMD64() unixconst.Source {
	return unixconst.Source{
		"O_RDONLY":   0x0,
		"O_WRONLY":   0x1,
		"O_RDWR":     0x2,
		"O_APPEND":   0x400,
		"O_CREAT":    0x40,
		"O_EXCL":     0x80,
		"O_TRUNC":    0x200,
		"O_SYNC":     0x101000,
		"O_DSYNC":    0x1000,
		"O_NOFOLLOW": 0x20000,

		"S_IRUSR": 0x100,
		"S_IWUSR": 0x80,
		"S_IXUSR": 0x40,
		"S_IRGRP": 0x20,
		"S_IWGRP": 0x10,
		"S_IXGRP": 0x8,
		"S_IROTH": 0x4,
		"S_IWOTH": 0x2,
		"S_IXOTH": 0x1,

		"S_IFMT":  0xf000,
		"S_IFREG": 0x8000,
		"S_IFDIR": 0x4000,
		"S_IFLNK": 0xa000,
		"S_IFCHR": 0x2000,
		"S_IFBLK": 0x6000,
		"S_IFIFO": 0x1000,

		"R_OK": 0x4,
		"W_OK": 0x2,
		"X_OK": 0x1,
		"F_OK": 0x0,

		"ENOENT":    2,
		"EACCES":    13,
		"EEXIST":    17,
		"ENOTDIR":   20,
		"EINVAL":    22,
		"EXDEV":     18,
		"EISDIR":    21,
		"ENOTEMPTY": 39,
		"ENOSPC":    28,
		"EAGAIN":    11,
		"ENOSYS":    38,
		"ELOOP":     40,
		"EROFS":     30,
		"ENODATA":   61,
		"ERANGE":    34,
		"EMFILE":    24,
	}
}

// Darwin returns the constant table of darwin, where O_SYNC and O_DSYNC are disjoint bits.
func Darwin() unixconst.Source {
	src := LinuxAMD64()
	for k, v := range map[string]int{
		"O_APPEND":   0x8,
		"O_CREAT":    0x200,
		"O_EXCL":     0x800,
		"O_TRUNC":    0x400,
		"O_SYNC":     0x80,
		"O_DSYNC":    0x400000,
		"O_NOFOLLOW": 0x100,

		"ENOTEMPTY": 66,
		"EAGAIN":    35,
		"ENOSYS":    78,
		"ELOOP":     62,
		"ENODATA":   96,
	} {
		src[k] = v
	}
	return src
}

// Without returns a copy of src without names.
func Without(src unixconst.Source, names ...string) unixconst.Source {
	out := make(unixconst.Source, len(src))
	for k, v := range src {
		out[k] = v
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}
