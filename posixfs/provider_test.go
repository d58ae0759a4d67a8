package posixfs_test

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/ngicks/go-fsys-helper/unixabi/errdef"
	"github.com/ngicks/go-fsys-helper/unixabi/posixfs"
	"github.com/ngicks/go-fsys-helper/unixabi/unixconst"
	"github.com/ngicks/go-fsys-helper/unixabi/unixconst/unixconsttest"
	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
)

func linuxConsts(t *testing.T) unixconst.Constants {
	t.Helper()
	c, err := unixconst.Load(unixconsttest.LinuxAMD64())
	assert.NilError(t, err)
	return c
}

// newMem returns a provider over a MemMapFs holding
//
//	/dir/
//	/dir/file
//	/empty/
//	/file
func newMem(t *testing.T, opts ...posixfs.Option) (*posixfs.Provider, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	assert.NilError(t, mem.Mkdir("/dir", 0o755))
	assert.NilError(t, mem.Mkdir("/empty", 0o755))
	assert.NilError(t, afero.WriteFile(mem, "/dir/file", []byte("foo"), 0o644))
	assert.NilError(t, afero.WriteFile(mem, "/file", []byte("bar"), 0o644))
	return posixfs.New(mem, linuxConsts(t), opts...), mem
}

func assertErrno(t *testing.T, err error, errno int) {
	t.Helper()
	assert.Assert(t, err != nil, "expected errno %d", errno)
	actual, ok := posixfs.ErrnoOf(err)
	assert.Assert(t, ok, "no errno: %v", err)
	assert.Equal(t, errno, actual, "%v", err)
}

func assertPathErr(t *testing.T, err error, op, path string) {
	t.Helper()
	var pathErr *fs.PathError
	assert.Assert(t, errors.As(err, &pathErr), "%T", err)
	assert.Equal(t, op, pathErr.Op)
	assert.Equal(t, path, pathErr.Path)
}

func TestNew(t *testing.T) {
	c := linuxConsts(t)

	rec := catch(func() { posixfs.New(nil, c) })
	err, ok := rec.(error)
	assert.Assert(t, ok)
	assert.Assert(t, errors.Is(err, errdef.KindArgument))

	rec = catch(func() { posixfs.New(afero.NewMemMapFs(), unixconst.Constants{}) })
	err, ok = rec.(error)
	assert.Assert(t, ok)
	assert.Assert(t, errors.Is(err, errdef.KindArgument))
	assert.Equal(t, "posixfs.New: constants not loaded", err.Error())

	p := posixfs.New(afero.NewMemMapFs(), c)
	assert.Equal(t, c, p.Constants())
}

func catch(f func()) (rec any) {
	defer func() {
		rec = recover()
	}()
	f()
	return nil
}

func TestOpen(t *testing.T) {
	p, mem := newMem(t, posixfs.WithUmask(0o022))
	c := p.Constants()

	t.Run("read", func(t *testing.T) {
		f, err := p.Open("/dir/file", c.O_RDONLY, 0)
		assert.NilError(t, err)
		defer f.Close()
		bin, err := afero.ReadAll(f)
		assert.NilError(t, err)
		assert.Equal(t, "foo", string(bin))
	})

	t.Run("create applies umask", func(t *testing.T) {
		f, err := p.Open("/new", c.O_WRONLY|c.O_CREAT|c.O_EXCL, 0o666)
		assert.NilError(t, err)
		_, err = f.Write([]byte("baz"))
		assert.NilError(t, err)
		assert.NilError(t, f.Close())

		st, err := p.Stat("/new", 0)
		assert.NilError(t, err)
		assert.Equal(t, c.S_IFREG|0o644, st.Mode)
		assert.Equal(t, int64(3), st.Size)
	})

	t.Run("exclusive", func(t *testing.T) {
		_, err := p.Open("/file", c.O_WRONLY|c.O_CREAT|c.O_EXCL, 0o644)
		assertErrno(t, err, c.EEXIST)
		assertPathErr(t, err, "open", "/file")
	})

	t.Run("truncate", func(t *testing.T) {
		assert.NilError(t, afero.WriteFile(mem, "/trunc", []byte("content"), 0o644))
		f, err := p.Open("/trunc", c.O_RDWR|c.O_TRUNC, 0)
		assert.NilError(t, err)
		assert.NilError(t, f.Close())
		bin, err := afero.ReadFile(mem, "/trunc")
		assert.NilError(t, err)
		assert.Equal(t, 0, len(bin))
	})

	t.Run("not exist", func(t *testing.T) {
		_, err := p.Open("/nope", c.O_RDONLY, 0)
		assertErrno(t, err, c.ENOENT)
		assert.Assert(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := p.Open("/nope/file", c.O_WRONLY|c.O_CREAT, 0o644)
		assertErrno(t, err, c.ENOENT)
		_, err = mem.Stat("/nope")
		assert.Assert(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("parent is not a directory", func(t *testing.T) {
		_, err := p.Open("/file/file", c.O_WRONLY|c.O_CREAT, 0o644)
		assertErrno(t, err, c.ENOTDIR)
	})

	t.Run("directory for writing", func(t *testing.T) {
		_, err := p.Open("/dir", c.O_RDWR, 0)
		assertErrno(t, err, c.EISDIR)

		_, err = p.Open("/dir", c.O_RDONLY|c.O_CREAT, 0o644)
		assertErrno(t, err, c.EISDIR)
		assertPathErr(t, err, "open", "/dir")

		f, err := p.Open("/dir", c.O_RDONLY, 0)
		assert.NilError(t, err)
		assert.NilError(t, f.Close())
	})

	t.Run("invalid access mode", func(t *testing.T) {
		_, err := p.Open("/file", c.O_WRONLY|c.O_RDWR, 0)
		assertErrno(t, err, c.EINVAL)
		assert.Assert(t, errors.Is(err, unixconst.ErrInvalidAccessMode))
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := p.Open("/file", c.O_RDONLY|0x4000000, 0)
		assert.Assert(t, errors.Is(err, errdef.KindArgument), "%v", err)
		assert.Equal(t, errdef.KindArgument, errdef.KindOf(err))
		assert.ErrorContains(t, err, "unsupported open flags: 0x4000000")
		_, ok := posixfs.ErrnoOf(err)
		assert.Assert(t, !ok)
	})

	t.Run("no follow on regular file", func(t *testing.T) {
		f, err := p.Open("/file", c.O_RDONLY|c.O_NOFOLLOW, 0)
		assert.NilError(t, err)
		assert.NilError(t, f.Close())
	})
}

func TestAccess(t *testing.T) {
	p, mem := newMem(t)
	c := p.Constants()

	assert.NilError(t, p.Access("/file", c.F_OK))
	assert.NilError(t, p.Access("/file", c.R_OK|c.W_OK))
	assert.NilError(t, p.Access("/dir", c.R_OK|c.X_OK))

	assertErrno(t, p.Access("/nope", c.F_OK), c.ENOENT)
	assertErrno(t, p.Access("/file", c.X_OK), c.EACCES)
	assertErrno(t, p.Access("/file", 0x8), c.EINVAL)

	assert.NilError(t, mem.Chmod("/file", 0o044))
	err := p.Access("/file", c.R_OK)
	assertErrno(t, err, c.EACCES)
	assert.Assert(t, errors.Is(err, fs.ErrPermission))
	assertPathErr(t, err, "access", "/file")
	assert.NilError(t, p.Access("/file", c.F_OK))
}

func TestStat(t *testing.T) {
	p, _ := newMem(t)
	c := p.Constants()

	st, err := p.Stat("/dir", 0)
	assert.NilError(t, err)
	assert.Equal(t, c.S_IFDIR|0o755, st.Mode)
	assert.Equal(t, unixconst.FileTypeDirectory, c.FileType(st.Mode))

	st, err = p.Stat("/dir/file", c.AT_SYMLINK_NOFOLLOW)
	assert.NilError(t, err)
	assert.Equal(t, c.S_IFREG|0o644, st.Mode)
	assert.Equal(t, int64(3), st.Size)
	assert.Equal(t, 0o644, c.Perm(st.Mode))

	_, err = p.Stat("/nope", 0)
	assertErrno(t, err, c.ENOENT)
	assertPathErr(t, err, "stat", "/nope")

	_, err = p.Stat("/file", c.AT_REMOVEDIR)
	assertErrno(t, err, c.EINVAL)
}

func TestMkdir(t *testing.T) {
	p, _ := newMem(t, posixfs.WithUmask(0o027))
	c := p.Constants()

	assert.NilError(t, p.Mkdir("/dir/sub", 0o777))
	st, err := p.Stat("/dir/sub", 0)
	assert.NilError(t, err)
	assert.Equal(t, c.S_IFDIR|0o750, st.Mode)

	assertErrno(t, p.Mkdir("/dir", 0o755), c.EEXIST)
	assertErrno(t, p.Mkdir("/file", 0o755), c.EEXIST)
	assertErrno(t, p.Mkdir("/nope/sub", 0o755), c.ENOENT)
	assertErrno(t, p.Mkdir("/file/sub", 0o755), c.ENOTDIR)
}

func TestUnlinkat(t *testing.T) {
	p, mem := newMem(t)
	c := p.Constants()

	assertErrno(t, p.Unlinkat("/file", c.AT_REMOVEDIR), c.ENOTDIR)
	assertErrno(t, p.Unlinkat("/empty", 0), c.EISDIR)
	assertErrno(t, p.Unlinkat("/dir", c.AT_REMOVEDIR), c.ENOTEMPTY)
	assertErrno(t, p.Unlinkat("/nope", 0), c.ENOENT)
	assertErrno(t, p.Unlinkat("/file", c.AT_SYMLINK_NOFOLLOW), c.EINVAL)

	// nothing is removed by failed calls.
	for _, name := range []string{"/file", "/empty", "/dir", "/dir/file"} {
		_, err := mem.Stat(name)
		assert.NilError(t, err, name)
	}

	assert.NilError(t, p.Unlinkat("/file", 0))
	assert.NilError(t, p.Unlinkat("/empty", c.AT_REMOVEDIR))
	assert.NilError(t, p.Unlinkat("/dir/file", 0))
	assert.NilError(t, p.Unlinkat("/dir", c.AT_REMOVEDIR))

	for _, name := range []string{"/file", "/empty", "/dir"} {
		_, err := mem.Stat(name)
		assert.Assert(t, errors.Is(err, fs.ErrNotExist), name)
	}
}

func TestChmod(t *testing.T) {
	p, _ := newMem(t)
	c := p.Constants()

	assert.NilError(t, p.Chmod("/file", c.S_IRUSR|c.S_IWUSR|c.S_IRGRP))
	st, err := p.Stat("/file", 0)
	assert.NilError(t, err)
	assert.Equal(t, c.S_IFREG|0o640, st.Mode)

	assert.NilError(t, p.Chmod("/dir", c.S_IAMB))
	st, err = p.Stat("/dir", 0)
	assert.NilError(t, err)
	assert.Equal(t, c.S_IFDIR|0o777, st.Mode)

	assertErrno(t, p.Chmod("/file", c.S_IFREG|0o644), c.EINVAL)
	assertErrno(t, p.Chmod("/file", 0o4755), c.EINVAL)
	assertErrno(t, p.Chmod("/nope", 0o644), c.ENOENT)
}

func TestRename(t *testing.T) {
	t.Run("errors", func(t *testing.T) {
		p, _ := newMem(t)
		c := p.Constants()

		err := p.Rename("/dir", "/file")
		assertErrno(t, err, c.ENOTDIR)
		var linkErr *os.LinkError
		assert.Assert(t, errors.As(err, &linkErr))
		assert.Equal(t, "rename", linkErr.Op)
		assert.Equal(t, "/dir", linkErr.Old)
		assert.Equal(t, "/file", linkErr.New)

		assertErrno(t, p.Rename("/file", "/empty"), c.EISDIR)
		assertErrno(t, p.Rename("/empty", "/dir"), c.ENOTEMPTY)
		assertErrno(t, p.Rename("/nope", "/other"), c.ENOENT)
		assertErrno(t, p.Rename("/file", "/nope/file"), c.ENOENT)
	})

	t.Run("directory under itself", func(t *testing.T) {
		p, mem := newMem(t)
		c := p.Constants()

		assertErrno(t, p.Rename("/dir", "/dir/sub"), c.EINVAL)
		assertErrno(t, p.Rename("/dir", "/dir/sub/deeper"), c.EINVAL)
		assertErrno(t, p.Rename("/", "/dir/sub"), c.EINVAL)

		// the tree is left untouched.
		bin, err := afero.ReadFile(mem, "/dir/file")
		assert.NilError(t, err)
		assert.Equal(t, "foo", string(bin))
		_, err = mem.Stat("/dir/sub")
		assert.Assert(t, errors.Is(err, fs.ErrNotExist))

		// a sibling sharing the name prefix is not under it.
		assert.NilError(t, p.Rename("/dir", "/dirx"))
		bin, err = afero.ReadFile(mem, "/dirx/file")
		assert.NilError(t, err)
		assert.Equal(t, "foo", string(bin))
	})

	t.Run("file", func(t *testing.T) {
		p, mem := newMem(t)

		assert.NilError(t, p.Rename("/file", "/renamed"))
		bin, err := afero.ReadFile(mem, "/renamed")
		assert.NilError(t, err)
		assert.Equal(t, "bar", string(bin))
		_, err = mem.Stat("/file")
		assert.Assert(t, errors.Is(err, fs.ErrNotExist))

		// replacing an existing file
		assert.NilError(t, p.Rename("/renamed", "/dir/file"))
		bin, err = afero.ReadFile(mem, "/dir/file")
		assert.NilError(t, err)
		assert.Equal(t, "bar", string(bin))
	})

	t.Run("directory onto empty directory", func(t *testing.T) {
		p, mem := newMem(t)

		assert.NilError(t, p.Rename("/dir", "/empty"))
		bin, err := afero.ReadFile(mem, "/empty/file")
		assert.NilError(t, err)
		assert.Equal(t, "foo", string(bin))
	})
}

func TestSymlink_unsupported(t *testing.T) {
	p, _ := newMem(t)
	c := p.Constants()

	err := p.Symlink("/file", "/link")
	assertErrno(t, err, c.ENOSYS)
	assert.ErrorContains(t, err, "(ENOSYS)")

	_, err = p.Readlink("/file")
	assertErrno(t, err, c.ENOSYS)
}

func TestReadOnly(t *testing.T) {
	_, mem := newMem(t)
	c := linuxConsts(t)
	p := posixfs.New(afero.NewReadOnlyFs(mem), c)

	f, err := p.Open("/file", c.O_RDONLY, 0)
	assert.NilError(t, err)
	assert.NilError(t, f.Close())
	assert.NilError(t, p.Access("/file", c.R_OK))

	for _, oflag := range []int{c.O_WRONLY, c.O_RDWR, c.O_RDONLY | c.O_CREAT, c.O_RDONLY | c.O_TRUNC, c.O_RDONLY | c.O_APPEND} {
		_, err := p.Open("/file", oflag, 0o644)
		assertErrno(t, err, c.EROFS)
	}
	assertErrno(t, p.Access("/file", c.W_OK), c.EROFS)
	assertErrno(t, p.Mkdir("/new", 0o755), c.EROFS)
	assertErrno(t, p.Unlinkat("/file", 0), c.EROFS)
	assertErrno(t, p.Chmod("/file", 0o600), c.EROFS)
	assertErrno(t, p.Rename("/file", "/other"), c.EROFS)
	assertErrno(t, p.Symlink("/file", "/link"), c.EROFS)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, _ := newMem(t, posixfs.WithLogger(nil), posixfs.WithLogger(logger))
	c := p.Constants()

	assertErrno(t, p.Unlinkat("/dir", c.AT_REMOVEDIR), c.ENOTEMPTY)

	out := buf.String()
	for _, s := range []string{"op=unlinkat", "path=/dir", "errno=ENOTEMPTY"} {
		assert.Assert(t, strings.Contains(out, s), "%q not in %q", s, out)
	}
}

func TestSysError(t *testing.T) {
	err := &posixfs.SysError{Errno: 2, Name: "ENOENT", Err: fs.ErrNotExist}
	assert.Equal(t, "file does not exist (ENOENT)", err.Error())
	assert.Assert(t, errors.Is(err, fs.ErrNotExist))

	err = &posixfs.SysError{Errno: 99}
	assert.Equal(t, "errno 99", err.Error())

	_, ok := posixfs.ErrnoOf(errors.New("plain"))
	assert.Assert(t, !ok)
}
