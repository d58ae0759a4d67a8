// Package posixfs implements POSIX style filesystem operations on top of [afero.Fs].
//
// Callers speak host ABI values: open flags, mode words, access flags, AT_* flags,
// all taken from the [unixconst.Constants] given to [New].
// Failures are reported as [*fs.PathError] or [*os.LinkError] wrapping a [*SysError] which carries
// the errno value from the same constants.
package posixfs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ngicks/go-fsys-helper/unixabi/errdef"
	"github.com/ngicks/go-fsys-helper/unixabi/unixconst"
	"github.com/spf13/afero"
)

// Provider translates POSIX style calls into calls to an afero.Fs.
//
// Provider holds no mutable state; it is safe for concurrent use as long as the backend is.
type Provider struct {
	fsys   afero.Fs
	consts unixconst.Constants
	umask  int
	logger *slog.Logger
}

// New returns a Provider backed by fsys.
//
// New panics with an illegal argument error if fsys is nil
// or consts is a zero value instead of one returned by [unixconst.Load].
func New(fsys afero.Fs, consts unixconst.Constants, opts ...Option) *Provider {
	if fsys == nil {
		panic(errdef.NewIllegalArgumentError("posixfs.New: nil fsys"))
	}
	if consts.S_IAMB == 0 {
		panic(errdef.NewIllegalArgumentError("posixfs.New: constants not loaded"))
	}
	p := &Provider{
		fsys:   fsys,
		consts: consts,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt.apply(p)
	}
	return p
}

// Constants returns the constants p was built with.
func (p *Provider) Constants() unixconst.Constants {
	return p.consts
}

// Stat is the result of [Provider.Stat].
type Stat struct {
	Mode    int // host encoded file type and permission bits.
	Size    int64
	ModTime time.Time
}

func (p *Provider) readOnly() bool {
	_, ok := p.fsys.(*afero.ReadOnlyFs)
	return ok
}

// perm converts a host mode word into permission bits for the backend, applying the umask.
func (p *Provider) perm(mode int) fs.FileMode {
	return p.consts.ToFileMode(p.consts.Perm(mode) &^ p.umask).Perm()
}

func (p *Provider) lstat(name string) (fs.FileInfo, error) {
	if l, ok := p.fsys.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(name)
		return fi, err
	}
	return p.fsys.Stat(name)
}

// checkParent makes sure the parent directory of name exists.
func (p *Provider) checkParent(op, name string) error {
	dir := filepath.Dir(name)
	if dir == name {
		return nil
	}
	fi, err := p.fsys.Stat(dir)
	if err != nil {
		return p.translate(op, name, err)
	}
	if !fi.IsDir() {
		return p.fail(op, name, p.consts.ENOTDIR, errNotDir)
	}
	return nil
}

func (p *Provider) isEmptyDir(name string) (bool, error) {
	dirents, err := afero.ReadDir(p.fsys, name)
	if err != nil {
		return false, err
	}
	return len(dirents) == 0, nil
}

// Open opens name with host open flags oflag.
// mode is the host permission bits used when the file is created.
//
// oflag with an invalid access mode fails with EINVAL.
// Opening a directory for writing or with O_CREAT fails with EISDIR.
// oflag carrying unknown bits is a programming error and fails with an [errdef.KindArgument] error.
func (p *Provider) Open(name string, oflag int, mode int) (afero.File, error) {
	const op = "open"

	flag, err := p.consts.ToOsFlag(oflag)
	if err != nil {
		if errors.Is(err, unixconst.ErrInvalidAccessMode) {
			return nil, p.fail(op, name, p.consts.EINVAL, err)
		}
		return nil, fmt.Errorf(
			"%s %s: %w",
			op, name, errdef.NewIllegalArgumentErrorObj("unsupported open flags", fmt.Sprintf("%#x", oflag)),
		)
	}

	if p.consts.WriteOp(oflag) && p.readOnly() {
		return nil, p.fail(op, name, p.consts.EROFS, errReadOnly)
	}

	if oflag&p.consts.O_NOFOLLOW != 0 {
		fi, err := p.lstat(name)
		if err == nil && fi.Mode()&fs.ModeSymlink != 0 {
			return nil, p.fail(op, name, p.consts.ELOOP, errLoop)
		}
	}

	fi, err := p.fsys.Stat(name)
	switch {
	case err == nil && fi.IsDir() && (p.consts.Writable(oflag) || oflag&p.consts.O_CREAT != 0):
		return nil, p.fail(op, name, p.consts.EISDIR, errIsDir)
	case err != nil && errors.Is(err, fs.ErrNotExist) && oflag&p.consts.O_CREAT != 0:
		if err := p.checkParent(op, name); err != nil {
			return nil, err
		}
	}

	f, err := p.fsys.OpenFile(name, flag, p.perm(mode))
	if err != nil {
		return nil, p.translate(op, name, err)
	}
	return f, nil
}

// Access checks whether name is accessible in amode,
// which is either F_OK or a combination of R_OK, W_OK and X_OK.
//
// Permission is checked against owner bits only.
func (p *Provider) Access(name string, amode int) error {
	const op = "access"

	c := p.consts
	if amode != c.F_OK && amode&^(c.R_OK|c.W_OK|c.X_OK) != 0 {
		return p.fail(op, name, c.EINVAL, fmt.Errorf("%w: amode %#x", fs.ErrInvalid, amode))
	}

	fi, err := p.fsys.Stat(name)
	if err != nil {
		return p.translate(op, name, err)
	}
	if amode == c.F_OK {
		return nil
	}

	if amode&c.W_OK != 0 && p.readOnly() {
		return p.fail(op, name, c.EROFS, errReadOnly)
	}

	mode := c.FromFileMode(fi.Mode())
	for _, chk := range [...]struct{ amode, bit int }{
		{c.R_OK, c.S_IRUSR},
		{c.W_OK, c.S_IWUSR},
		{c.X_OK, c.S_IXUSR},
	} {
		if amode&chk.amode != 0 && mode&chk.bit == 0 {
			return p.fail(op, name, c.EACCES, fs.ErrPermission)
		}
	}
	return nil
}

// Stat returns the status of name.
// flags is either 0 or AT_SYMLINK_NOFOLLOW, in which case a symlink itself is described.
func (p *Provider) Stat(name string, flags int) (Stat, error) {
	const op = "stat"

	if flags&^p.consts.AT_SYMLINK_NOFOLLOW != 0 {
		return Stat{}, p.fail(op, name, p.consts.EINVAL, fmt.Errorf("%w: flags %#x", fs.ErrInvalid, flags))
	}

	var (
		fi  fs.FileInfo
		err error
	)
	if flags&p.consts.AT_SYMLINK_NOFOLLOW != 0 {
		fi, err = p.lstat(name)
	} else {
		fi, err = p.fsys.Stat(name)
	}
	if err != nil {
		return Stat{}, p.translate(op, name, err)
	}
	return Stat{
		Mode:    p.consts.FromFileMode(fi.Mode()),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}, nil
}

// Mkdir creates directory name with host permission bits mode.
func (p *Provider) Mkdir(name string, mode int) error {
	const op = "mkdir"

	if p.readOnly() {
		return p.fail(op, name, p.consts.EROFS, errReadOnly)
	}
	if err := p.checkParent(op, name); err != nil {
		return err
	}
	if _, err := p.lstat(name); err == nil {
		return p.fail(op, name, p.consts.EEXIST, fs.ErrExist)
	}
	return p.translate(op, name, p.fsys.Mkdir(name, p.perm(mode)))
}

// Unlinkat removes name.
// flags is either 0, removing a non directory, or AT_REMOVEDIR, removing an empty directory.
func (p *Provider) Unlinkat(name string, flags int) error {
	const op = "unlinkat"

	c := p.consts
	if flags&^c.AT_REMOVEDIR != 0 {
		return p.fail(op, name, c.EINVAL, fmt.Errorf("%w: flags %#x", fs.ErrInvalid, flags))
	}
	if p.readOnly() {
		return p.fail(op, name, c.EROFS, errReadOnly)
	}

	fi, err := p.lstat(name)
	if err != nil {
		return p.translate(op, name, err)
	}

	removeDir := flags&c.AT_REMOVEDIR != 0
	switch {
	case removeDir && !fi.IsDir():
		return p.fail(op, name, c.ENOTDIR, errNotDir)
	case !removeDir && fi.IsDir():
		return p.fail(op, name, c.EISDIR, errIsDir)
	case removeDir:
		empty, err := p.isEmptyDir(name)
		if err != nil {
			return p.translate(op, name, err)
		}
		if !empty {
			return p.fail(op, name, c.ENOTEMPTY, errNotEmpty)
		}
	}
	return p.translate(op, name, p.fsys.Remove(name))
}

// Chmod changes permission bits of name.
// mode must not have bits outside S_IAMB.
func (p *Provider) Chmod(name string, mode int) error {
	const op = "chmod"

	if mode&^p.consts.S_IAMB != 0 {
		return p.fail(op, name, p.consts.EINVAL, fmt.Errorf("%w: mode %#o", fs.ErrInvalid, mode))
	}
	if p.readOnly() {
		return p.fail(op, name, p.consts.EROFS, errReadOnly)
	}
	return p.translate(op, name, p.fsys.Chmod(name, p.consts.ToFileMode(mode).Perm()))
}

// Rename renames oldname to newname, replacing newname if it is allowed to.
// Moving a directory under itself fails with EINVAL.
func (p *Provider) Rename(oldname, newname string) error {
	const op = "rename"

	c := p.consts
	if p.readOnly() {
		return p.failLink(op, oldname, newname, c.EROFS, errReadOnly)
	}

	oldFi, err := p.lstat(oldname)
	if err != nil {
		return p.translateLink(op, oldname, newname, err)
	}
	if oldFi.IsDir() && isSubpath(oldname, newname) {
		return p.failLink(op, oldname, newname, c.EINVAL, errSubdir)
	}

	newFi, err := p.lstat(newname)
	switch {
	case err == nil:
		switch {
		case oldFi.IsDir() && !newFi.IsDir():
			return p.failLink(op, oldname, newname, c.ENOTDIR, errNotDir)
		case !oldFi.IsDir() && newFi.IsDir():
			return p.failLink(op, oldname, newname, c.EISDIR, errIsDir)
		case newFi.IsDir():
			empty, err := p.isEmptyDir(newname)
			if err != nil {
				return p.translateLink(op, oldname, newname, err)
			}
			if !empty {
				return p.failLink(op, oldname, newname, c.ENOTEMPTY, errNotEmpty)
			}
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := p.checkParent(op, newname); err != nil {
			return err
		}
	default:
		return p.translateLink(op, oldname, newname, err)
	}

	return p.translateLink(op, oldname, newname, p.fsys.Rename(oldname, newname))
}

// isSubpath reports whether name is strictly under dir.
func isSubpath(dir, name string) bool {
	dir, name = filepath.Clean(dir), filepath.Clean(name)
	if dir == string(filepath.Separator) {
		return name != dir && filepath.IsAbs(name)
	}
	return strings.HasPrefix(name, dir+string(filepath.Separator))
}

// Symlink creates newname as a symbolic link to oldname.
// It fails with ENOSYS if the backend does not support symbolic links.
func (p *Provider) Symlink(oldname, newname string) error {
	const op = "symlink"

	if p.readOnly() {
		return p.failLink(op, oldname, newname, p.consts.EROFS, errReadOnly)
	}
	linker, ok := p.fsys.(afero.Linker)
	if !ok {
		return p.failLink(op, oldname, newname, p.consts.ENOSYS, errNotSupported)
	}
	err := linker.SymlinkIfPossible(oldname, newname)
	if errors.Is(err, afero.ErrNoSymlink) {
		return p.failLink(op, oldname, newname, p.consts.ENOSYS, errNotSupported)
	}
	return p.translateLink(op, oldname, newname, err)
}

// Readlink returns the destination of symbolic link name.
// It fails with ENOSYS if the backend does not support symbolic links.
func (p *Provider) Readlink(name string) (string, error) {
	const op = "readlink"

	reader, ok := p.fsys.(afero.LinkReader)
	if !ok {
		return "", p.fail(op, name, p.consts.ENOSYS, errNotSupported)
	}
	dst, err := reader.ReadlinkIfPossible(name)
	if errors.Is(err, afero.ErrNoReadlink) {
		return "", p.fail(op, name, p.consts.ENOSYS, errNotSupported)
	}
	if err != nil {
		return "", p.translate(op, name, err)
	}
	return dst, nil
}
