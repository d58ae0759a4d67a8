package posixfs

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/ngicks/go-fsys-helper/fsutil"
)

var (
	errNotEmpty     = errors.New("directory not empty")
	errIsDir        = errors.New("is a directory")
	errNotDir       = errors.New("not a directory")
	errLoop         = errors.New("too many levels of symbolic links")
	errReadOnly     = errors.New("read-only file system")
	errNotSupported = errors.New("function not implemented")
	errSubdir       = errors.New("cannot move a directory under itself")
)

var _ error = (*SysError)(nil)

// SysError is the cause of every failure a [Provider] reports.
// Errno is a value of the [unixconst.Constants] the provider was built with.
type SysError struct {
	Errno int
	Name  string // ABI name of Errno, e.g. "ENOENT". Empty if unknown.
	Err   error
}

func (e *SysError) Error() string {
	name := e.Name
	if name == "" {
		name = "errno " + strconv.Itoa(e.Errno)
	}
	if e.Err == nil {
		return name
	}
	return e.Err.Error() + " (" + name + ")"
}

func (e *SysError) Unwrap() error {
	return e.Err
}

// ErrnoOf returns the errno carried by err.
func ErrnoOf(err error) (int, bool) {
	var se *SysError
	if errors.As(err, &se) {
		return se.Errno, true
	}
	return 0, false
}

func (p *Provider) sysErr(errno int, err error) *SysError {
	name, _ := p.consts.ErrnoName(errno)
	return &SysError{Errno: errno, Name: name, Err: err}
}

func (p *Provider) fail(op, path string, errno int, err error) error {
	se := p.sysErr(errno, err)
	p.logger.Debug(
		"operation failed",
		slog.String("op", op),
		slog.String("path", path),
		slog.String("errno", se.Name),
		slog.Any("err", err),
	)
	return fsutil.WrapPathErr(op, path, se)
}

func (p *Provider) failLink(op, oldname, newname string, errno int, err error) error {
	se := p.sysErr(errno, err)
	p.logger.Debug(
		"operation failed",
		slog.String("op", op),
		slog.String("old", oldname),
		slog.String("new", newname),
		slog.String("errno", se.Name),
		slog.Any("err", err),
	)
	return fsutil.WrapLinkErr(op, oldname, newname, se)
}

// translate converts an error returned from the backend.
// Errors without errno counterpart are only given path context.
func (p *Provider) translate(op, path string, err error) error {
	if err == nil {
		return nil
	}
	errno, ok := p.errno(err)
	if !ok {
		p.logger.Debug("untranslated error", slog.String("op", op), slog.String("path", path), slog.Any("err", err))
		return fsutil.WrapPathErr(op, path, unwrapPathErr(err))
	}
	return p.fail(op, path, errno, unwrapPathErr(err))
}

func (p *Provider) translateLink(op, oldname, newname string, err error) error {
	if err == nil {
		return nil
	}
	errno, ok := p.errno(err)
	if !ok {
		return fsutil.WrapLinkErr(op, oldname, newname, unwrapPathErr(err))
	}
	return p.failLink(op, oldname, newname, errno, unwrapPathErr(err))
}

func (p *Provider) errno(err error) (int, bool) {
	if errno, ok := ErrnoOf(err); ok {
		return errno, true
	}
	return p.consts.Errno(err)
}

// unwrapPathErr strips path context added by the backend, which is replaced by ours.
func unwrapPathErr(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Err != nil {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && linkErr.Err != nil {
		return linkErr.Err
	}
	return err
}
