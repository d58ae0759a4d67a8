// genhostconst generates per-GOOS host constant tables for package unixconst.
//
// For every target GOOS, golang.org/x/sys/unix is type-checked under that GOOS
// and each constant listed by unixconst.Names is looked up in its package scope.
// Constants the platform does not define are emitted as comments,
// which later surfaces as unixconst.ErrMissingConstant at load time.
//
// Tables are per GOOS only. x/sys/unix is type-checked under the single GOARCH given by -goarch,
// so a constant that x/sys/unix defines for just some architectures of a GOOS
// is treated as missing for all of them.
// For example, O_DSYNC exists only in zerrors_freebsd_riscv64.go,
// yet unixconst.Host fails on freebsd/riscv64 as well.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"go/types"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ngicks/go-fsys-helper/unixabi/unixconst"
	"golang.org/x/tools/go/packages"
)

const unixPkgPath = "golang.org/x/sys/unix"

var (
	dir     = flag.String("dir", "./", "cwd set for go tool chain")
	outDir  = flag.String("out", "./unixconst", "output directory")
	pkgName = flag.String("pkg", "unixconst", "package name of generated files")
	goosStr = flag.String("goos", "linux,darwin,netbsd,openbsd,freebsd", "target GOOS list. comma-separated.")
	goarch  = flag.String("goarch", "amd64", "GOARCH x/sys/unix is type-checked under.")
)

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	for _, goos := range strings.Split(*goosStr, ",") {
		goos = strings.TrimSpace(goos)
		if goos == "" {
			continue
		}
		defined, err := loadDefined(ctx, goos, *goarch)
		if err != nil {
			panic(err)
		}
		param := newTemplateParam(*pkgName, goos, *goarch, unixconst.Names(), defined)
		err = write(filepath.Join(*outDir, "zhostconst_"+goos+".go"), param)
		if err != nil {
			panic(err)
		}
	}
}

// loadDefined type-checks x/sys/unix for goos/goarch and reports which of its constants exist.
func loadDefined(ctx context.Context, goos, goarch string) (func(name string) bool, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes,
		Context: ctx,
		Dir:     *dir,
		Env:     append(os.Environ(), "GOOS="+goos, "GOARCH="+goarch, "CGO_ENABLED=0"),
	}
	pkgs, err := packages.Load(cfg, unixPkgPath)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 || pkgs[0].Types == nil {
		return nil, fmt.Errorf("%s: package not loaded for GOOS=%s GOARCH=%s", unixPkgPath, goos, goarch)
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("%s: GOOS=%s GOARCH=%s: %v", unixPkgPath, goos, goarch, pkgs[0].Errors[0])
	}
	scope := pkgs[0].Types.Scope()
	return func(name string) bool {
		_, ok := scope.Lookup(name).(*types.Const)
		return ok
	}, nil
}

func write(filename string, param TemplateParam) error {
	src, err := render(filepath.Base(filename), param)
	if err != nil {
		return err
	}
	return writeFile(filename, src)
}

func writeFile(filename string, src []byte) error {
	outFile, err := os.Create(filename)
	if err != nil {
		return err
	}
	_, err = bytes.NewReader(src).WriteTo(outFile)
	if err != nil {
		_ = outFile.Close()
		return err
	}
	err = outFile.Sync()
	_ = outFile.Close()
	return err
}
