package main

import (
	"bytes"
	_ "embed"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"
)

var (
	//go:embed hostconst.tmpl
	hostconstTempl string
)

var (
	hostconst = template.Must(template.New("").Funcs(funcMap).Parse(hostconstTempl))
)

var funcMap template.FuncMap = template.FuncMap{
	"quote": func(s string) string {
		return strconv.Quote(s)
	},
}

type TemplateParam struct {
	Package string
	GOOS    string
	GOARCH  string // the architecture x/sys/unix was checked under.
	Entries []Entry
}

type Entry struct {
	Name    string
	Defined bool
}

func newTemplateParam(pkg, goos, goarch string, names []string, defined func(name string) bool) TemplateParam {
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Name: name, Defined: defined(name)}
	}
	return TemplateParam{
		Package: pkg,
		GOOS:    goos,
		GOARCH:  goarch,
		Entries: entries,
	}
}

func render(filename string, param TemplateParam) ([]byte, error) {
	var buf bytes.Buffer
	err := hostconst.Execute(&buf, param)
	if err != nil {
		return nil, err
	}
	return imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}
