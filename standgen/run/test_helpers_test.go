package run_test

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"

	load "github.com/toejough/standin/standgen/run/2_load"
)

// fakeFileSystem keeps files in memory.
type fakeFileSystem struct {
	files   map[string][]byte
	readErr error
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: make(map[string][]byte)}
}

func (f *fakeFileSystem) ReadFile(name string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}

	data, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, name)
	}

	return data, nil
}

func (f *fakeFileSystem) WriteFile(name string, data []byte, _ os.FileMode) error {
	f.files[name] = data

	return nil
}

// fakeLoader serves packages parsed from source strings, keyed by import path.
type fakeLoader struct {
	importPath string
	sources    map[string][]string
}

func (l *fakeLoader) ImportPath() (string, error) {
	if l.importPath == "" {
		return "", errNoModule
	}

	return l.importPath, nil
}

func (l *fakeLoader) Load(importPath string) (load.Package, error) {
	sources, ok := l.sources[importPath]
	if !ok {
		return load.Package{}, fmt.Errorf("%w: %s", errUnknownPackage, importPath)
	}

	fset := token.NewFileSet()
	files := make([]*dst.File, 0, len(sources))

	for i, src := range sources {
		file, err := decorator.ParseFile(fset, fmt.Sprintf("file%d.go", i), src, parser.ParseComments)
		if err != nil {
			return load.Package{}, err
		}

		files = append(files, file)
	}

	return load.Package{Dir: importPath, Files: files, Fset: fset}, nil
}

// unexported variables.
var (
	errNoModule       = errors.New("not inside a module")
	errUnknownPackage = errors.New("unknown package")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// envWith returns a getenv over vars.
func envWith(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}
