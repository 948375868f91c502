// Package load parses Go packages into dst syntax trees without type checking.
package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/mod/modfile"
)

// Package is a parsed package.
type Package struct {
	Dir   string
	Files []*dst.File
	Fset  *token.FileSet
}

// ImportPath computes the import path of the package in dir from the nearest
// enclosing go.mod.
func ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for root := abs; ; {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", fmt.Errorf("%w: %s has no module directive", errNoModule, filepath.Join(root, "go.mod"))
			}

			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", fmt.Errorf("failed to relate %s to %s: %w", abs, root, err)
			}

			if rel == "." {
				return modPath, nil
			}

			return modPath + "/" + filepath.ToSlash(rel), nil
		}

		parent := filepath.Dir(root)
		if parent == root {
			return "", fmt.Errorf("%w: no go.mod above %s", errNoModule, abs)
		}

		root = parent
	}
}

// PackageDST loads a package by import path. "." is the current directory and
// includes its test files; other packages are resolved with go/build and
// loaded without test files.
func PackageDST(importPath string) (Package, error) {
	dir, err := resolveDir(importPath)
	if err != nil {
		return Package{}, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Package{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	includeTests := importPath == "."

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		if !includeTests && strings.HasSuffix(name, "_test.go") {
			continue
		}

		goFiles = append(goFiles, filepath.Join(dir, name))
	}

	if len(goFiles) == 0 {
		return Package{}, fmt.Errorf("%w: no .go files in %s", errNoPackagesFound, dir)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(goFiles))

	for _, goFile := range goFiles {
		// Parse first: the decorator cannot walk a partial tree.
		astFile, err := parser.ParseFile(fset, goFile, nil, parser.ParseComments)
		if err != nil {
			continue
		}

		file, err := dec.DecorateFile(astFile)
		if err != nil {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return Package{}, fmt.Errorf("%w: failed to parse any .go files in %s", errNoPackagesFound, dir)
	}

	return Package{Dir: dir, Files: files, Fset: fset}, nil
}

// unexported variables.
var (
	errNoModule        = errors.New("not inside a module")
	errNoPackagesFound = errors.New("no packages found")
)

func resolveDir(importPath string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if importPath == "." {
		return wd, nil
	}

	pkg, err := build.Import(importPath, wd, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("failed to find package %q: %w", importPath, err)
	}

	return pkg.Dir, nil
}
