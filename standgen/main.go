// standgen generates stand-ins for Go interfaces.
// To use it, install it with `go install github.com/toejough/standin/standgen@latest`
// and in your test files, add a `//go:generate standgen <interface>` comment. The stand-in type is named
// <interface>StandIn unless `--name <name>` says otherwise, and is written to generated_<name>.go (or
// generated_<name>_test.go for test packages) next to the file containing the directive. The generated file
// registers the stand-in so that standin.Mock and standin.Spy can create it.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/toejough/standin/standgen/run"
	load "github.com/toejough/standin/standgen/run/2_load"
)

// main is the entry point of the standgen tool.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv)}))

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, newRealPackageLoader(), os.Stdout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements PackageLoader using direct DST parsing.
// Packages are parsed once per run.
type realPackageLoader struct {
	cache map[string]load.Package
}

func newRealPackageLoader() *realPackageLoader {
	return &realPackageLoader{cache: make(map[string]load.Package)}
}

// ImportPath returns the import path of the working directory.
func (pl *realPackageLoader) ImportPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	return load.ImportPath(wd)
}

// Load loads a package by import path and returns its DST files.
func (pl *realPackageLoader) Load(importPath string) (load.Package, error) {
	if pkg, ok := pl.cache[importPath]; ok {
		return pkg, nil
	}

	pkg, err := load.PackageDST(importPath)
	if err != nil {
		return load.Package{}, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	pl.cache[importPath] = pkg

	return pkg, nil
}

// logLevel enables debug output when STANDGEN_DEBUG is set.
func logLevel(getEnv func(string) string) slog.Level {
	if getEnv("STANDGEN_DEBUG") != "" {
		return slog.LevelDebug
	}

	return slog.LevelWarn
}
