// Package output writes generated stand-ins to disk, or checks that they are current.
package output

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
)

// FileSystem is the file access output needs.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Exported variables.
var (
	ErrStale = errors.New("generated file is out of date")
)

// CheckGeneratedCode compares code with the file WriteGeneratedCode would write
// and prints a unified diff to out when they differ.
func CheckGeneratedCode(
	code, name, pkgName string, getEnv func(string) string, fileSys FileSystem, out io.Writer, logger *slog.Logger,
) error {
	filename := Filename(name, pkgName, getEnv("GOFILE"))
	want := finalize(code, filename, logger)

	existing, err := fileSys.ReadFile(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}

	if string(existing) == want {
		_, _ = fmt.Fprintf(out, "%s is up to date.\n", filename)

		return nil
	}

	_, _ = fmt.Fprint(out, textdiff.Unified(filename, filename+" (regenerated)", string(existing), want))

	return fmt.Errorf("%w: %s; run go generate", ErrStale, filename)
}

// Filename returns generated_<name>.go, or generated_<name>_test.go when the
// target package is a test package or the generate directive sits in a test file.
func Filename(name, pkgName, goFile string) string {
	name = strings.TrimSuffix(name, ".go")

	isTestFile := strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go")
	if isTestFile && !strings.HasSuffix(name, "_test") {
		return "generated_" + name + "_test.go"
	}

	return "generated_" + name + ".go"
}

// WriteGeneratedCode writes the generated code to its file.
func WriteGeneratedCode(
	code, name, pkgName string, getEnv func(string) string, fileSys FileSystem, out io.Writer, logger *slog.Logger,
) error {
	const generatedFilePermissions = 0o600

	filename := Filename(name, pkgName, getEnv("GOFILE"))

	err := fileSys.WriteFile(filename, []byte(finalize(code, filename, logger)), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

// finalize orders declarations according to project conventions. Code that
// does not parse is returned unchanged, since the reorderer cannot handle it.
func finalize(code, filename string, logger *slog.Logger) string {
	reordered, err := reorderSource(code, filename)
	if err != nil {
		// If reordering fails, warn but continue with original code
		logger.Warn("failed to reorder generated code", slog.String("file", filename), slog.Any("error", err))

		return code
	}

	return reordered
}

func reorderSource(code, filename string) (string, error) {
	_, err := parser.ParseFile(token.NewFileSet(), filename, code, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	return reorder.Source(code) //nolint:wrapcheck // the warning names the file
}
