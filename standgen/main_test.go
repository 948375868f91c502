package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestLogLevel(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(logLevel(func(string) string { return "" })).To(Equal(slog.LevelWarn))
	g.Expect(logLevel(func(key string) string {
		if key == "STANDGEN_DEBUG" {
			return "1"
		}

		return ""
	})).To(Equal(slog.LevelDebug))
}

func TestRealFileSystemRoundTrips(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	fileSys := &realFileSystem{}
	name := filepath.Join(t.TempDir(), "generated_X.go")

	g.Expect(fileSys.WriteFile(name, []byte("package x\n"), 0o600)).To(Succeed())
	g.Expect(fileSys.ReadFile(name)).To(Equal([]byte("package x\n")))

	_, err := fileSys.ReadFile(filepath.Join(t.TempDir(), "missing.go"))
	g.Expect(err).To(MatchError(os.ErrNotExist))
}

func TestRealPackageLoaderCachesPackages(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	g.Expect(os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/cached\n"), 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "a.go"), []byte("package cached\n"), 0o600)).To(Succeed())
	t.Chdir(dir)

	loader := newRealPackageLoader()

	g.Expect(loader.ImportPath()).To(Equal("example.com/cached"))

	first, err := loader.Load(".")
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(os.Remove(filepath.Join(dir, "a.go"))).To(Succeed())

	second, err := loader.Load(".")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(second.Files).To(Equal(first.Files))
}
