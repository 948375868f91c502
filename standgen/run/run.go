// Package run implements the main logic for the standgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/dave/dst"
	detect "github.com/toejough/standin/standgen/run/3_detect"
	generate "github.com/toejough/standin/standgen/run/5_generate"
	output "github.com/toejough/standin/standgen/run/6_output"
)

// FileSystem interface for mocking.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader loads and parses packages by import path.
type PackageLoader interface {
	detect.PackageLoader
	// ImportPath returns the import path of the current directory.
	ImportPath() (string, error)
}

// Run executes the standgen tool logic. It takes command-line arguments, an environment variable getter, a
// FileSystem for file operations, and a PackageLoader for package operations. On success it writes a Go source
// file containing a stand-in for the named interface, in the package that invoked go generate; with --check it
// only reports whether that file is current.
func Run(
	args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer,
	logger *slog.Logger,
) error {
	info, err := getGeneratorCallInfo(args, getEnv)
	if err != nil {
		return err
	}

	genPkgPath, err := pkgLoader.ImportPath()
	if err != nil {
		return err
	}

	iface, err := findInterface(info, genPkgPath, pkgLoader)
	if err != nil {
		return err
	}

	methods, err := detect.Methods(iface, pkgLoader)
	if err != nil {
		return err
	}

	logger.Debug("generating stand-in",
		slog.String("interface", info.interfaceName),
		slog.String("name", info.standInName),
		slog.Int("methods", len(methods)),
	)

	code, err := generate.Code(generate.Info{
		PkgName:     info.pkgName,
		PkgPath:     genPkgPath,
		StandInName: info.standInName,
		Interface:   iface,
		Methods:     methods,
		Loader:      pkgLoader,
	})
	if err != nil {
		return err
	}

	if info.check {
		return output.CheckGeneratedCode(code, info.standInName, info.pkgName, getEnv, fileSys, out, logger)
	}

	return output.WriteGeneratedCode(code, info.standInName, info.pkgName, getEnv, fileSys, out, logger)
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface to stand in for (e.g. Store or storage.Store)"`
	Name      string `arg:"--name"              help:"name for the generated type (defaults to <Interface>StandIn)"`
	Check     bool   `arg:"--check"             help:"report whether the generated file is current instead of writing it"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	pkgName, interfaceName, pkgAlias, localInterfaceName, standInName string
	check                                                             bool
}

// unexported variables.
var (
	errGOPACKAGENotSet = errors.New("GOPACKAGE is not set; run standgen from a //go:generate directive")
)

// findInterface locates the named interface, in the current directory or in
// the package its qualifier refers to.
func findInterface(info generatorInfo, genPkgPath string, pkgLoader PackageLoader) (detect.Interface, error) {
	local, err := pkgLoader.Load(".")
	if err != nil {
		return detect.Interface{}, err
	}

	if info.pkgAlias == "" {
		return detect.FindInterface(local.Files, info.localInterfaceName, genPkgPath, "")
	}

	var imports []*dst.ImportSpec

	for _, file := range local.Files {
		if file.Name.Name == info.pkgName {
			imports = append(imports, file.Imports...)
		}
	}

	importPath, err := detect.FindImportPath(imports, info.pkgAlias, pkgLoader)
	if err != nil {
		return detect.Interface{}, fmt.Errorf("cannot resolve %s: %w", info.interfaceName, err)
	}

	pkg, err := pkgLoader.Load(importPath)
	if err != nil {
		return detect.Interface{}, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return detect.FindInterface(pkg.Files, info.localInterfaceName, importPath, "")
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(args []string, getEnv func(string) string) (generatorInfo, error) {
	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return generatorInfo{}, errGOPACKAGENotSet
	}

	parsed, err := parseArgs(args)
	if err != nil {
		return generatorInfo{}, err
	}

	pkgAlias, localName := splitQualified(parsed.Interface)

	standInName := parsed.Name
	if standInName == "" {
		standInName = localName + "StandIn"
	}

	return generatorInfo{
		pkgName:            pkgName,
		interfaceName:      parsed.Interface,
		pkgAlias:           pkgAlias,
		localInterfaceName: localName,
		standInName:        standInName,
		check:              parsed.Check,
	}, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "standgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// splitQualified splits "pkg.Name" into its parts; "Name" has no package.
func splitQualified(name string) (pkg, local string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}

	return name[:idx], name[idx+1:]
}
