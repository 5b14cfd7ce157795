// Package run implements the main logic for the stubgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexflint/go-arg"
)

// Interfaces - Public

// FileSystem is the file access stubgen needs.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Structs - Private

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Source string `arg:"positional"                 help:"file declaring the functions to stub (defaults to $GOFILE)"`
	Name   string `arg:"--name"                     help:"name for the generated mock type (defaults to <Package>Mock)"`
	Tag    string `arg:"--tag" default:"staticmock" help:"build tag that selects the generated stubs"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	source, mockName, tag string
}

// Functions - Public

// Run executes the stubgen tool logic. It takes command-line arguments, an environment variable getter, a
// FileSystem for file operations and a writer for progress output. On success, it writes a Go source file next to
// the source file, declaring the mock type and one forwarding stub per exported package-level function.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, out io.Writer) error {
	info, err := getGeneratorCallInfo(args, getEnv)
	if err != nil {
		return err
	}

	src, err := fileSys.ReadFile(info.source)
	if err != nil {
		return fmt.Errorf("failed to read source %s: %w", info.source, err)
	}

	file, err := parseSource(info.source, src)
	if err != nil {
		return err
	}

	funcs, skipped := detectFunctions(file)

	for _, reason := range skipped {
		_, _ = fmt.Fprintf(out, "Warning: skipping %s\n", reason)
	}

	if len(funcs) == 0 {
		return fmt.Errorf("%w in %s", errNoFunctions, info.source)
	}

	if info.mockName == "" {
		info.mockName = defaultMockName(file.Name.Name)
	}

	err = checkNameClashes(funcs, info.mockName)
	if err != nil {
		return fmt.Errorf("cannot stub %s: %w", info.source, err)
	}

	code, err := generateStubCode(file, funcs, info)
	if err != nil {
		return err
	}

	return writeGeneratedCode(code, info, fileSys, out)
}

// Functions - Private

// defaultMockName returns <Package>Mock with the package name's first letter upper-cased.
func defaultMockName(pkgName string) string {
	first, size := utf8.DecodeRuneInString(pkgName)

	return string(unicode.ToUpper(first)) + pkgName[size:] + "Mock"
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(args []string, getEnv func(string) string) (generatorInfo, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return generatorInfo{}, err
	}

	source := parsed.Source
	if source == "" {
		source = getEnv("GOFILE")
	}

	if source == "" {
		return generatorInfo{}, errNoSource
	}

	if strings.HasSuffix(source, "_test.go") {
		return generatorInfo{}, fmt.Errorf("%w: %s", errTestSource, source)
	}

	return generatorInfo{
		source:   filepath.Clean(source),
		mockName: parsed.Name,
		tag:      parsed.Tag,
	}, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "stubgen"}, &parsed)
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

// unexported variables.
var (
	errNameClash           = errors.New("generated names clash")
	errNoFunctions         = errors.New("no exported package-level functions to stub")
	errNoSource            = errors.New("no source file: pass one or run under go generate")
	errTestSource          = errors.New("cannot stub functions declared in a test file")
	errUnsupportedType     = errors.New("unsupported type expression")
	errUnresolvedQualifier = errors.New("package qualifier matches no import")
)
