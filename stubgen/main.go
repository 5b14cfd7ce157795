// stubgen generates static mock stubs for the package-level functions of a Go file.
// To use it, install it with `go install github.com/toejough/staticmock/stubgen@latest`
// and add a `//go:generate stubgen` comment to the file declaring the functions. Give that
// file a `//go:build !staticmock` constraint: stubgen writes generated_<Name>.go behind
// `//go:build staticmock`, replacing each function with a stub that forwards to the mock
// installed with staticmock.Install. By default the mock is named <Package>Mock; use
// `--name` to choose another name and `--tag` to choose another build tag.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/staticmock/stubgen/run"
)

// main is the entry point of the stubgen tool.
func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
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
