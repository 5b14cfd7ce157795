package run

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/toejough/go-reorder"
)

// buildConstraint returns the constraint line that selects the generated stubs.
func buildConstraint(tag string) string {
	return "//go:build " + tag
}

// generatedFileName returns generated_<mockName>.go in the source file's directory.
func generatedFileName(info generatorInfo) string {
	return filepath.Join(filepath.Dir(info.source), "generated_"+info.mockName+".go")
}

// writeGeneratedCode reorders the generated code's declarations and writes it next to the source.
func writeGeneratedCode(code string, info generatorInfo, fileSys FileSystem, out io.Writer) error {
	const generatedFilePermissions = 0o600

	filename := generatedFileName(info)

	// Reorder declarations according to project conventions
	reordered, err := reorder.Source(code)
	if err != nil {
		// If reordering fails, warn but continue with the formatted code
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	} else if !strings.Contains(reordered, buildConstraint(info.tag)) {
		_, _ = fmt.Fprintf(out, "Warning: reordering %s dropped its build constraint; keeping source order\n", filename)

		reordered = code
	}

	err = fileSys.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
