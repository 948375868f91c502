package embedded

import (
	"fmt"
	"io"
)

// Failure embeds the built-in error interface.
type Failure interface {
	error
	Code() int
}

// Named is embedded by Resource.
type Named interface {
	Name() string
}

// Resource embeds a standard library interface and a local one.
type Resource interface {
	io.Closer
	Named
	Open(path string) (io.ReadCloser, error)
}

// Describe renders a Failure for logs.
func Describe(f Failure) string {
	return fmt.Sprintf("[%d] %s", f.Code(), f.Error())
}

// ReadAll opens path on r, reads it fully and closes both the reader and r.
func ReadAll(r Resource, path string) (string, error) {
	reader, err := r.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s: open %s: %w", r.Name(), path, err)
	}

	data, readErr := io.ReadAll(reader)
	closeErr := reader.Close()

	if err := r.Close(); err != nil {
		return "", fmt.Errorf("%s: close: %w", r.Name(), err)
	}

	if readErr != nil {
		return "", fmt.Errorf("%s: read %s: %w", r.Name(), path, readErr)
	}

	if closeErr != nil {
		return "", fmt.Errorf("%s: close %s: %w", r.Name(), path, closeErr)
	}

	return string(data), nil
}
