package main

import (
	"io"
	"os"
)

// openSource opens path, or returns stdin when path is empty.
func openSource(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
