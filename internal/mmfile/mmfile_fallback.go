//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package mmfile

import "os"

// Map reads the entire file when mapping and locking are not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
