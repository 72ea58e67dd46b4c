//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package mmfile

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// Map opens path read-only, takes a shared advisory lock so cooperating
// writers (which take exclusive locks) are denied while the mapping is live,
// and maps the file into memory.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_SH|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrShareViolation)
		}
		return nil, nil, fmt.Errorf("mmfile: lock %s: %w", path, err)
	}
	release := func() error {
		unlockErr := unix.Flock(fd, unix.LOCK_UN)
		return errors.Join(unlockErr, f.Close())
	}

	info, err := f.Stat()
	if err != nil {
		release()
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, sync.OnceValue(release), nil
	}
	if size > int64(^uint(0)>>1) {
		release()
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		release()
		return nil, nil, err
	}
	cleanup := sync.OnceValue(func() error {
		return errors.Join(unix.Munmap(data), release())
	})
	return data, cleanup, nil
}
