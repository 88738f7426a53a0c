//go:build unix && !linux && !freebsd

package mapped

import "golang.org/x/sys/unix"

// fdatasync falls back to a full fsync where fdatasync is unavailable.
func fdatasync(fd int) error {
	return unix.Fsync(fd)
}
