//go:build unix

package dfxml

import (
	"golang.org/x/sys/unix"
)

// osRelease returns the kernel release and version strings reported by uname(2).
func osRelease() (string, string) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "unknown", "unknown"
	}
	return unix.ByteSliceToString(uts.Release[:]), unix.ByteSliceToString(uts.Version[:])
}
