//go:build darwin

package testutil

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// cloneFile clones one dump file with APFS copy-on-write. Symlinks in a
// fixture tree are cloned as links, never followed.
func cloneFile(src, dst string) error {
	if err := unix.Clonefile(src, dst, unix.CLONE_NOFOLLOW); err != nil {
		return fmt.Errorf("clonefile %s: %w", src, err)
	}
	return nil
}
