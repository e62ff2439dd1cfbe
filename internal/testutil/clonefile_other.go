//go:build !darwin

package testutil

import "errors"

var errCloneUnsupported = errors.New("copy-on-write clone unavailable")

// cloneFile always fails here, so copyFile copies dump bytes instead.
func cloneFile(_, _ string) error {
	return errCloneUnsupported
}
