//go:build !unix

package app

import "errors"

func stopSelf() error {
	return errors.New("suspend is not supported on this platform")
}
