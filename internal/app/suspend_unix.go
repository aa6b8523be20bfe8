//go:build unix

package app

import "syscall"

func stopSelf() error {
	return syscall.Kill(syscall.Getpid(), syscall.SIGSTOP)
}
