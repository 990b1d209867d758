//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals are the signals that cancel an in-flight conversion.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
