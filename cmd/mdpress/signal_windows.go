//go:build windows

package main

import "os"

// shutdownSignals are the signals that cancel an in-flight conversion.
// syscall.SIGTERM is not available on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
