package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Alert shows a blocking fatal message to the user
type Alert interface {
	Alert(title, message string)
}

var (
	crashMu      sync.Mutex
	crashCleanup []func()
	crashOut     io.Writer = os.Stderr
	crashExit              = os.Exit
)

// OnCrash registers a cleanup run before the crash report, last registered runs first
// Typical hooks restore the terminal and flush the logger
func OnCrash(fn func()) {
	crashMu.Lock()
	crashCleanup = append(crashCleanup, fn)
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	hooks := crashCleanup
	crashCleanup = nil
	crashMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		func() {
			defer func() { _ = recover() }()
			hooks[i]()
		}()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
