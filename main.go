package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/mrdon/birocrat/internal/formcli"
	"github.com/mrdon/birocrat/internal/formlog"
)

func main() {
	// Set up global panic handler first.
	defer func() {
		if r := recover(); r != nil {
			formlog.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintln(os.Stderr, "formctl crashed; see the configured log file for details.")
			os.Exit(1)
		}
	}()

	// Catching SIGSEGV/SIGABRT is unreliable in Go (the runtime owns
	// them for its own crash handling); SIGINT/SIGTERM are the ones a
	// CLI invocation can actually expect to see and log cleanly.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalChan
		formlog.Error("signal received", "signal", sig.String())
		os.Exit(1)
	}()

	if err := formcli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "formctl:", err)
		os.Exit(1)
	}
}
