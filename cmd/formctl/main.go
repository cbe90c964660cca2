// Command formctl is the demo CLI around the form engine: run,
// catalog add, catalog list. See internal/formcli for the actual
// command logic; this binary target exists alongside the root main.go
// so `go build ./cmd/formctl` produces a plain formctl binary without
// the root entry point's extra process-supervision ceremony.
package main

import (
	"fmt"
	"os"

	"github.com/mrdon/birocrat/internal/formcli"
)

func main() {
	if err := formcli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "formctl:", err)
		os.Exit(1)
	}
}
