// Command phph runs concurrency litmus tests: small multi-threaded
// programs whose shared-memory outcomes are checked against a
// predicate, observed and histogrammed across many iterations.
package main

import (
	"fmt"
	"os"

	"github.com/mwinsor/phenolph/cmd/phph/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
