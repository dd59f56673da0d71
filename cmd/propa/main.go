// Command propa evaluates Earth-space link budgets from the command line.
//
// Usage:
//
//	propa demo                                   # reference scenario
//	propa demo --scenario link.toml --freq2 40   # file, then flag overrides
//	propa demo --data-dir ./itu-maps             # gridded ITU climatology
//	propa zones                                  # list P.837-1 rain zones
//
// Exit status is 0 on success, 1 when an input is outside a model's domain
// and 2 on any other failure.
package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case domain.IsDomainError(err):
		return 1
	default:
		return 2
	}
}
