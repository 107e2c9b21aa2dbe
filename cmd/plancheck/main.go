// Command plancheck runs the business-plan pipeline offline: it validates,
// sanitizes and scores plan documents, mints dev tokens and tails plan events.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
