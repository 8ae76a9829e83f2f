// Command tdscalc determines TDS and late-deposit interest for FY 2025-26
// payments, from the command line, a spreadsheet, or over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
