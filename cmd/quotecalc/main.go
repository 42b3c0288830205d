// Command quotecalc runs the quotation engine offline, without the HTTP
// server. It reads the same YAML reference files the file source does, or
// falls back to the built-in defaults.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
