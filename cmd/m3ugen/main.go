// Package main is the entry point for the m3ugen application.
package main

import (
	"os"

	"github.com/tvheadless/m3ugen/cmd/m3ugen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
